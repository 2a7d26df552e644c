package chat

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RateLimiter answers whether key may proceed given a limit per sliding
// window. Implementations must fail open: an unavailable backend allows
// the operation.
type RateLimiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// RedisRateLimiter implements a sliding window over a redis sorted set
// scored by the submission's millisecond timestamp.
type RedisRateLimiter struct {
	Pool *redis.Pool
}

// NewRedisRateLimiter wraps the given pool
func NewRedisRateLimiter(pool *redis.Pool) *RedisRateLimiter {
	return &RedisRateLimiter{Pool: pool}
}

// Allow trims entries older than the window, counts the remainder, and
// records this submission when under the limit. Every redis failure
// logs and allows.
func (r *RedisRateLimiter) Allow(key string, limit int, window time.Duration) bool {
	conn := r.Pool.Get()
	defer conn.Close()

	rkey := "ratelimit:" + key
	now := time.Now().UnixMilli()
	windowStart := now - window.Milliseconds()

	if _, err := conn.Do("ZREMRANGEBYSCORE", rkey, "-inf", windowStart); err != nil {
		zap.S().Warnw("rate limiter unavailable, failing open",
			"key", key,
			"error", err,
		)
		return true
	}

	count, err := redis.Int(conn.Do("ZCARD", rkey))
	if err != nil {
		zap.S().Warnw("rate limiter unavailable, failing open",
			"key", key,
			"error", err,
		)
		return true
	}
	if count >= limit {
		return false
	}

	member := fmt.Sprintf("%d-%s", now, uuid.NewString())
	if _, err := conn.Do("ZADD", rkey, now, member); err != nil {
		zap.S().Warnw("rate limiter record failed",
			"key", key,
			"error", err,
		)
		return true
	}
	if _, err := conn.Do("PEXPIRE", rkey, window.Milliseconds()); err != nil {
		zap.S().Warnw("rate limiter expire failed",
			"key", key,
			"error", err,
		)
	}
	return true
}
