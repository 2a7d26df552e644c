package redisconn

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

// NewPool builds the shared redigo pool from a redis URL. The pool is
// used by both the rate limiter and the cluster fan-out channel; a
// dead redis only degrades those features, so dial errors surface per
// use instead of at startup.
func NewPool(redisURL string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		MaxActive:   50,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(redisURL)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}
