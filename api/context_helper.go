package api

import (
	"context"
	"time"
)

// queryTimeout caps how long a single chat read or write may hold a
// database or redis connection
const queryTimeout = 10 * time.Second

// WithQueryTimeout derives a context bounded by the chat query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, queryTimeout)
}

type contextKey int

const callerKey contextKey = iota

// WithCaller attaches the bearer-authenticated username to the context
// so handlers behind the auth middleware can resolve who is calling
func WithCaller(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, callerKey, username)
}

// Caller returns the bearer-authenticated username, or empty when the
// request never passed through the auth middleware
func Caller(ctx context.Context) string {
	username, _ := ctx.Value(callerKey).(string)
	return username
}
