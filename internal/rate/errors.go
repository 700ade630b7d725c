package rate

import "errors"

var (
	// ErrRateLimited is returned once a window holds MaxAttempts failures.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable wraps Redis failures.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
