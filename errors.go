package goConsole

import "errors"

var (
	// ErrNotReady is returned by methods called on a nil or closed Console.
	ErrNotReady = errors.New("console not initialized")
	// ErrInvalidConfig wraps every Config.Validate failure.
	ErrInvalidConfig = errors.New("invalid console configuration")
	// ErrBuilderUsed is returned when Build is called twice on one Builder.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrInvalidCredentials is returned for any failed login, without saying which part
	// was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginDisabled is returned by Login when no authenticator is configured.
	ErrLoginDisabled = errors.New("login disabled")
	// ErrLoginRateLimited is returned by Login while the username or client IP is
	// throttled after repeated failures, or when the throttle cannot be consulted.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrSessionsDisabled is returned by session operations when the console was built
	// without Redis.
	ErrSessionsDisabled = errors.New("session storage not configured")
	// ErrSessionCreationFailed wraps failures issuing or saving a new session.
	ErrSessionCreationFailed = errors.New("session creation failed")
	// ErrSessionInvalidationFailed wraps failures deleting sessions.
	ErrSessionInvalidationFailed = errors.New("session invalidation failed")
)
