package session

import "context"

type sessionIDContextKey struct{}

// WithID attaches a session ID to ctx. HTTP adapters call it after reading the
// session cookie so accessors can resolve the session later in the request.
func WithID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey{}, sessionID)
}

// IDFromContext returns the session ID attached by [WithID], if any.
func IDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sid, _ := ctx.Value(sessionIDContextKey{}).(string)
	if sid == "" {
		return "", false
	}
	return sid, true
}
