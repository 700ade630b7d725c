package goConsole

import "context"

type requestPathContextKey struct{}

// WithRequestPath attaches the navigated path to ctx. Audit events for guard
// redirects record it.
func WithRequestPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, requestPathContextKey{}, path)
}

func requestPathFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	path, _ := ctx.Value(requestPathContextKey{}).(string)
	return path
}

type clientIPContextKey struct{}

// WithClientIP attaches the caller's address to ctx for the login throttle.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}
