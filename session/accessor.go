package session

import (
	"context"
	"errors"
	"log/slog"
)

// Accessor returns the session for the current request. A nil result means there is
// no session; implementations never return an error to the guard.
type Accessor interface {
	Current(ctx context.Context) *Session
}

// AccessorFunc adapts a plain function to [Accessor].
type AccessorFunc func(ctx context.Context) *Session

// Current calls f.
func (f AccessorFunc) Current(ctx context.Context) *Session {
	if f == nil {
		return nil
	}
	return f(ctx)
}

// Static returns an accessor that always yields sess.
func Static(sess *Session) Accessor {
	return AccessorFunc(func(context.Context) *Session { return sess })
}

// StoreAccessor resolves the session ID attached with [WithID] against a [Store].
type StoreAccessor struct {
	store  *Store
	logger *slog.Logger
}

// NewStoreAccessor returns an accessor reading from store. A nil logger uses
// slog.Default().
func NewStoreAccessor(store *Store, logger *slog.Logger) *StoreAccessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreAccessor{store: store, logger: logger}
}

// Current loads the request's session. Lookup failures are logged and reported as
// "no session", so an unreachable backend denies access instead of granting it.
func (a *StoreAccessor) Current(ctx context.Context) *Session {
	if a == nil || a.store == nil {
		return nil
	}
	sid, ok := IDFromContext(ctx)
	if !ok {
		return nil
	}

	sess, err := a.store.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			a.logger.DebugContext(ctx, "session not found", "session_id", sid)
		} else {
			a.logger.WarnContext(ctx, "session lookup failed", "session_id", sid, "error", err)
		}
		return nil
	}
	return sess
}
