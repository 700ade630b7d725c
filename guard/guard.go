package guard

import (
	"context"

	"github.com/MrEthical07/goConsole/session"
)

// DefaultLoginPath is where unauthenticated navigation is sent.
const DefaultLoginPath = "/admin/login"

// Guard evaluates protected navigations against the current session.
//
// Guard holds no per-request state and is safe for concurrent use when its accessor is.
type Guard struct {
	accessor  session.Accessor
	loginPath string
	observer  func(context.Context, Outcome)
}

// Option configures a [Guard].
type Option func(*Guard)

// WithLoginPath overrides [DefaultLoginPath]. Empty paths are ignored.
func WithLoginPath(path string) Option {
	return func(g *Guard) {
		if path != "" {
			g.loginPath = path
		}
	}
}

// WithObserver registers fn to be called with every outcome, after evaluation.
func WithObserver(fn func(context.Context, Outcome)) Option {
	return func(g *Guard) {
		g.observer = fn
	}
}

// New returns a guard reading sessions from accessor.
func New(accessor session.Accessor, opts ...Option) *Guard {
	g := &Guard{
		accessor:  accessor,
		loginPath: DefaultLoginPath,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// LoginPath returns the redirect target used for unauthenticated navigation.
func (g *Guard) LoginPath() string {
	if g == nil {
		return DefaultLoginPath
	}
	return g.loginPath
}

// CheckAccess returns [Allow] when the current session has a non-empty access token
// and a redirect to the login path otherwise. It is re-evaluated on every call.
func (g *Guard) CheckAccess(ctx context.Context) Outcome {
	out := g.evaluate(ctx)
	if g != nil && g.observer != nil {
		g.observer(ctx, out)
	}
	return out
}

func (g *Guard) evaluate(ctx context.Context) Outcome {
	if g == nil || g.accessor == nil {
		return Redirect(g.LoginPath())
	}
	if !g.accessor.Current(ctx).HasToken() {
		return Redirect(g.loginPath)
	}
	return Allow()
}
