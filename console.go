package goConsole

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrEthical07/goConsole/guard"
	"github.com/MrEthical07/goConsole/internal/audit"
	"github.com/MrEthical07/goConsole/internal/rate"
	"github.com/MrEthical07/goConsole/jwt"
	"github.com/MrEthical07/goConsole/password"
	"github.com/MrEthical07/goConsole/preference"
	"github.com/MrEthical07/goConsole/session"
	"github.com/google/uuid"
)

// Console ties the navigation guard, the theme preference and operator sessions
// together behind one facade.
type Console struct {
	config        Config
	logger        *slog.Logger
	guard         *guard.Guard
	prefs         *preference.Store
	sessions      *session.Store
	authenticator Authenticator
	limiter       *rate.Limiter
	hasher        *password.Hasher
	jwt           *jwt.Manager
	audit         *audit.Dispatcher
	metrics       *Metrics
	now           func() time.Time
}

/*
====================================
GUARD
====================================
*/

// CheckAccess decides whether the navigation carried by ctx may proceed. It never
// fails: a nil console redirects to the default login path.
//
//	Performance: one session lookup through the accessor (1 Redis GET by default).
func (c *Console) CheckAccess(ctx context.Context) guard.Outcome {
	if c == nil || c.guard == nil {
		return guard.Redirect(guard.DefaultLoginPath)
	}
	if !c.metrics.LatencyEnabled() {
		return c.guard.CheckAccess(ctx)
	}
	start := time.Now()
	out := c.guard.CheckAccess(ctx)
	c.metrics.Observe(MetricGuardLatency, time.Since(start))
	return out
}

func (c *Console) observeGuard(ctx context.Context, out guard.Outcome) {
	if out.Allowed() {
		c.metrics.Inc(MetricGuardAllow)
		return
	}
	c.metrics.Inc(MetricGuardRedirect)
	c.emitAudit(ctx, AuditGuardRedirect, false, "", "", errNoSession, func() map[string]string {
		return map[string]string{"target": out.Target}
	})
}

// LoginPath returns the guard's redirect target.
func (c *Console) LoginPath() string {
	if c == nil {
		return guard.DefaultLoginPath
	}
	return c.guard.LoginPath()
}

// Guard returns the underlying guard.
func (c *Console) Guard() *guard.Guard {
	if c == nil {
		return nil
	}
	return c.guard
}

/*
====================================
THEME
====================================
*/

// Theme returns the current theme, resolving it on first use.
func (c *Console) Theme(ctx context.Context) preference.Theme {
	if c == nil {
		return preference.ThemeLight
	}
	return c.prefs.Theme(ctx)
}

// InitialTheme resolves the theme from storage and the system signal without
// touching the current value.
func (c *Console) InitialTheme(ctx context.Context) preference.Theme {
	if c == nil {
		return preference.ThemeLight
	}
	return c.prefs.Initial(ctx)
}

// SetTheme persists t and makes it current.
func (c *Console) SetTheme(ctx context.Context, t preference.Theme) error {
	if c == nil {
		return ErrNotReady
	}
	if err := c.prefs.SetTheme(ctx, t); err != nil {
		c.recordThemeFailure(ctx, "set", t, err)
		return err
	}
	c.metrics.Inc(MetricThemeSet)
	c.emitThemeChanged(ctx, "set", t)
	return nil
}

// ToggleTheme flips the current theme and returns the new one. On failure the
// returned theme is the unchanged current one.
func (c *Console) ToggleTheme(ctx context.Context) (preference.Theme, error) {
	if c == nil {
		return preference.ThemeLight, ErrNotReady
	}
	t, err := c.prefs.ToggleTheme(ctx)
	if err != nil {
		c.recordThemeFailure(ctx, "toggle", t.Opposite(), err)
		return t, err
	}
	c.metrics.Inc(MetricThemeToggle)
	c.emitThemeChanged(ctx, "toggle", t)
	return t, nil
}

// SubscribeTheme registers fn for theme changes and returns its cancel function.
func (c *Console) SubscribeTheme(fn func(preference.Theme)) (cancel func()) {
	if c == nil {
		return func() {}
	}
	return c.prefs.Subscribe(fn)
}

// Preferences returns the underlying preference store.
func (c *Console) Preferences() *preference.Store {
	if c == nil {
		return nil
	}
	return c.prefs
}

func (c *Console) emitThemeChanged(ctx context.Context, op string, t preference.Theme) {
	c.emitAudit(ctx, AuditThemeChanged, true, "", "", nil, func() map[string]string {
		return map[string]string{"op": op, "theme": t.String()}
	})
}

func (c *Console) recordThemeFailure(ctx context.Context, op string, attempted preference.Theme, err error) {
	if errors.Is(err, preference.ErrStorageUnavailable) {
		c.metrics.Inc(MetricThemePersistFailure)
		c.logger.WarnContext(ctx, "theme not persisted", "op", op, "theme", attempted.String(), "error", err)
	}
	c.emitAudit(ctx, AuditThemeChanged, false, "", "", err, func() map[string]string {
		return map[string]string{"op": op, "theme": string(attempted)}
	})
}

func (c *Console) observeThemeInit(t preference.Theme, src preference.Source) {
	switch src {
	case preference.SourceStorage:
		c.metrics.Inc(MetricThemeInitStorage)
	case preference.SourceSignal:
		c.metrics.Inc(MetricThemeInitSignal)
	default:
		c.metrics.Inc(MetricThemeInitDefault)
	}
	c.logger.Debug("theme initialized", "theme", t.String(), "source", src.String())
}

/*
====================================
SESSIONS
====================================
*/

// Login authenticates the operator, issues an access token and saves a new session
// for Config.Session.TTL. The returned session's ID is what HTTP adapters put in the
// session cookie.
//
// Repeated failures for one username (or client IP, see [WithClientIP]) are
// throttled with [ErrLoginRateLimited]. The throttle fails closed when Redis is down.
func (c *Console) Login(ctx context.Context, username, plain string) (*session.Session, error) {
	if c == nil {
		return nil, ErrNotReady
	}
	if c.authenticator == nil {
		return nil, ErrLoginDisabled
	}

	ip := clientIPFromContext(ctx)
	if c.limiter != nil {
		if err := c.limiter.Check(ctx, username, ip); err != nil {
			return nil, c.rateLimited(ctx, username, err)
		}
	}

	userID, err := c.authenticator.Authenticate(ctx, username, plain)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			c.logger.WarnContext(ctx, "authenticator error", "error", err)
		}
		if c.limiter != nil {
			if lerr := c.limiter.Fail(ctx, username, ip); lerr != nil && !errors.Is(lerr, rate.ErrRateLimited) {
				c.logger.WarnContext(ctx, "login throttle not updated", "error", lerr)
			}
		}
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(ctx, AuditLogin, false, "", "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"username": username}
		})
		return nil, ErrInvalidCredentials
	}
	if c.limiter != nil {
		if err := c.limiter.Reset(ctx, username); err != nil {
			c.logger.WarnContext(ctx, "login throttle not reset", "error", err)
		}
	}

	sess, err := c.createSession(ctx, userID)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(ctx, AuditLogin, false, userID, "", err, nil)
		c.logger.ErrorContext(ctx, "session creation failed", "user_id", userID, "error", err)
		return nil, err
	}

	c.metrics.Inc(MetricLoginSuccess)
	c.metrics.Inc(MetricSessionCreated)
	c.emitAudit(ctx, AuditLogin, true, userID, sess.SessionID, nil, nil)
	return sess, nil
}

func (c *Console) rateLimited(ctx context.Context, username string, cause error) error {
	if !errors.Is(cause, rate.ErrRateLimited) {
		c.logger.WarnContext(ctx, "login throttle unavailable", "error", cause)
	}
	c.metrics.Inc(MetricLoginRateLimited)
	c.emitAudit(ctx, AuditLogin, false, "", "", ErrLoginRateLimited, func() map[string]string {
		return map[string]string{"username": username}
	})
	return ErrLoginRateLimited
}

func (c *Console) createSession(ctx context.Context, userID string) (*session.Session, error) {
	sid := uuid.NewString()
	token, err := c.jwt.CreateAccess(userID, sid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionCreationFailed, err)
	}

	now := c.now()
	sess := &session.Session{
		SessionID:   sid,
		UserID:      userID,
		AccessToken: token,
		CreatedAt:   now.Unix(),
		ExpiresAt:   now.Add(c.config.Session.TTL).Unix(),
	}
	if err := c.sessions.Save(ctx, sess, c.config.Session.TTL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}
	return sess, nil
}

// Logout deletes one session. Logging out a missing session succeeds.
func (c *Console) Logout(ctx context.Context, sessionID string) error {
	if c == nil {
		return ErrNotReady
	}
	if c.sessions == nil {
		return ErrSessionsDisabled
	}
	if err := c.sessions.Delete(ctx, sessionID); err != nil {
		err = fmt.Errorf("%w: %w", ErrSessionInvalidationFailed, err)
		c.emitAudit(ctx, AuditLogout, false, "", sessionID, err, nil)
		return err
	}
	c.metrics.Inc(MetricLogout)
	c.emitAudit(ctx, AuditLogout, true, "", sessionID, nil, nil)
	return nil
}

// LogoutAll deletes every session of userID.
func (c *Console) LogoutAll(ctx context.Context, userID string) error {
	if c == nil {
		return ErrNotReady
	}
	if c.sessions == nil {
		return ErrSessionsDisabled
	}
	if err := c.sessions.DeleteAllForUser(ctx, userID); err != nil {
		err = fmt.Errorf("%w: %w", ErrSessionInvalidationFailed, err)
		c.emitAudit(ctx, AuditLogoutAll, false, userID, "", err, nil)
		return err
	}
	c.metrics.Inc(MetricLogoutAll)
	c.emitAudit(ctx, AuditLogoutAll, true, userID, "", nil, nil)
	return nil
}

// VerifyAccessToken parses a token issued by Login. It is for API clients that
// present the token as a bearer credential; the guard itself never calls it.
func (c *Console) VerifyAccessToken(token string) (*jwt.AccessClaims, error) {
	if c == nil || c.jwt == nil {
		return nil, ErrNotReady
	}
	return c.jwt.ParseAccess(token)
}

// Sessions returns the Redis session store, or nil when Redis is not configured.
func (c *Console) Sessions() *session.Store {
	if c == nil {
		return nil
	}
	return c.sessions
}

// HashPassword hashes plain with the configured Argon2id costs, for provisioning
// operator credentials.
func (c *Console) HashPassword(plain string) (string, error) {
	if c == nil {
		return "", ErrNotReady
	}
	return c.hasher.Hash(plain)
}

/*
====================================
LIFECYCLE / OBSERVABILITY
====================================
*/

// Close flushes and stops the audit dispatcher. It does not close Redis or storage.
func (c *Console) Close() {
	if c == nil {
		return
	}
	c.audit.Close()
}

// AuditDropped returns how many audit events were dropped under backpressure.
func (c *Console) AuditDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.audit.Dropped()
}

// MetricsSnapshot returns a copy of the console counters.
func (c *Console) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}
