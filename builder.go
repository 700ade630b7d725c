package goConsole

import (
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
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Console]. It is single-use: Build may succeed once.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	prefStorage   preference.Storage
	signal        preference.SystemSignal
	accessor      session.Accessor
	authenticator Authenticator
	auditSink     AuditSink
	logger        *slog.Logger

	built bool
}

// New returns a builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the client used for session storage. Without it, Login and Logout
// return [ErrSessionsDisabled] and the guard redirects unless a session accessor is
// supplied.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithPreferenceStorage sets durable storage for the theme. Without it the theme lives
// in memory only.
func (b *Builder) WithPreferenceStorage(storage preference.Storage) *Builder {
	b.prefStorage = storage
	return b
}

// WithSystemSignal sets the host dark-mode signal consulted when nothing is stored.
func (b *Builder) WithSystemSignal(signal preference.SystemSignal) *Builder {
	b.signal = signal
	return b
}

// WithSessionAccessor overrides the Redis-backed accessor the guard reads from.
func (b *Builder) WithSessionAccessor(accessor session.Accessor) *Builder {
	b.accessor = accessor
	return b
}

// WithAuthenticator enables Login. It requires Redis and a JWT signing key.
func (b *Builder) WithAuthenticator(a Authenticator) *Builder {
	b.authenticator = a
	return b
}

// WithAuditSink sets where audit events are delivered when audit is enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger sets the logger; nil means slog.Default().
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled toggles in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the CheckAccess latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and wires the console.
func (b *Builder) Build() (*Console, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	hasher, err := password.NewHasher(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	c := &Console{
		config:        cfg,
		logger:        logger,
		authenticator: b.authenticator,
		hasher:        hasher,
		metrics:       NewMetrics(cfg.Metrics),
		now:           time.Now,
	}

	// -------- SESSIONS --------
	if b.redis != nil {
		c.sessions = session.NewStore(b.redis, cfg.Session.RedisPrefix)
	}
	accessor := b.accessor
	if accessor == nil && c.sessions != nil {
		accessor = session.NewStoreAccessor(c.sessions, logger)
	}

	// -------- LOGIN --------
	if b.authenticator != nil {
		if c.sessions == nil {
			return nil, fmt.Errorf("%w: login requires a redis client", ErrInvalidConfig)
		}
		if len(cfg.JWT.PrivateKey) == 0 {
			return nil, fmt.Errorf("%w: login requires a JWT PrivateKey", ErrInvalidConfig)
		}
	}
	if b.redis != nil && cfg.Login.MaxAttempts > 0 {
		c.limiter = rate.New(b.redis, cfg.Session.RedisPrefix, rate.Config{
			MaxAttempts:      cfg.Login.MaxAttempts,
			Cooldown:         cfg.Login.Cooldown,
			EnableIPThrottle: cfg.Login.EnableIPThrottle,
		})
	}
	if len(cfg.JWT.PrivateKey) > 0 || len(cfg.JWT.PublicKey) > 0 {
		jm, err := jwt.NewManager(jwt.Config{
			AccessTTL:     cfg.JWT.AccessTTL,
			SigningMethod: jwt.SigningMethod(cfg.JWT.SigningMethod),
			PrivateKey:    cloneBytes(cfg.JWT.PrivateKey),
			PublicKey:     cloneBytes(cfg.JWT.PublicKey),
			Issuer:        cfg.JWT.Issuer,
		})
		if err != nil {
			return nil, err
		}
		c.jwt = jm
	}

	// -------- GUARD / PREFERENCE --------
	c.guard = guard.New(accessor,
		guard.WithLoginPath(cfg.Guard.LoginPath),
		guard.WithObserver(c.observeGuard),
	)
	c.prefs = preference.New(b.prefStorage, b.signal,
		preference.WithKey(cfg.Preference.StorageKey),
		preference.WithDefault(cfg.Preference.Default),
		preference.WithInitHook(c.observeThemeInit),
	)

	c.audit = audit.NewDispatcher(audit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	b.built = true

	return c, nil
}
