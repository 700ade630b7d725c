package goConsole

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrEthical07/goConsole/guard"
	"github.com/MrEthical07/goConsole/preference"
)

// Config holds every tunable of a [Console]. Start from [DefaultConfig] and override
// fields; Build validates the result.
type Config struct {
	Guard      GuardConfig
	Session    SessionConfig
	JWT        JWTConfig
	Login      LoginConfig
	Password   PasswordConfig
	Preference PreferenceConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
GUARD CONFIG
====================================
*/

// GuardConfig controls navigation gating.
type GuardConfig struct {
	// LoginPath is the redirect target for unauthenticated navigation. It must be an
	// absolute path.
	LoginPath string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls Redis session storage.
type SessionConfig struct {
	RedisPrefix string
	TTL         time.Duration
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig controls the access tokens issued at login.
type JWTConfig struct {
	AccessTTL     time.Duration
	SigningMethod string // "hs256" (default) or "ed25519"
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
}

/*
====================================
LOGIN THROTTLE CONFIG
====================================
*/

// LoginConfig throttles failed logins in Redis. MaxAttempts 0 disables it.
type LoginConfig struct {
	MaxAttempts      int
	Cooldown         time.Duration
	EnableIPThrottle bool
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig holds Argon2id costs for operator credential hashing.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
PREFERENCE CONFIG
====================================
*/

// PreferenceConfig controls the persisted theme.
type PreferenceConfig struct {
	StorageKey string
	// Default is the theme used when neither storage nor the system signal decides.
	Default preference.Theme
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Guard: GuardConfig{
			LoginPath: guard.DefaultLoginPath,
		},
		Session: SessionConfig{
			RedisPrefix: "cs",
			TTL:         12 * time.Hour,
		},
		JWT: JWTConfig{
			AccessTTL:     12 * time.Hour,
			SigningMethod: "hs256",
			Issuer:        "goconsole",
		},
		Login: LoginConfig{
			MaxAttempts:      5,
			Cooldown:         15 * time.Minute,
			EnableIPThrottle: false,
		},
		Password: PasswordConfig{
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Preference: PreferenceConfig{
			StorageKey: preference.DefaultKey,
			Default:    preference.ThemeLight,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.PrivateKey = cloneBytes(cfg.JWT.PrivateKey)
	out.JWT.PublicKey = cloneBytes(cfg.JWT.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first invalid setting. Key material is optional here: a
// console without a JWT key cannot log operators in, which Build enforces only when
// an authenticator is configured. The jwt package parses keys at Build.
func (c *Config) Validate() error {
	// Guard
	if !strings.HasPrefix(c.Guard.LoginPath, "/") {
		return fmt.Errorf("%w: Guard LoginPath must be an absolute path", ErrInvalidConfig)
	}

	// Session
	if c.Session.RedisPrefix == "" {
		return fmt.Errorf("%w: Session RedisPrefix must not be empty", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.Session.RedisPrefix, " \t\n") {
		return fmt.Errorf("%w: Session RedisPrefix must not contain whitespace", ErrInvalidConfig)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("%w: Session TTL must be > 0", ErrInvalidConfig)
	}

	// JWT
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("%w: JWT AccessTTL must be > 0", ErrInvalidConfig)
	}
	if c.JWT.AccessTTL > c.Session.TTL {
		return fmt.Errorf("%w: JWT AccessTTL must not exceed Session TTL", ErrInvalidConfig)
	}
	switch c.JWT.SigningMethod {
	case "hs256":
		if len(c.JWT.PrivateKey) > 0 && len(c.JWT.PrivateKey) < 32 {
			return fmt.Errorf("%w: hs256 PrivateKey must be at least 32 bytes", ErrInvalidConfig)
		}
	case "ed25519":
		if len(c.JWT.PublicKey) > 0 && len(c.JWT.PrivateKey) == 0 {
			return fmt.Errorf("%w: ed25519 requires PrivateKey to issue tokens", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported JWT signing method %q", ErrInvalidConfig, c.JWT.SigningMethod)
	}

	// Login throttle
	if c.Login.MaxAttempts < 0 {
		return fmt.Errorf("%w: Login MaxAttempts must be >= 0", ErrInvalidConfig)
	}
	if c.Login.MaxAttempts > 0 && c.Login.Cooldown <= 0 {
		return fmt.Errorf("%w: Login Cooldown must be > 0 when throttling is enabled", ErrInvalidConfig)
	}

	// Password
	if c.Password.Memory < 8*1024 {
		return fmt.Errorf("%w: Password Memory must be >= 8192 KB", ErrInvalidConfig)
	}
	if c.Password.Time < 1 || c.Password.Parallelism < 1 {
		return fmt.Errorf("%w: Password Time and Parallelism must be >= 1", ErrInvalidConfig)
	}
	if c.Password.SaltLength < 16 || c.Password.KeyLength < 16 {
		return fmt.Errorf("%w: Password SaltLength and KeyLength must be >= 16", ErrInvalidConfig)
	}

	// Preference
	if c.Preference.StorageKey == "" {
		return fmt.Errorf("%w: Preference StorageKey must not be empty", ErrInvalidConfig)
	}
	if !c.Preference.Default.Valid() {
		return fmt.Errorf("%w: Preference Default must be light or dark", ErrInvalidConfig)
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return fmt.Errorf("%w: Audit BufferSize must be > 0 when audit is enabled", ErrInvalidConfig)
	}

	// Metrics
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return fmt.Errorf("%w: latency histograms require metrics to be enabled", ErrInvalidConfig)
	}

	return nil
}
