package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	goConsole "github.com/MrEthical07/goConsole"
	"github.com/MrEthical07/goConsole/preference"
	"github.com/caarlos0/env/v11"
)

// Storage backends for the theme preference.
const (
	storageMemory = "memory"
	storageSQLite = "sqlite"
	storageRedis  = "redis"
)

type envConfig struct {
	Addr      string `env:"GOCONSOLE_ADDR" envDefault:":8080"`
	LogLevel  string `env:"GOCONSOLE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"GOCONSOLE_LOG_FORMAT" envDefault:"text"`

	// Empty RedisAddr starts an in-process miniredis; sessions then do not survive
	// a restart.
	RedisAddr   string        `env:"GOCONSOLE_REDIS_ADDR"`
	RedisPrefix string        `env:"GOCONSOLE_REDIS_PREFIX" envDefault:"cs"`
	SessionTTL  time.Duration `env:"GOCONSOLE_SESSION_TTL" envDefault:"12h"`
	LoginPath   string        `env:"GOCONSOLE_LOGIN_PATH" envDefault:"/admin/login"`

	Storage      string `env:"GOCONSOLE_STORAGE" envDefault:"sqlite"`
	SQLitePath   string `env:"GOCONSOLE_SQLITE_PATH" envDefault:"goconsole.db"`
	ThemeKey     string `env:"GOCONSOLE_THEME_KEY" envDefault:"vite-ui-theme"`
	DefaultTheme string `env:"GOCONSOLE_DEFAULT_THEME" envDefault:"light"`
	// DarkSignalVar names the environment variable consulted as the host dark-mode
	// signal when nothing is stored.
	DarkSignalVar string `env:"GOCONSOLE_DARK_SIGNAL_VAR" envDefault:"GOCONSOLE_DARK"`

	JWTSecret         string `env:"GOCONSOLE_JWT_SECRET"`
	AdminUser         string `env:"GOCONSOLE_ADMIN_USER" envDefault:"admin"`
	AdminPasswordHash string `env:"GOCONSOLE_ADMIN_PASSWORD_HASH"`
	SessionSecret     string `env:"GOCONSOLE_SESSION_SECRET"`
	SecureCookies     bool   `env:"GOCONSOLE_SECURE_COOKIES"`

	LoginMaxAttempts int           `env:"GOCONSOLE_LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginCooldown    time.Duration `env:"GOCONSOLE_LOGIN_COOLDOWN" envDefault:"15m"`
	LoginIPThrottle  bool          `env:"GOCONSOLE_LOGIN_IP_THROTTLE"`

	AuditLog bool `env:"GOCONSOLE_AUDIT_LOG"`
}

func loadConfig() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Storage {
	case storageMemory, storageSQLite, storageRedis:
	default:
		return envConfig{}, fmt.Errorf("GOCONSOLE_STORAGE must be memory, sqlite or redis, got %q", cfg.Storage)
	}
	if cfg.AdminPasswordHash != "" && cfg.JWTSecret == "" {
		return envConfig{}, fmt.Errorf("GOCONSOLE_JWT_SECRET is required when GOCONSOLE_ADMIN_PASSWORD_HASH is set")
	}
	return cfg, nil
}

// consoleConfig maps the environment onto the library configuration.
func (c envConfig) consoleConfig() (goConsole.Config, error) {
	def, err := preference.ParseTheme(c.DefaultTheme)
	if err != nil {
		return goConsole.Config{}, fmt.Errorf("GOCONSOLE_DEFAULT_THEME: %w", err)
	}

	cfg := goConsole.DefaultConfig()
	cfg.Guard.LoginPath = c.LoginPath
	cfg.Session.RedisPrefix = c.RedisPrefix
	cfg.Session.TTL = c.SessionTTL
	if cfg.JWT.AccessTTL > c.SessionTTL {
		cfg.JWT.AccessTTL = c.SessionTTL
	}
	if c.JWTSecret != "" {
		cfg.JWT.PrivateKey = []byte(c.JWTSecret)
	}
	cfg.Login.MaxAttempts = c.LoginMaxAttempts
	cfg.Login.Cooldown = c.LoginCooldown
	cfg.Login.EnableIPThrottle = c.LoginIPThrottle
	cfg.Preference.StorageKey = c.ThemeKey
	cfg.Preference.Default = def
	cfg.Audit.Enabled = c.AuditLog
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true

	if err := cfg.Validate(); err != nil {
		return goConsole.Config{}, err
	}
	return cfg, nil
}

// initLogger sets the default slog handler. Unknown levels mean info and unknown
// formats mean text.
func initLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
