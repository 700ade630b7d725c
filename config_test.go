package goConsole

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate: %v", err)
	}
	if cfg.Guard.LoginPath != "/admin/login" || cfg.Preference.StorageKey != "vite-ui-theme" || cfg.Preference.Default != "light" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{name: "custom login path", mutate: func(c *Config) { c.Guard.LoginPath = "/console/signin" }, wantValid: true},
		{name: "relative login path", mutate: func(c *Config) { c.Guard.LoginPath = "admin/login" }},
		{name: "empty login path", mutate: func(c *Config) { c.Guard.LoginPath = "" }},
		{name: "empty redis prefix", mutate: func(c *Config) { c.Session.RedisPrefix = "" }},
		{name: "redis prefix whitespace", mutate: func(c *Config) { c.Session.RedisPrefix = "c s" }},
		{name: "zero session ttl", mutate: func(c *Config) { c.Session.TTL = 0 }},
		{name: "access ttl beyond session", mutate: func(c *Config) { c.JWT.AccessTTL = c.Session.TTL + time.Minute }},
		{name: "unknown signing method", mutate: func(c *Config) { c.JWT.SigningMethod = "rs256" }},
		{name: "short hs256 secret", mutate: func(c *Config) { c.JWT.PrivateKey = []byte("short") }},
		{name: "hs256 secret", mutate: func(c *Config) { c.JWT.PrivateKey = testJWTSecret }, wantValid: true},
		{name: "ed25519 public only", mutate: func(c *Config) {
			c.JWT.SigningMethod = "ed25519"
			c.JWT.PublicKey = make([]byte, 32)
		}},
		{name: "negative login attempts", mutate: func(c *Config) { c.Login.MaxAttempts = -1 }},
		{name: "throttle without cooldown", mutate: func(c *Config) { c.Login.Cooldown = 0 }},
		{name: "throttle disabled", mutate: func(c *Config) {
			c.Login.MaxAttempts = 0
			c.Login.Cooldown = 0
		}, wantValid: true},
		{name: "weak password memory", mutate: func(c *Config) { c.Password.Memory = 1024 }},
		{name: "short salt", mutate: func(c *Config) { c.Password.SaltLength = 8 }},
		{name: "empty storage key", mutate: func(c *Config) { c.Preference.StorageKey = "" }},
		{name: "dark default", mutate: func(c *Config) { c.Preference.Default = "dark" }, wantValid: true},
		{name: "invalid default theme", mutate: func(c *Config) { c.Preference.Default = "sepia" }},
		{name: "audit zero buffer", mutate: func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = 0
		}},
		{name: "histograms without metrics", mutate: func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.EnableLatencyHistograms = true
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.wantValid && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestCloneConfigCopiesKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JWT.PrivateKey = []byte("0123456789abcdef0123456789abcdef")
	out := cloneConfig(cfg)
	cfg.JWT.PrivateKey[0] = 'X'
	if out.JWT.PrivateKey[0] != '0' {
		t.Fatal("expected clone to own its key bytes")
	}
}
