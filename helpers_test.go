package goConsole

import (
	"testing"

	"github.com/MrEthical07/goConsole/password"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const (
	testOperator = "admin"
	testPassword = "correct-horse-battery"
)

var testJWTSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

// testConfig keeps Argon2 costs at the floor so logins stay fast.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.PrivateKey = testJWTSecret
	cfg.Password = PasswordConfig{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	cfg.Metrics.Enabled = true
	return cfg
}

func newTestAuthenticator(t *testing.T) *StaticAuthenticator {
	t.Helper()

	hasher, err := password.NewHasher(password.Config{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	if err != nil {
		t.Fatalf("hasher: %v", err)
	}
	hash, err := hasher.Hash(testPassword)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	auth, err := NewStaticAuthenticator(testOperator, hash, hasher)
	if err != nil {
		t.Fatalf("authenticator: %v", err)
	}
	return auth
}

// newTestConsole builds a console with Redis sessions, a static operator and the
// supplied builder tweaks applied last.
func newTestConsole(t *testing.T, tweak func(*Builder)) (*Console, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, rdb := newTestRedis(t)
	b := New().
		WithConfig(testConfig()).
		WithRedis(rdb).
		WithAuthenticator(newTestAuthenticator(t))
	if tweak != nil {
		tweak(b)
	}

	c, err := b.Build()
	if err != nil {
		_ = rdb.Close()
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}
	return c, mr, func() {
		c.Close()
		_ = rdb.Close()
		mr.Close()
	}
}
