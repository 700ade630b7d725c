//go:build integration
// +build integration

package test

import (
	"context"
	"net"
	"sync/atomic"
	"testing"

	goConsole "github.com/MrEthical07/goConsole"
	"github.com/MrEthical07/goConsole/kvstore/rediskv"
	"github.com/MrEthical07/goConsole/password"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const (
	operator       = "admin"
	operatorSecret = "correct-horse-battery"
)

// cmdCounter is a go-redis hook counting commands and pipeline round-trips.
type cmdCounter struct {
	commands  atomic.Int64
	pipelines atomic.Int64
}

func (h *cmdCounter) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *cmdCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.commands.Add(1)
		return next(ctx, cmd)
	}
}

func (h *cmdCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		h.pipelines.Add(1)
		h.commands.Add(int64(len(cmds)))
		return next(ctx, cmds)
	}
}

func (h *cmdCounter) Reset() {
	h.commands.Store(0)
	h.pipelines.Store(0)
}

func (h *cmdCounter) Commands() int64  { return h.commands.Load() }
func (h *cmdCounter) Pipelines() int64 { return h.pipelines.Load() }

type harness struct {
	console *goConsole.Console
	redis   *redis.Client
	mr      *miniredis.Miniredis
	counter *cmdCounter
}

// newHarness builds a console whose sessions and theme both live in one miniredis,
// with a warmed, counted client.
func newHarness(t *testing.T, mutate func(*goConsole.Config)) *harness {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	pcfg := password.Config{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	hasher, err := password.NewHasher(pcfg)
	if err != nil {
		t.Fatalf("hasher: %v", err)
	}
	hash, err := hasher.Hash(operatorSecret)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	auth, err := goConsole.NewStaticAuthenticator(operator, hash, hasher)
	if err != nil {
		t.Fatalf("authenticator: %v", err)
	}

	cfg := goConsole.DefaultConfig()
	cfg.JWT.PrivateKey = []byte("0123456789abcdef0123456789abcdef")
	cfg.Password = goConsole.PasswordConfig{Memory: pcfg.Memory, Time: pcfg.Time, Parallelism: pcfg.Parallelism, SaltLength: pcfg.SaltLength, KeyLength: pcfg.KeyLength}
	cfg.Metrics.Enabled = true
	if mutate != nil {
		mutate(&cfg)
	}

	c, err := goConsole.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithAuthenticator(auth).
		WithPreferenceStorage(rediskv.New(rdb, cfg.Session.RedisPrefix)).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(c.Close)

	counter := &cmdCounter{}
	rdb.AddHook(counter)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("warmup ping: %v", err)
	}
	counter.Reset()

	return &harness{console: c, redis: rdb, mr: mr, counter: counter}
}
