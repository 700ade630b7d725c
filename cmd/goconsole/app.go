package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goConsole "github.com/MrEthical07/goConsole"
	"github.com/MrEthical07/goConsole/kvstore/memkv"
	"github.com/MrEthical07/goConsole/kvstore/rediskv"
	"github.com/MrEthical07/goConsole/kvstore/sqlitekv"
	"github.com/MrEthical07/goConsole/password"
	"github.com/MrEthical07/goConsole/preference"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// app owns everything a command needs and releases it in reverse order.
type app struct {
	cfg     envConfig
	console *goConsole.Console
	closers []func()
}

type appOptions struct {
	// sessions wires Redis sessions and the operator login.
	sessions bool
}

func newApp(ctx context.Context, cfg envConfig, opts appOptions) (_ *app, err error) {
	a := &app{cfg: cfg}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	consoleCfg, err := cfg.consoleConfig()
	if err != nil {
		return nil, err
	}

	var rdb redis.UniversalClient
	if opts.sessions || cfg.Storage == storageRedis {
		if rdb, err = a.openRedis(ctx); err != nil {
			return nil, err
		}
	}

	storage, err := a.openStorage(rdb)
	if err != nil {
		return nil, err
	}

	b := goConsole.New().
		WithConfig(consoleCfg).
		WithPreferenceStorage(storage).
		WithSystemSignal(preference.EnvSignal(cfg.DarkSignalVar)).
		WithLogger(slog.Default())
	if cfg.AuditLog {
		b.WithAuditSink(goConsole.NewSlogSink(slog.Default()))
	}
	if opts.sessions {
		b.WithRedis(rdb)
		if cfg.AdminPasswordHash != "" {
			auth, err := newOperatorAuthenticator(consoleCfg, cfg.AdminUser, cfg.AdminPasswordHash)
			if err != nil {
				return nil, err
			}
			b.WithAuthenticator(auth)
		} else {
			slog.Warn("GOCONSOLE_ADMIN_PASSWORD_HASH not set; login is disabled")
		}
	}

	c, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build console: %w", err)
	}
	a.console = c
	a.closers = append(a.closers, c.Close)
	return a, nil
}

func newOperatorAuthenticator(cfg goConsole.Config, user, hash string) (*goConsole.StaticAuthenticator, error) {
	hasher, err := password.NewHasher(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}
	if weak, err := hasher.NeedsRehash(hash); err == nil && weak {
		slog.Warn("operator password hash uses weaker costs than configured; regenerate it with hash-password")
	}
	return goConsole.NewStaticAuthenticator(user, hash, hasher)
}

func (a *app) openRedis(ctx context.Context) (redis.UniversalClient, error) {
	addr := a.cfg.RedisAddr
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("start miniredis: %w", err)
		}
		a.closers = append(a.closers, mr.Close)
		addr = mr.Addr()
		slog.Warn("GOCONSOLE_REDIS_ADDR not set; using in-process miniredis", "addr", addr)
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
	a.closers = append(a.closers, func() { _ = client.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// Sessions degrade to redirects while Redis is down; keep serving.
		slog.Warn("redis ping failed", "addr", addr, "error", err)
	}
	return client, nil
}

func (a *app) openStorage(rdb redis.UniversalClient) (preference.Storage, error) {
	switch a.cfg.Storage {
	case storageRedis:
		if rdb == nil {
			return nil, errors.New("redis storage requires a redis client")
		}
		return rediskv.New(rdb, a.cfg.RedisPrefix), nil
	case storageSQLite:
		store, err := sqlitekv.Open(a.cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = store.Close() })
		return store, nil
	default:
		return memkv.New(), nil
	}
}

// Close releases resources in reverse acquisition order. It is idempotent.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
