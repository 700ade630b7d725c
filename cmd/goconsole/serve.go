package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goConsole "github.com/MrEthical07/goConsole"
	"github.com/MrEthical07/goConsole/metrics/export/prometheus"
	"github.com/MrEthical07/goConsole/middleware"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
	healthTimeout   = 2 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin console HTTP shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadEnv()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, appOptions{sessions: true})
			if err != nil {
				return err
			}
			defer a.Close()

			secret, err := cookieSecret(cfg.SessionSecret)
			if err != nil {
				return err
			}
			cookie, err := middleware.NewSessionCookie(secret, middleware.CookieOptions{
				MaxAge: cfg.SessionTTL,
				Secure: cfg.SecureCookies,
			})
			if err != nil {
				return fmt.Errorf("GOCONSOLE_SESSION_SECRET: %w", err)
			}

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           newHandler(a.console, cookie),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return runServer(ctx, srv)
		},
	}
}

// newHandler mounts the console routes. Cookie sessions and bearer tokens are both
// bound; a valid bearer token wins.
func newHandler(c *goConsole.Console, cookie *middleware.SessionCookie) http.Handler {
	protected := middleware.RequireSession(c)
	theme := protected(middleware.ThemeHandler(c))
	exporter := prometheus.NewExporter(c)

	mux := http.NewServeMux()
	mux.Handle("GET "+c.LoginPath(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintf(w, "POST username and password to %s\n", c.LoginPath())
	}))
	mux.Handle("POST "+c.LoginPath(), middleware.LoginHandler(c, cookie, "/admin/"))
	mux.Handle("POST /admin/logout", middleware.LogoutHandler(c, cookie))
	mux.Handle("GET /admin/{$}", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintf(w, "goconsole admin (theme: %s)\n", c.Theme(r.Context()))
	})))
	mux.Handle(middleware.ThemePath, theme)
	mux.Handle(middleware.ThemeTogglePath, theme)
	mux.Handle("GET /metrics", exporter.Handler())
	mux.Handle("GET /healthz", healthHandler(c))

	return middleware.BindSession(cookie)(middleware.BindBearer(c)(mux))
}

// healthHandler reports Redis session-store reachability. Without Redis every guarded
// route redirects, so the console counts as unhealthy.
func healthHandler(c *goConsole.Console) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		store := c.Sessions()
		if store == nil {
			http.Error(w, "sessions disabled", http.StatusServiceUnavailable)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		latency, err := store.Ping(ctx)
		if err != nil {
			slog.WarnContext(ctx, "health check failed", "error", err)
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprintf(w, "ok redis=%s\n", latency.Round(time.Microsecond))
	})
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("goconsole listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// cookieSecret returns the configured secret or a random one, which invalidates
// every cookie on restart.
func cookieSecret(configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}
	slog.Warn("GOCONSOLE_SESSION_SECRET not set; generating an ephemeral cookie secret")
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate cookie secret: %w", err)
	}
	return secret, nil
}
