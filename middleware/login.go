package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	goConsole "github.com/MrEthical07/goConsole"
	"github.com/MrEthical07/goConsole/session"
)

// SessionService is satisfied by *goConsole.Console.
type SessionService interface {
	Login(ctx context.Context, username, password string) (*session.Session, error)
	Logout(ctx context.Context, sessionID string) error
	LoginPath() string
}

// LoginHandler accepts a POSTed form with username and password fields. On success
// it sets the session cookie and redirects to home with 303. Bad credentials are 401,
// a throttled caller gets 429 and anything else is 503.
func LoginHandler(svc SessionService, cookie *SessionCookie, home string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		ctx := goConsole.WithRequestPath(r.Context(), r.URL.Path)
		ctx = goConsole.WithClientIP(ctx, clientIP(r))
		sess, err := svc.Login(ctx, r.PostForm.Get("username"), r.PostForm.Get("password"))
		switch {
		case errors.Is(err, goConsole.ErrInvalidCredentials):
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		case errors.Is(err, goConsole.ErrLoginRateLimited):
			http.Error(w, "too many attempts", http.StatusTooManyRequests)
			return
		case err != nil:
			slog.WarnContext(ctx, "login unavailable", "error", err)
			http.Error(w, "login unavailable", http.StatusServiceUnavailable)
			return
		}

		if err := cookie.SetSessionID(w, r, sess.SessionID); err != nil {
			slog.ErrorContext(ctx, "failed to set session cookie", "error", err)
			_ = svc.Logout(ctx, sess.SessionID)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, home, http.StatusSeeOther)
	})
}

// LogoutHandler deletes the cookie's session, expires the cookie and redirects to the
// login path. A request without a session cookie is still redirected.
func LogoutHandler(svc SessionService, cookie *SessionCookie) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := goConsole.WithRequestPath(r.Context(), r.URL.Path)
		if sid, ok := cookie.SessionID(r); ok {
			if err := svc.Logout(session.WithID(ctx, sid), sid); err != nil {
				slog.WarnContext(ctx, "logout failed", "error", err)
			}
		}
		if err := cookie.Clear(w, r); err != nil {
			slog.WarnContext(ctx, "failed to clear session cookie", "error", err)
		}
		http.Redirect(w, r, svc.LoginPath(), http.StatusSeeOther)
	})
}

// clientIP is the host part of RemoteAddr. Proxy headers are not trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
