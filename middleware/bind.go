package middleware

import (
	"net/http"
	"strings"

	goConsole "github.com/MrEthical07/goConsole"
	"github.com/MrEthical07/goConsole/jwt"
	"github.com/MrEthical07/goConsole/session"
)

// TokenVerifier parses access tokens issued at login.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*jwt.AccessClaims, error)
}

// BindSession puts the cookie's session ID and the request path into the request
// context. Requests without a valid cookie pass through unbound.
func BindSession(cookie *SessionCookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := goConsole.WithRequestPath(r.Context(), r.URL.Path)
			if sid, ok := cookie.SessionID(r); ok {
				ctx = session.WithID(ctx, sid)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BindBearer binds the session named by a valid bearer token's sid claim. An absent
// or invalid token leaves the request unbound, so the guard redirects it.
func BindBearer(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := goConsole.WithRequestPath(r.Context(), r.URL.Path)
			if token, ok := bearerToken(r.Header.Get("Authorization")); ok && verifier != nil {
				if claims, err := verifier.VerifyAccessToken(token); err == nil {
					ctx = session.WithID(ctx, claims.SID)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
