package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// DefaultCookieName is the cookie carrying the session ID.
const DefaultCookieName = "goconsole-session"

const sessionKeyID = "sid"

// ErrWeakCookieSecret is returned when the cookie signing secret is shorter than 32 bytes.
var ErrWeakCookieSecret = errors.New("cookie secret must be at least 32 bytes")

// CookieOptions controls the session cookie attributes.
type CookieOptions struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// SessionCookie stores the console session ID in an HMAC-signed cookie. The cookie
// holds only the ID; the session itself stays in Redis.
type SessionCookie struct {
	store *sessions.CookieStore
	name  string
}

// NewSessionCookie returns a cookie codec signed with secret.
func NewSessionCookie(secret []byte, opts CookieOptions) (*SessionCookie, error) {
	if len(secret) < 32 {
		return nil, ErrWeakCookieSecret
	}
	if opts.Name == "" {
		opts.Name = DefaultCookieName
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionCookie{store: store, name: opts.Name}, nil
}

// SessionID returns the session ID carried by r. A missing, tampered or expired
// cookie reports false.
func (c *SessionCookie) SessionID(r *http.Request) (string, bool) {
	if c == nil {
		return "", false
	}
	sess, err := c.store.Get(r, c.name)
	if err != nil {
		return "", false
	}
	sid, ok := sess.Values[sessionKeyID].(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}

// SetSessionID writes a fresh cookie carrying sid.
func (c *SessionCookie) SetSessionID(w http.ResponseWriter, r *http.Request, sid string) error {
	sess, err := c.store.New(r, c.name)
	if sess == nil {
		return fmt.Errorf("new cookie session: %w", err)
	}
	sess.Values[sessionKeyID] = sid
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save cookie session: %w", err)
	}
	return nil
}

// Clear expires the cookie.
func (c *SessionCookie) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := c.store.New(r, c.name)
	if sess == nil {
		return errors.New("new cookie session")
	}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear cookie session: %w", err)
	}
	return nil
}
