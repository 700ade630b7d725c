package session

import "time"

// Session is the server-side record of an operator login.
//
// AccessToken is opaque here. Readers must not infer validity from its shape.
type Session struct {
	SessionID   string
	UserID      string
	AccessToken string

	CreatedAt int64
	ExpiresAt int64
}

// HasToken reports whether the session carries a non-empty access token. Any
// non-empty value counts, including whitespace.
func (s *Session) HasToken() bool {
	return s != nil && s.AccessToken != ""
}

// Expired reports whether the session's absolute lifetime has passed at now.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return s.ExpiresAt > 0 && now.Unix() >= s.ExpiresAt
}
