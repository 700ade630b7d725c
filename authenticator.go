package goConsole

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/MrEthical07/goConsole/password"
)

// Authenticator checks operator credentials and returns the operator's user ID.
// Any error is reported to callers as [ErrInvalidCredentials].
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (userID string, err error)
}

// AuthenticatorFunc adapts a function to [Authenticator].
type AuthenticatorFunc func(ctx context.Context, username, password string) (string, error)

// Authenticate calls f.
func (f AuthenticatorFunc) Authenticate(ctx context.Context, username, password string) (string, error) {
	return f(ctx, username, password)
}

// StaticAuthenticator accepts exactly one operator: a fixed username and an Argon2id
// password hash. The username comparison is constant-time and the hash is always
// computed, so response time does not reveal which field was wrong.
type StaticAuthenticator struct {
	username     []byte
	passwordHash string
	hasher       *password.Hasher
}

// NewStaticAuthenticator returns an authenticator for username. passwordHash must be a
// PHC string produced by [password.Hasher.Hash]. The username doubles as the user ID.
func NewStaticAuthenticator(username, passwordHash string, hasher *password.Hasher) (*StaticAuthenticator, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: operator username required", ErrInvalidConfig)
	}
	if hasher == nil {
		return nil, fmt.Errorf("%w: password hasher required", ErrInvalidConfig)
	}
	if _, err := hasher.NeedsRehash(passwordHash); err != nil {
		return nil, fmt.Errorf("%w: operator password hash: %v", ErrInvalidConfig, err)
	}
	return &StaticAuthenticator{
		username:     []byte(username),
		passwordHash: passwordHash,
		hasher:       hasher,
	}, nil
}

// Authenticate implements [Authenticator].
func (a *StaticAuthenticator) Authenticate(_ context.Context, username, plain string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), a.username) == 1
	passOK, err := a.hasher.Verify(plain, a.passwordHash)
	if err != nil {
		return "", err
	}
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}
	return string(a.username), nil
}
