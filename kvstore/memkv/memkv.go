// Package memkv provides in-process key-value storage.
package memkv

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable is returned by every call on [Unavailable] storage.
var ErrUnavailable = errors.New("memkv: storage unavailable")

// Store is a mutex-guarded map. The zero value is not usable; call [New].
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.writes++
	return nil
}

// Writes returns the number of successful Set calls.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Failing is storage whose every call fails with [ErrUnavailable].
type Failing struct{}

// Unavailable returns [Failing] storage.
func Unavailable() Failing {
	return Failing{}
}

// Get always fails.
func (Failing) Get(context.Context, string) (string, bool, error) {
	return "", false, ErrUnavailable
}

// Set always fails.
func (Failing) Set(context.Context, string, string) error {
	return ErrUnavailable
}
