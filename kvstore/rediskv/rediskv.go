// Package rediskv stores preference values as Redis strings.
package rediskv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable wraps Redis failures other than a missing key.
var ErrUnavailable = errors.New("rediskv: redis unavailable")

// Store reads and writes keys under a fixed prefix. Values do not expire.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// New returns a store writing "<prefix>:<key>". An empty prefix writes keys as-is.
func New(client redis.UniversalClient, prefix string) *Store {
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

// Get returns the value stored under key.
//
//	Performance: 1 Redis GET.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.redis.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v, true, nil
}

// Set stores value under key without expiry.
//
//	Performance: 1 Redis SET.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.redis.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
