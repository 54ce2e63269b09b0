// Package cache stores serialized read responses. Callers fold the store
// revision into every key, so a commit makes older entries unreachable and
// they simply age out.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Cache is a byte-oriented key value store with per-entry TTL.
type Cache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// ErrClosed is returned by a closed cache.
var ErrClosed = errors.New("cache: closed")

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, b, ttl)
}

// GetJSON decodes the entry under key into dest.
func GetJSON(ctx context.Context, c Cache, key string, dest any) (bool, error) {
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}
