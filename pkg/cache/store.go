package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is a string key-value store with per-entry TTL.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the store's default TTL
//   - Negative: entry never expires
type Store interface {
	// Get returns the value under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Take returns the value under key and removes it in one step.
	// It suits one-time values such as authorization state.
	Take(ctx context.Context, key string) (string, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Loader computes a value on a cache miss, together with the TTL to store it with.
type Loader func(ctx context.Context) (string, time.Duration, error)

var loads singleflight.Group

// GetOrLoad returns the cached value under key or computes it with load.
// Concurrent misses for the same key share one call to load.
// A failed load is not cached; a failed write-back is ignored.
func GetOrLoad(ctx context.Context, s Store, key string, load Loader) (string, error) {
	if v, err := s.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := loads.Do(key, func() (any, error) {
		v, ttl, err := load(ctx)
		if err != nil {
			return nil, err
		}
		_ = s.Set(ctx, key, v, ttl)
		return v, nil
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}
