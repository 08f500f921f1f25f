// Package cache provides small string key-value stores with TTL.
//
// The oauth package uses a Store to share resolved user identities between
// clients, keyed by a hash of the access token. Applications also use it to
// keep one-time authorization state between the redirect and the callback.
//
// # Backends
//
//   - Memory: in-process map with lazy expiry and an optional background sweep
//   - Redis: shared store on top of go-redis, with optional key prefix
//
// # Usage
//
//	store := cache.NewMemory(cache.WithDefaultTTL(10 * time.Minute))
//	defer store.Close()
//
//	openid, err := cache.GetOrLoad(ctx, store, key, func(ctx context.Context) (string, time.Duration, error) {
//		id, err := lookup(ctx)
//		return id, time.Hour, err
//	})
//
// GetOrLoad deduplicates concurrent misses for the same key with singleflight,
// so a burst of API calls for one token triggers a single identity lookup.
//
// # Errors
//
//   - ErrNotFound: key missing or expired
//   - ErrClosed: Memory store used after Close
//   - ErrEmptyKey: Set called with an empty key
package cache
