// Package redis opens go-redis clients for the identity and state stores.
//
// Open validates the URL scheme, applies pool and timeout settings and pings
// the server with retries, so a returned client is known to be reachable:
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//		redis.WithRetry(5, time.Second),
//	)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := cache.NewRedis(client, cache.WithPrefix("oauth"))
//
// Healthcheck returns a func(context.Context) error suitable for health endpoints.
package redis
