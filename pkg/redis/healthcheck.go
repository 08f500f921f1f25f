package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a func(context.Context) error that pings client.
// A failed ping is reported together with the connection pool counters.
//
//	r.Get("/healthz", healthHandler(redis.Healthcheck(client)))
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.Join(ErrHealthcheckFailed, errors.New("nil client"))
		}
		err := client.Ping(ctx).Err()
		if err == nil {
			return nil
		}
		if stats := client.PoolStats(); stats != nil {
			err = fmt.Errorf("%w (pool: total=%d idle=%d timeouts=%d)", err, stats.TotalConns, stats.IdleConns, stats.Timeouts)
		}
		return errors.Join(ErrHealthcheckFailed, err)
	}
}
