package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL returns ErrEmptyConnectionURL", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, "")
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
		require.Nil(t, client)
	})

	testCases := []struct {
		name string
		url  string
	}{
		{name: "http scheme", url: "http://localhost:6379"},
		{name: "no scheme", url: "localhost:6379"},
		{name: "invalid port", url: "redis://localhost:notaport"},
		{name: "invalid database", url: "redis://localhost:6379/notanumber"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client, err := Open(ctx, tc.url)
			require.ErrorIs(t, err, ErrFailedToParseURL)
			require.Nil(t, client)
		})
	}
}

func TestOpen_Unreachable(t *testing.T) {
	t.Parallel()

	client, err := Open(context.Background(), "redis://127.0.0.1:1/0",
		WithRetry(2, time.Millisecond),
		WithTimeout(50*time.Millisecond),
	)
	require.ErrorIs(t, err, ErrConnectionFailed)
	require.Nil(t, client)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	err := Healthcheck(nil)(context.Background())
	require.True(t, errors.Is(err, ErrHealthcheckFailed))
}

func TestHealthcheck_Unreachable(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	err := Healthcheck(client)(context.Background())
	require.ErrorIs(t, err, ErrHealthcheckFailed)
	require.Contains(t, err.Error(), "pool: total=")
}

func TestWait(t *testing.T) {
	t.Parallel()

	t.Run("cancelled context returns immediately", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := wait(ctx, 10*time.Second)
		require.Equal(t, context.Canceled, err)
		require.Less(t, time.Since(start), time.Second)
	})

	t.Run("timeout completes normally", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		require.NoError(t, wait(context.Background(), 20*time.Millisecond))
		require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()

	opts := defaultOptions()
	require.Equal(t, 10, opts.poolSize)
	require.Equal(t, 3, opts.retryAttempts)
	require.Equal(t, 2*time.Second, opts.retryInterval)
	require.Equal(t, 3*time.Second, opts.timeout)

	WithPoolSize(25)(opts)
	WithRetry(5, time.Second)(opts)
	WithTimeout(time.Second)(opts)
	require.Equal(t, 25, opts.poolSize)
	require.Equal(t, 5, opts.retryAttempts)
	require.Equal(t, time.Second, opts.retryInterval)
	require.Equal(t, time.Second, opts.timeout)
}
