package health

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/socialauth/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy means every check passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy means at least one check failed.
	StatusUnhealthy = "unhealthy"
)

// Sentinel errors joined into failed results.
var (
	ErrCheckFailed  = errors.New("health: check failed")
	ErrCheckTimeout = errors.New("health: check timeout")
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

// Checks maps a dependency name to its check.
type Checks map[string]Check

// Report is the aggregated outcome of a run.
type Report struct {
	Checks map[string]Result `json:"checks,omitempty"`
	Status string            `json:"status"`
}

// Result is the outcome of a single check.
type Result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Healthy reports whether every check passed.
func (r Report) Healthy() bool { return r.Status == StatusHealthy }

type options struct {
	log     *slog.Logger
	timeout time.Duration
}

// Option configures Run and Handler.
type Option func(*options)

// WithTimeout bounds the whole run. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger logs every failed check at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{timeout: defaultTimeout, log: logger.NewNope()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Run executes all checks concurrently and collects their results.
// A check still running at the deadline fails with ErrCheckTimeout.
func Run(ctx context.Context, checks Checks, opts ...Option) Report {
	if len(checks) == 0 {
		return Report{Status: StatusHealthy}
	}
	o := newOptions(opts)

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]Result, len(checks))
		status  = StatusHealthy
	)
	for name, check := range checks {
		g.Go(func() error {
			res := Result{Status: StatusHealthy}
			if err := runOne(ctx, check); err != nil {
				res = Result{Status: StatusUnhealthy, Error: err.Error()}
				o.log.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			defer mu.Unlock()
			results[name] = res
			if res.Status == StatusUnhealthy {
				status = StatusUnhealthy
			}
			return nil
		})
	}
	_ = g.Wait()

	return Report{Checks: results, Status: status}
}

func runOne(ctx context.Context, check Check) error {
	if check == nil {
		return errors.Join(ErrCheckFailed, errors.New("nil check"))
	}
	err := check(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.Join(ErrCheckTimeout, err)
	default:
		return errors.Join(ErrCheckFailed, err)
	}
}

// Handler answers with the JSON report: 200 when healthy, 503 otherwise.
func Handler(checks Checks, opts ...Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := Run(r.Context(), checks, opts...)

		code := http.StatusOK
		if !report.Healthy() {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(report)
	}
}
