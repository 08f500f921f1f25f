// Package health serves a readiness endpoint over named dependency checks.
//
// A check is any func(context.Context) error, such as the closure returned by
// redis.Healthcheck. [Handler] runs every check in parallel under one
// deadline and answers 200 when all pass, 503 otherwise:
//
//	r.Get("/healthz", health.Handler(health.Checks{
//	    "redis": redis.Healthcheck(client),
//	}, health.WithTimeout(2*time.Second), health.WithLogger(log)))
//
// The body is always JSON:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
package health
