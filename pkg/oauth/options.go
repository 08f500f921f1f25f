package oauth

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/socialauth/pkg/cache"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	transport  Transport
	httpClient *http.Client
	clock      Clock
	logger     *slog.Logger
	identities cache.Store
	token      *TokenParams
}

// WithHTTPClient sets a custom HTTP client for provider requests.
// This is useful for testing with httptest servers or injecting
// custom transports (e.g., timeouts, proxies).
// Ignored when WithTransport is also given.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTransport replaces the HTTP layer entirely.
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithClock sets the clock used for expiry computation and checks.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger for request tracing at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithIdentityCache shares resolved identities between clients.
// Entries are keyed by a hash of the access token and live as long as the
// token does; identities are assumed immutable for a given token.
func WithIdentityCache(s cache.Store) Option {
	return func(o *options) {
		o.identities = s
	}
}

// WithToken pre-populates the client's token state, for callers that
// persisted a token or obtained one out of band.
func WithToken(p TokenParams) Option {
	return func(o *options) {
		o.token = &p
	}
}
