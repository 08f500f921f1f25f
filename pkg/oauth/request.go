package oauth

import (
	"context"
	"net/http"
	"strings"
)

// RequestBuilder accumulates path segments for an API call.
// It is a value type: each Segment call returns a new builder and leaves the
// receiver unchanged, so a common prefix can be reused.
type RequestBuilder struct {
	client *Client
	path   string
}

// Segment appends path segments. A segment may itself contain slashes
// ("users/show.json"); empty segments are skipped.
func (b RequestBuilder) Segment(names ...string) RequestBuilder {
	path := b.path
	for _, name := range names {
		name = strings.Trim(name, "/")
		if name == "" {
			continue
		}
		path += "/" + name
	}
	return RequestBuilder{client: b.client, path: path}
}

// URL returns the absolute URL built so far.
func (b RequestBuilder) URL() string { return b.path }

// Get terminates the chain with a GET request.
func (b RequestBuilder) Get() *Request {
	return &Request{client: b.client, Method: http.MethodGet, URL: b.path}
}

// Post terminates the chain with a POST request.
func (b RequestBuilder) Post() *Request {
	return &Request{client: b.client, Method: http.MethodPost, URL: b.path}
}

// Request is an authenticated API call bound to a client, method and URL.
type Request struct {
	client *Client
	Method string
	URL    string
}

// Descriptor is a fully prepared API call.
type Descriptor struct {
	Params Params
	Method string
	URL    string
}

// Prepare checks the token and merges the provider's public parameters with
// params; params win on key collisions. No network call is made unless the
// provider must first resolve the user identity.
func (r *Request) Prepare(ctx context.Context, params Params) (*Descriptor, error) {
	if err := r.client.checkToken(); err != nil {
		return nil, err
	}
	public, err := r.client.strategy.PublicParams(ctx, r.client)
	if err != nil {
		return nil, err
	}
	return &Descriptor{
		Params: public.Merge(params),
		Method: r.Method,
		URL:    r.URL,
	}, nil
}

// Do performs the call and returns the decoded response.
// It fails with ErrTokenExpired, without touching the network, when the
// stored token is missing or expired.
func (r *Request) Do(ctx context.Context, params Params) (Values, error) {
	d, err := r.Prepare(ctx, params)
	if err != nil {
		return nil, err
	}
	return r.client.call(ctx, d.Method, d.URL, d.Params)
}
