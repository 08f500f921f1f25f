package oauth_test

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrymomot/socialauth/pkg/oauth"
)

var testConfig = oauth.Config{
	ClientID:     "app-id",
	ClientSecret: "app-secret",
	RedirectURI:  "https://example.com/callback",
}

type recordedCall struct {
	Method string
	URL    string
	Params oauth.Params
}

type response struct {
	Status int
	Body   string
}

// stubTransport answers from a URL-keyed table and records every call.
// Unknown URLs get a 404.
type stubTransport struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []recordedCall
	err       error
}

func newStubTransport(bodies map[string]string) *stubTransport {
	responses := make(map[string]response, len(bodies))
	for u, body := range bodies {
		responses[u] = response{Status: http.StatusOK, Body: body}
	}
	return &stubTransport{responses: responses}
}

func (s *stubTransport) Do(_ context.Context, method, rawURL string, params oauth.Params) (int, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, recordedCall{Method: method, URL: rawURL, Params: params.Clone()})
	if s.err != nil {
		return 0, nil, s.err
	}
	resp, ok := s.responses[rawURL]
	if !ok {
		return http.StatusNotFound, []byte("not found"), nil
	}
	return resp.Status, []byte(resp.Body), nil
}

func (s *stubTransport) Calls() []recordedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedCall(nil), s.calls...)
}

func (s *stubTransport) CallsTo(rawURL string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.URL == rawURL {
			n++
		}
	}
	return n
}

// testClock is a settable clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// rewriteTransport sends every request to a test server, keeping path and query.
type rewriteTransport struct {
	target *url.URL
	next   http.RoundTripper
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = t.target.Scheme
	r.URL.Host = t.target.Host
	r.Host = t.target.Host
	return t.next.RoundTrip(r)
}
