package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Transport performs one HTTP call for the client.
// GET parameters travel in the query string, POST parameters in a form body.
// Implementations report network failures as errors and return every
// status code as-is; the client decides what counts as success.
type Transport interface {
	Do(ctx context.Context, method, rawURL string, params Params) (status int, body []byte, err error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, method, rawURL string, params Params) (int, []byte, error)

// Do calls f.
func (f TransportFunc) Do(ctx context.Context, method, rawURL string, params Params) (int, []byte, error) {
	return f(ctx, method, rawURL, params)
}

// HTTPTransport is the default Transport backed by *http.Client.
// Timeouts and TLS are configured on the wrapped client.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps client. A nil client means http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

// Do sends the request and reads the whole body.
func (t *HTTPTransport) Do(ctx context.Context, method, rawURL string, params Params) (int, []byte, error) {
	req, err := t.newRequest(ctx, method, rawURL, params)
	if err != nil {
		return 0, nil, errors.Join(ErrTransport, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, errors.Join(ErrTransport, fmt.Errorf("%s %s: %w", method, rawURL, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Join(ErrTransport, fmt.Errorf("read body: %w", err))
	}
	return resp.StatusCode, body, nil
}

func (t *HTTPTransport) newRequest(ctx context.Context, method, rawURL string, params Params) (*http.Request, error) {
	switch method {
	case http.MethodGet:
		target := rawURL
		if encoded := params.Encode(); encoded != "" {
			sep := "?"
			if strings.Contains(rawURL, "?") {
				sep = "&"
			}
			target = rawURL + sep + encoded
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	case http.MethodPost:
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(params.Values().Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
}
