package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrInvalidProvider is returned when a provider configuration lacks
	// a domain, an endpoint or a credential parameter name.
	ErrInvalidProvider = errors.New("oauth: invalid provider configuration")

	// ErrUnknownProvider is returned when no built-in provider has the requested name.
	ErrUnknownProvider = errors.New("oauth: unknown provider")

	// ErrTransport is returned when the HTTP round trip fails or the provider
	// answers with a non-2xx status.
	ErrTransport = errors.New("oauth: transport failure")

	// ErrDecode is returned when a response body is not JSON, JSONP or a
	// query string, or decodes to an empty result.
	ErrDecode = errors.New("oauth: failed to decode response")

	// ErrProviderAPI is matched by every *APIError.
	ErrProviderAPI = errors.New("oauth: provider reported an error")

	// ErrTokenExpired is returned before any network call when the stored
	// access token is missing or known to be expired.
	ErrTokenExpired = errors.New("oauth: access token is revoked or expired")

	// ErrNoAccessToken accompanies ErrTokenExpired when no token was ever stored.
	ErrNoAccessToken = errors.New("oauth: no access token")

	// ErrMissingIdentity is returned when a provider response lacks the user identity.
	ErrMissingIdentity = errors.New("oauth: provider identity not found in response")
)

// APIError is an error reported by a provider in an otherwise successful response.
type APIError struct {
	Code    string // provider error code ("21327", "100", "40001", ...)
	Message string
	Request string // URL of the failing call
}

func (e *APIError) Error() string {
	return fmt.Sprintf("oauth: api error: code=%s message=%s request=%s", e.Code, e.Message, e.Request)
}

// Is makes errors.Is(err, ErrProviderAPI) true for any *APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrProviderAPI
}

// StatusError is returned when a provider responds with a non-2xx status.
type StatusError struct {
	URL        string
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("oauth: request failed: status=%d url=%s body=%s", e.StatusCode, e.URL, truncate(e.Body, 512))
}

// Is makes errors.Is(err, ErrTransport) true for any *StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrTransport
}
