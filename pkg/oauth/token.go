package oauth

import (
	"math"
	"time"

	"golang.org/x/oauth2"
)

// Clock supplies the current time for expiry computations.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ExpiryStatus is the result of an expiry check.
type ExpiryStatus int

const (
	// ExpiryUnknown means there is no access token or no recorded expiry.
	ExpiryUnknown ExpiryStatus = iota
	// ExpiryValid means the token has not reached its expiry yet.
	ExpiryValid
	// ExpiryExpired means the current time is past the expiry.
	ExpiryExpired
)

func (s ExpiryStatus) String() string {
	switch s {
	case ExpiryValid:
		return "valid"
	case ExpiryExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// TokenParams describes a token to store.
// ExpiresIn takes precedence over ExpiresAt when both are set.
type TokenParams struct {
	ExpiresAt    time.Time
	AccessToken  string
	RefreshToken string
	Identity     string // openid or uid, depending on the provider
	ExpiresIn    time.Duration
}

// TokenState holds the credentials of one client.
// It is not safe for concurrent use; callers sharing a client must serialize access.
type TokenState struct {
	clock        Clock
	expiresAt    time.Time
	accessToken  string
	refreshToken string
	identity     string
}

// NewTokenState returns an empty state. A nil clock means the system clock.
func NewTokenState(clock Clock) *TokenState {
	if clock == nil {
		clock = systemClock{}
	}
	return &TokenState{clock: clock}
}

// Set replaces the whole state with p. Fields left zero in p are cleared.
// A relative expiry is converted to an absolute time using the state's clock.
func (s *TokenState) Set(p TokenParams) {
	s.accessToken = p.AccessToken
	s.refreshToken = p.RefreshToken
	s.identity = p.Identity
	switch {
	case p.ExpiresIn > 0:
		s.expiresAt = s.clock.Now().Add(p.ExpiresIn)
	case !p.ExpiresAt.IsZero():
		s.expiresAt = p.ExpiresAt
	default:
		s.expiresAt = time.Time{}
	}
}

// Status reports whether the token is expired.
// It is ExpiryUnknown until both an access token and an expiry are recorded.
func (s *TokenState) Status() ExpiryStatus {
	if s.accessToken == "" || s.expiresAt.IsZero() {
		return ExpiryUnknown
	}
	if s.clock.Now().After(s.expiresAt) {
		return ExpiryExpired
	}
	return ExpiryValid
}

// AccessToken returns the stored access token or "".
func (s *TokenState) AccessToken() string { return s.accessToken }

// RefreshToken returns the stored refresh token or "".
// It is never exchanged automatically.
func (s *TokenState) RefreshToken() string { return s.refreshToken }

// Identity returns the provider-assigned user identifier or "".
func (s *TokenState) Identity() string { return s.identity }

// ExpiresAt returns the absolute expiry, or the zero time when unknown.
func (s *TokenState) ExpiresAt() time.Time { return s.expiresAt }

// setIdentity records an identity resolved after the token was stored.
func (s *TokenState) setIdentity(id string) { s.identity = id }

// OAuth2 converts the state into an oauth2.Token.
// The identity, when known, is attached as the "openid" extra.
func (s *TokenState) OAuth2() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
		Expiry:       s.expiresAt,
	}
	if s.identity != "" {
		tok = tok.WithExtra(map[string]any{"openid": s.identity})
	}
	return tok
}

// maxExpirySeconds is the largest lifetime a time.Duration can hold.
const maxExpirySeconds = math.MaxInt64 / int64(time.Second)

// secondsToDuration converts a provider expires_in value, saturating instead
// of overflowing.
func secondsToDuration(secs int64) time.Duration {
	return time.Duration(min(secs, maxExpirySeconds)) * time.Second
}
