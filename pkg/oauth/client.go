package oauth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/socialauth/pkg/cache"
	"github.com/dmitrymomot/socialauth/pkg/logger"
)

// DefaultState is sent as the state parameter when the caller does not supply one.
const DefaultState = "default_state"

// defaultIdentityTTL bounds cached identities for tokens without a known expiry.
const defaultIdentityTTL = time.Hour

// Client drives the authorization code flow and authenticated API calls for
// one provider and one user.
//
// A Client owns its token state and performs no locking; share it between
// goroutines only with external synchronization.
type Client struct {
	strategy   Strategy
	transport  Transport
	clock      Clock
	logger     *slog.Logger
	identities cache.Store
	token      *TokenState
	creds      Config
	provider   ProviderConfig
}

// New creates a client for the given provider strategy.
// Returns an error if the credentials or the provider configuration are incomplete.
func New(strategy Strategy, cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	provider := strategy.Config()
	if err := provider.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	transport := o.transport
	if transport == nil {
		transport = NewHTTPTransport(o.httpClient)
	}
	clock := o.clock
	if clock == nil {
		clock = systemClock{}
	}
	log := o.logger
	if log == nil {
		log = logger.NewNope()
	}

	c := &Client{
		strategy:   strategy,
		transport:  transport,
		clock:      clock,
		logger:     log.With(slog.String("provider", provider.Name)),
		identities: o.identities,
		token:      NewTokenState(clock),
		creds:      cfg,
		provider:   provider,
	}
	if o.token != nil {
		c.token.Set(*o.token)
	}
	return c, nil
}

// NewClient creates a client for the built-in provider registered under name.
func NewClient(name string, cfg Config, opts ...Option) (*Client, error) {
	strategy, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(strategy, cfg, opts...)
}

// Provider returns the provider name.
func (c *Client) Provider() string { return c.provider.Name }

// Config returns the provider configuration.
func (c *Client) Config() ProviderConfig { return c.provider }

// ClientID returns the application's client id.
func (c *Client) ClientID() string { return c.creds.ClientID }

// TokenState returns the client's token state.
func (c *Client) TokenState() *TokenState { return c.token }

// SetToken replaces the stored token.
func (c *Client) SetToken(p TokenParams) { c.token.Set(p) }

// AuthorizeURL returns the URL the user should be redirected to.
//
// Defaults are response_type=code, state=DefaultState, the provider's default
// scope and the configured redirect URI. overrides replaces any of them and
// may add extra parameters; a key mapped to nil removes it from the URL.
// The client id parameter cannot be overridden.
func (c *Client) AuthorizeURL(overrides Params) string {
	authURL, extra := c.strategy.AuthParams(c.provider.AuthURL(), overrides.Clone())

	params := Params{
		"response_type": "code",
		"state":         DefaultState,
		"scope":         optional(c.provider.DefaultScope),
		"redirect_uri":  optional(c.creds.RedirectURI),
	}.Merge(extra)
	params[c.provider.ClientIDParam] = c.creds.ClientID

	encoded := params.Encode()
	if encoded == "" {
		return authURL
	}
	return authURL + "?" + encoded
}

// ExchangeToken trades an authorization code for an access token and stores
// it in the token state, replacing any previous token.
// The decoded response is returned so callers can read provider extras.
func (c *Client) ExchangeToken(ctx context.Context, code string) (Values, error) {
	params := Params{
		c.provider.ClientIDParam:     c.creds.ClientID,
		c.provider.ClientSecretParam: c.creds.ClientSecret,
		"redirect_uri":               optional(c.creds.RedirectURI),
		"code":                       code,
		"grant_type":                 "authorization_code",
	}

	vals, err := c.call(ctx, http.MethodPost, c.provider.TokenURL(), params)
	if err != nil {
		return nil, err
	}
	if err := c.strategy.ApplyTokenResponse(c.token, vals); err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "oauth: token exchanged",
		slog.Time("expires_at", c.token.ExpiresAt()),
		slog.Bool("has_refresh_token", c.token.RefreshToken() != ""),
	)
	return vals, nil
}

// API starts a request path rooted at the provider's API base URL.
//
//	c.API("users", "show.json").Get().Do(ctx, oauth.Params{"uid": uid})
//	c.API("sns/userinfo").Get().Do(ctx, nil)
func (c *Client) API(segments ...string) RequestBuilder {
	return RequestBuilder{client: c, path: c.provider.APIURL()}.Segment(segments...)
}

// FetchUserInfo retrieves the authorized user's profile.
func (c *Client) FetchUserInfo(ctx context.Context) (*UserInfo, error) {
	return c.strategy.FetchUserInfo(ctx, c)
}

// Identity returns the provider identity of the token owner, resolving it
// through the provider when it was not part of the token response.
func (c *Client) Identity(ctx context.Context) (string, error) {
	if id := c.token.Identity(); id != "" {
		return id, nil
	}
	r, ok := c.strategy.(identityResolver)
	if !ok {
		return "", ErrMissingIdentity
	}
	if err := c.checkToken(); err != nil {
		return "", err
	}

	load := func(ctx context.Context) (string, time.Duration, error) {
		id, err := r.resolveIdentity(ctx, c)
		return id, c.identityTTL(), err
	}

	var (
		id  string
		err error
	)
	if c.identities != nil {
		id, err = cache.GetOrLoad(ctx, c.identities, identityKey(c.provider.Name, c.token.AccessToken()), load)
	} else {
		id, _, err = load(ctx)
	}
	if err != nil {
		return "", err
	}

	c.token.setIdentity(id)
	return id, nil
}

// Token returns the stored token, making Client an oauth2.TokenSource.
// It fails with ErrTokenExpired when no usable token is stored.
func (c *Client) Token() (*oauth2.Token, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}
	return c.token.OAuth2(), nil
}

var _ oauth2.TokenSource = (*Client)(nil)

// identityResolver is implemented by strategies that can look up the
// identity with a separate call.
type identityResolver interface {
	resolveIdentity(ctx context.Context, c *Client) (string, error)
}

func (c *Client) checkToken() error {
	if c.token.AccessToken() == "" {
		return errors.Join(ErrTokenExpired, ErrNoAccessToken)
	}
	if c.token.Status() == ExpiryExpired {
		return errors.Join(ErrTokenExpired, fmt.Errorf("expired at %s", c.token.ExpiresAt().Format(time.RFC3339)))
	}
	return nil
}

func (c *Client) identityTTL() time.Duration {
	if c.token.Status() != ExpiryValid {
		return defaultIdentityTTL
	}
	return c.token.ExpiresAt().Sub(c.clock.Now())
}

// call performs one round trip and decodes the response.
func (c *Client) call(ctx context.Context, method, rawURL string, params Params) (Values, error) {
	c.logger.DebugContext(ctx, "oauth: dispatch",
		slog.String("method", method),
		slog.String("url", rawURL),
	)

	status, body, err := c.transport.Do(ctx, method, rawURL, params.Compact())
	if err != nil {
		if !errors.Is(err, ErrTransport) {
			err = errors.Join(ErrTransport, err)
		}
		return nil, err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, &StatusError{URL: rawURL, Body: string(body), StatusCode: status}
	}

	return DecodeResponse(string(body), rawURL)
}

func identityKey(provider, accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return provider + ":identity:" + hex.EncodeToString(sum[:])
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
