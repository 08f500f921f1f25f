package oauth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/text/unicode/norm"
)

// UserInfo represents provider-agnostic user information.
type UserInfo struct {
	Provider string
	ID       string // openid or uid
	Name     string
	Avatar   string
}

func newUserInfo(provider, id, name, avatar string) *UserInfo {
	return &UserInfo{
		Provider: provider,
		ID:       id,
		Name:     norm.NFC.String(name),
		Avatar:   avatar,
	}
}

// ProviderConfig is the static description of a provider.
// Endpoint fields are paths relative to Domain; APIPrefix is appended to the
// domain to form the API base URL.
type ProviderConfig struct {
	Name              string
	Domain            string
	AuthEndpoint      string
	TokenEndpoint     string
	IdentityEndpoint  string
	APIPrefix         string
	DefaultScope      string // empty means no scope is sent by default
	ClientIDParam     string
	ClientSecretParam string
}

// Validate reports ErrInvalidProvider when a required field is empty.
func (c ProviderConfig) Validate() error {
	var missing []string
	for field, val := range map[string]string{
		"name":                c.Name,
		"domain":              c.Domain,
		"auth endpoint":       c.AuthEndpoint,
		"token endpoint":      c.TokenEndpoint,
		"identity endpoint":   c.IdentityEndpoint,
		"client id param":     c.ClientIDParam,
		"client secret param": c.ClientSecretParam,
	} {
		if val == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.Join(ErrInvalidProvider, fmt.Errorf("%s: missing %s", c.Name, strings.Join(missing, ", ")))
	}
	return nil
}

// AuthURL returns the absolute authorize endpoint.
func (c ProviderConfig) AuthURL() string { return c.endpoint(c.AuthEndpoint) }

// TokenURL returns the absolute token-exchange endpoint.
func (c ProviderConfig) TokenURL() string { return c.endpoint(c.TokenEndpoint) }

// IdentityURL returns the absolute identity endpoint.
func (c ProviderConfig) IdentityURL() string { return c.endpoint(c.IdentityEndpoint) }

// APIURL returns the base URL for API calls.
func (c ProviderConfig) APIURL() string { return "https://" + c.Domain + c.APIPrefix }

// Endpoint returns the authorize and token endpoints as an oauth2.Endpoint.
// Client secrets travel in the request body for every supported provider.
func (c ProviderConfig) Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   c.AuthURL(),
		TokenURL:  c.TokenURL(),
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

func (c ProviderConfig) endpoint(path string) string {
	return "https://" + c.Domain + "/" + strings.TrimPrefix(path, "/")
}

// Strategy captures the behavior that differs between providers.
// One Strategy value may be shared by many clients; per-user data lives in
// the client's TokenState.
type Strategy interface {
	// Config returns the provider's static description.
	Config() ProviderConfig

	// AuthParams adjusts the authorize URL and its parameters.
	// params holds the caller's overrides; a key mapped to nil suppresses the
	// default for that key.
	AuthParams(authURL string, params Params) (string, Params)

	// PublicParams returns the parameters every authenticated call carries.
	PublicParams(ctx context.Context, c *Client) (Params, error)

	// ApplyTokenResponse stores a decoded token-exchange response in the token state.
	ApplyTokenResponse(state *TokenState, vals Values) error

	// FetchUserInfo retrieves the authorized user's profile.
	FetchUserInfo(ctx context.Context, c *Client) (*UserInfo, error)
}

var registry = map[string]func() Strategy{
	QQProviderName:     func() Strategy { return QQ() },
	WeiboProviderName:  func() Strategy { return Weibo() },
	WeixinProviderName: func() Strategy { return Weixin() },
}

// Providers returns the names of the built-in providers in sorted order.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the built-in strategy registered under name.
func Lookup(name string) (Strategy, error) {
	ctor, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.Join(ErrUnknownProvider, fmt.Errorf("provider %q", name))
	}
	return ctor(), nil
}

// tokenParams extracts the fields shared by all token-exchange responses.
func tokenParams(vals Values) (TokenParams, error) {
	access := vals.String("access_token")
	if access == "" {
		return TokenParams{}, errors.Join(ErrDecode, errors.New("token response has no access_token"))
	}
	p := TokenParams{
		AccessToken:  access,
		RefreshToken: vals.String("refresh_token"),
	}
	if secs, ok := vals.Int64("expires_in"); ok && secs > 0 {
		p.ExpiresIn = secondsToDuration(secs)
	}
	return p, nil
}
