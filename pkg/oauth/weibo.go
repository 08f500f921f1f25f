package oauth

import (
	"context"
	"errors"
	"net/http"
)

// WeiboProviderName is the identifier for the Sina Weibo provider.
const WeiboProviderName = "weibo"

// WeiboProvider implements Strategy for Sina Weibo (api.weibo.com).
// The token response carries the user's uid.
type WeiboProvider struct{}

// Weibo returns the Sina Weibo strategy.
func Weibo() *WeiboProvider { return &WeiboProvider{} }

// NewWeiboClient creates a Sina Weibo client.
func NewWeiboClient(cfg Config, opts ...Option) (*Client, error) {
	return New(Weibo(), cfg, opts...)
}

// Config returns the Weibo endpoints. Weibo has no default scope.
func (p *WeiboProvider) Config() ProviderConfig {
	return ProviderConfig{
		Name:              WeiboProviderName,
		Domain:            "api.weibo.com",
		AuthEndpoint:      "oauth2/authorize",
		TokenEndpoint:     "oauth2/access_token",
		IdentityEndpoint:  "oauth2/get_token_info",
		APIPrefix:         "/2",
		ClientIDParam:     "client_id",
		ClientSecretParam: "client_secret",
	}
}

// AuthParams returns its arguments unchanged.
func (p *WeiboProvider) AuthParams(authURL string, params Params) (string, Params) {
	return authURL, params
}

// PublicParams returns the access token only.
func (p *WeiboProvider) PublicParams(_ context.Context, c *Client) (Params, error) {
	return Params{"access_token": c.token.AccessToken()}, nil
}

// ApplyTokenResponse stores the token and the uid.
func (p *WeiboProvider) ApplyTokenResponse(state *TokenState, vals Values) error {
	tp, err := tokenParams(vals)
	if err != nil {
		return err
	}
	tp.Identity = vals.String("uid")
	if tp.Identity == "" {
		return errors.Join(ErrMissingIdentity, errors.New("weibo: no uid in token response"))
	}
	state.Set(tp)
	return nil
}

// FetchUserInfo calls users/show.json for the token owner.
func (p *WeiboProvider) FetchUserInfo(ctx context.Context, c *Client) (*UserInfo, error) {
	uid, err := c.Identity(ctx)
	if err != nil {
		return nil, err
	}
	vals, err := c.API("users", "show.json").Get().Do(ctx, Params{"uid": uid})
	if err != nil {
		return nil, err
	}
	return newUserInfo(WeiboProviderName, uid, vals.String("screen_name"), vals.String("avatar_large")), nil
}

// resolveIdentity recovers the uid of a token stored without one.
func (p *WeiboProvider) resolveIdentity(ctx context.Context, c *Client) (string, error) {
	vals, err := c.call(ctx, http.MethodPost, c.provider.IdentityURL(), Params{
		"access_token": c.token.AccessToken(),
	})
	if err != nil {
		return "", err
	}
	uid := vals.String("uid")
	if uid == "" {
		return "", errors.Join(ErrMissingIdentity, errors.New("weibo: no uid in token info"))
	}
	return uid, nil
}

var _ Strategy = (*WeiboProvider)(nil)
