package oauth

import (
	"context"
	"errors"
	"net/http"
)

// QQProviderName is the identifier for the QQ Connect provider.
const QQProviderName = "qq"

// QQProvider implements Strategy for QQ Connect (graph.qq.com).
//
// QQ does not return the openid with the token; it is looked up once per
// token through the identity endpoint and kept on the token state.
type QQProvider struct{}

// QQ returns the QQ Connect strategy.
func QQ() *QQProvider { return &QQProvider{} }

// NewQQClient creates a QQ Connect client.
func NewQQClient(cfg Config, opts ...Option) (*Client, error) {
	return New(QQ(), cfg, opts...)
}

// Config returns the QQ Connect endpoints.
func (p *QQProvider) Config() ProviderConfig {
	return ProviderConfig{
		Name:              QQProviderName,
		Domain:            "graph.qq.com",
		AuthEndpoint:      "oauth2.0/authorize",
		TokenEndpoint:     "oauth2.0/token",
		IdentityEndpoint:  "oauth2.0/me",
		DefaultScope:      "get_user_info",
		ClientIDParam:     "client_id",
		ClientSecretParam: "client_secret",
	}
}

// AuthParams returns its arguments unchanged.
func (p *QQProvider) AuthParams(authURL string, params Params) (string, Params) {
	return authURL, params
}

// PublicParams returns access_token, oauth_consumer_key, format and openid.
// The openid is resolved on first use.
func (p *QQProvider) PublicParams(ctx context.Context, c *Client) (Params, error) {
	openid, err := c.Identity(ctx)
	if err != nil {
		return nil, err
	}
	return Params{
		"access_token":       c.token.AccessToken(),
		"oauth_consumer_key": c.ClientID(),
		"format":             "json",
		"openid":             openid,
	}, nil
}

// ApplyTokenResponse stores access_token, expires_in and refresh_token.
func (p *QQProvider) ApplyTokenResponse(state *TokenState, vals Values) error {
	tp, err := tokenParams(vals)
	if err != nil {
		return err
	}
	state.Set(tp)
	return nil
}

// FetchUserInfo calls user/get_user_info.
func (p *QQProvider) FetchUserInfo(ctx context.Context, c *Client) (*UserInfo, error) {
	vals, err := c.API("user", "get_user_info").Get().Do(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newUserInfo(QQProviderName, c.token.Identity(), vals.String("nickname"), vals.String("figureurl_qq_1")), nil
}

// resolveIdentity asks oauth2.0/me for the openid. The endpoint answers with
// a JSONP body: callback( {"client_id":"...","openid":"..."} );
func (p *QQProvider) resolveIdentity(ctx context.Context, c *Client) (string, error) {
	vals, err := c.call(ctx, http.MethodGet, c.provider.IdentityURL(), Params{
		"access_token": c.token.AccessToken(),
	})
	if err != nil {
		return "", err
	}
	openid := vals.String("openid")
	if openid == "" {
		return "", errors.Join(ErrMissingIdentity, errors.New("qq: no openid in identity response"))
	}
	return openid, nil
}

var _ Strategy = (*QQProvider)(nil)
