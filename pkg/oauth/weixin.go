package oauth

import (
	"context"
	"errors"
)

const (
	// WeixinProviderName is the identifier for the WeChat open platform provider.
	WeixinProviderName = "weixin"

	// weixinQRConnectURL replaces the computed authorize URL: website login
	// goes through a QR code page on a different host.
	weixinQRConnectURL = "https://open.weixin.qq.com/connect/qrconnect"
	weixinLoginScope   = "snsapi_login"
)

// WeixinProvider implements Strategy for the WeChat open platform (api.weixin.qq.com).
// Credentials are sent as appid/secret and the openid comes with the token.
type WeixinProvider struct{}

// Weixin returns the WeChat strategy.
func Weixin() *WeixinProvider { return &WeixinProvider{} }

// NewWeixinClient creates a WeChat client.
func NewWeixinClient(cfg Config, opts ...Option) (*Client, error) {
	return New(Weixin(), cfg, opts...)
}

// Config returns the WeChat endpoints. The identity arrives with the token,
// so the identity endpoint is the token endpoint.
func (p *WeixinProvider) Config() ProviderConfig {
	return ProviderConfig{
		Name:              WeixinProviderName,
		Domain:            "api.weixin.qq.com",
		AuthEndpoint:      "connect/qrconnect",
		TokenEndpoint:     "sns/oauth2/access_token",
		IdentityEndpoint:  "sns/oauth2/access_token",
		ClientIDParam:     "appid",
		ClientSecretParam: "secret",
	}
}

// AuthParams points at the QR connect page and defaults scope to snsapi_login.
// An explicit scope, including a nil one, is left alone.
func (p *WeixinProvider) AuthParams(_ string, params Params) (string, Params) {
	if params == nil {
		params = Params{}
	}
	if _, ok := params["scope"]; !ok {
		params["scope"] = weixinLoginScope
	}
	return weixinQRConnectURL, params
}

// PublicParams returns access_token and openid.
func (p *WeixinProvider) PublicParams(_ context.Context, c *Client) (Params, error) {
	return Params{
		"access_token": c.token.AccessToken(),
		"openid":       optional(c.token.Identity()),
	}, nil
}

// ApplyTokenResponse stores the token, refresh token and openid.
func (p *WeixinProvider) ApplyTokenResponse(state *TokenState, vals Values) error {
	tp, err := tokenParams(vals)
	if err != nil {
		return err
	}
	tp.Identity = vals.String("openid")
	if tp.Identity == "" {
		return errors.Join(ErrMissingIdentity, errors.New("weixin: no openid in token response"))
	}
	state.Set(tp)
	return nil
}

// FetchUserInfo calls sns/userinfo.
func (p *WeixinProvider) FetchUserInfo(ctx context.Context, c *Client) (*UserInfo, error) {
	vals, err := c.API("sns", "userinfo").Get().Do(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newUserInfo(WeixinProviderName, c.token.Identity(), vals.String("nickname"), vals.String("headimgurl")), nil
}

var _ Strategy = (*WeixinProvider)(nil)
