package oauth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/socialauth/pkg/oauth"
)

func TestProviders(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"qq", "weibo", "weixin"}, oauth.Providers())

	for _, name := range []string{"qq", "QQ", "Weibo", "weixin"} {
		s, err := oauth.Lookup(name)
		require.NoError(t, err)
		require.NoError(t, s.Config().Validate())
	}

	_, err := oauth.Lookup("google")
	require.ErrorIs(t, err, oauth.ErrUnknownProvider)
}

func TestProviderConfigURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		strategy oauth.Strategy
		auth     string
		token    string
		identity string
		api      string
	}{
		{
			strategy: oauth.QQ(),
			auth:     "https://graph.qq.com/oauth2.0/authorize",
			token:    "https://graph.qq.com/oauth2.0/token",
			identity: "https://graph.qq.com/oauth2.0/me",
			api:      "https://graph.qq.com",
		},
		{
			strategy: oauth.Weibo(),
			auth:     "https://api.weibo.com/oauth2/authorize",
			token:    "https://api.weibo.com/oauth2/access_token",
			identity: "https://api.weibo.com/oauth2/get_token_info",
			api:      "https://api.weibo.com/2",
		},
		{
			strategy: oauth.Weixin(),
			auth:     "https://api.weixin.qq.com/connect/qrconnect",
			token:    "https://api.weixin.qq.com/sns/oauth2/access_token",
			identity: "https://api.weixin.qq.com/sns/oauth2/access_token",
			api:      "https://api.weixin.qq.com",
		},
	}

	for _, tt := range tests {
		cfg := tt.strategy.Config()
		t.Run(cfg.Name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.auth, cfg.AuthURL())
			require.Equal(t, tt.token, cfg.TokenURL())
			require.Equal(t, tt.identity, cfg.IdentityURL())
			require.Equal(t, tt.api, cfg.APIURL())

			ep := cfg.Endpoint()
			require.Equal(t, tt.auth, ep.AuthURL)
			require.Equal(t, tt.token, ep.TokenURL)
			require.Equal(t, oauth2.AuthStyleInParams, ep.AuthStyle)
		})
	}
}

func TestProviderConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := oauth.QQ().Config()
	cfg.TokenEndpoint = ""
	cfg.ClientSecretParam = ""

	err := cfg.Validate()
	require.ErrorIs(t, err, oauth.ErrInvalidProvider)
	require.Contains(t, err.Error(), "client secret param, token endpoint")
}
