package oauth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/pkg/oauth"
)

func TestParseProviders(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		doc := `
qq:
  client_id: "101234"
  client_secret: qq-secret
  redirect_uri: https://example.com/callback/qq
Weixin:
  client_id: wx123
  client_secret: wx-secret
`
		got, err := oauth.ParseProviders(strings.NewReader(doc))
		require.NoError(t, err)
		require.Equal(t, map[string]oauth.Config{
			"qq": {
				ClientID:     "101234",
				ClientSecret: "qq-secret",
				RedirectURI:  "https://example.com/callback/qq",
			},
			"weixin": {
				ClientID:     "wx123",
				ClientSecret: "wx-secret",
			},
		}, got)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		got, err := oauth.ParseProviders(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		_, err := oauth.ParseProviders(strings.NewReader("github:\n  client_id: x\n  client_secret: y\n"))
		require.ErrorIs(t, err, oauth.ErrUnknownProvider)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Parallel()
		_, err := oauth.ParseProviders(strings.NewReader("weibo:\n  client_id: x\n"))
		require.ErrorIs(t, err, oauth.ErrMissingClientSecret)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := oauth.ParseProviders(strings.NewReader("qq: [unterminated"))
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, oauth.Config{}.Validate(), oauth.ErrMissingClientID)
	require.ErrorIs(t, oauth.Config{ClientID: "id"}.Validate(), oauth.ErrMissingClientSecret)
	require.NoError(t, oauth.Config{ClientID: "id", ClientSecret: "secret"}.Validate())
}
