package oauth

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application credentials for one provider.
// Embed it with an env prefix per provider, e.g.
//
//	QQ oauth.Config `envPrefix:"QQ_OAUTH_"`
type Config struct {
	ClientID     string `env:"CLIENT_ID" yaml:"client_id"`
	ClientSecret string `env:"CLIENT_SECRET" yaml:"client_secret"`
	RedirectURI  string `env:"REDIRECT_URI" yaml:"redirect_uri"`
}

// Validate checks that the credentials are present.
func (c Config) Validate() error {
	if c.ClientID == "" {
		return ErrMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrMissingClientSecret
	}
	return nil
}

// ParseProviders reads a YAML document mapping provider names to credentials:
//
//	qq:
//	  client_id: "101234"
//	  client_secret: "..."
//	  redirect_uri: https://example.com/callback/qq
//
// Names are lower-cased and must belong to a built-in provider.
func ParseProviders(r io.Reader) (map[string]Config, error) {
	var raw map[string]Config
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]Config{}, nil
		}
		return nil, fmt.Errorf("oauth: parse providers: %w", err)
	}

	out := make(map[string]Config, len(raw))
	for name, cfg := range raw {
		key := strings.ToLower(name)
		if _, ok := registry[key]; !ok {
			return nil, errors.Join(ErrUnknownProvider, fmt.Errorf("provider %q", name))
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("oauth: provider %q: %w", name, err)
		}
		out[key] = cfg
	}
	return out, nil
}
