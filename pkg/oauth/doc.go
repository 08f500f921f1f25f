// Package oauth provides one client for the three-legged OAuth2 flow against
// providers that disagree on endpoints, parameter names, response formats and
// error conventions.
//
// A Client is built from a Strategy (the provider-specific behavior) and the
// application's credentials. It produces the authorize URL, exchanges the
// returned code for a token, and issues authenticated API calls through a
// path builder.
//
// # Features
//
//   - Built-in providers: QQ Connect ("qq"), Sina Weibo ("weibo"), WeChat ("weixin")
//   - Decoding of JSON, JSONP and query-string responses into Values
//   - One error taxonomy over the "error", "ret" and "errcode" conventions
//   - Three-state token expiry (unknown, valid, expired) with an injectable Clock
//   - Pluggable Transport; the default wraps *http.Client
//   - Optional shared identity cache (see pkg/cache)
//
// # Usage
//
//	client, err := oauth.NewQQClient(oauth.Config{
//		ClientID:     os.Getenv("QQ_OAUTH_CLIENT_ID"),
//		ClientSecret: os.Getenv("QQ_OAUTH_CLIENT_SECRET"),
//		RedirectURI:  "https://example.com/callback/qq",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Redirect the user
//	url := client.AuthorizeURL(oauth.Params{"state": state})
//
//	// In the callback handler
//	if _, err := client.ExchangeToken(ctx, code); err != nil {
//		// handle error
//	}
//
//	// Call any API endpoint
//	info, err := client.API("user", "get_user_info").Get().Do(ctx, nil)
//
//	// Or use the normalized profile
//	user, err := client.FetchUserInfo(ctx)
//
// A client can also be restored from a stored token:
//
//	client, err := oauth.NewWeixinClient(cfg, oauth.WithToken(oauth.TokenParams{
//		AccessToken: token,
//		Identity:    openid,
//		ExpiresAt:   expiresAt,
//	}))
//
// # Parameters
//
// Params values that are nil are omitted from query strings and form bodies.
// Passing a nil override to AuthorizeURL removes a default parameter:
//
//	client.AuthorizeURL(oauth.Params{"scope": nil})
//
// # Custom Providers
//
// Implement Strategy to support another provider and pass it to New.
//
// # Error Handling
//
//   - ErrMissingClientID, ErrMissingClientSecret: incomplete credentials
//   - ErrInvalidProvider: provider configuration lacks an endpoint or parameter name
//   - ErrTransport: network failure or non-2xx status (*StatusError)
//   - ErrDecode: body is not JSON, JSONP or a query string, or is empty
//   - ErrProviderAPI: provider reported an error (*APIError with Code, Message, Request)
//   - ErrTokenExpired: no token or expired token; raised before any network call
//
// Use errors.Is and errors.As:
//
//	var apiErr *oauth.APIError
//	if errors.As(err, &apiErr) {
//		log.Printf("provider error %s: %s", apiErr.Code, apiErr.Message)
//	}
//
// # Concurrency
//
// A Client holds mutable token state and does no locking. Use one client per
// user session, or serialize access externally. Timeouts belong on the
// http.Client passed with WithHTTPClient or on the context.
package oauth
