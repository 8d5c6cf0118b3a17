package reddit

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// tokenPath is the OAuth2 token endpoint, relative to the auth base URL.
const tokenPath = "/api/v1/access_token"

// passwordSource runs the resource-owner password grant on every call.
// The grant issues no refresh token, so an expired token is replaced by a
// fresh grant. Wrap it in oauth2.ReuseTokenSource to cache between expiries.
type passwordSource struct {
	ctx      context.Context //nolint:containedctx // oauth2.TokenSource has no context parameter
	conf     *oauth2.Config
	username string
	password string
}

func (s *passwordSource) Token() (*oauth2.Token, error) {
	return s.conf.PasswordCredentialsToken(s.ctx, s.username, s.password)
}

// newTokenSource returns a cached token source for the script-app password grant.
// Token requests go through httpClient, which must set the User-Agent.
func newTokenSource(authURL string, clientID, clientSecret, username, password string, httpClient *http.Client) oauth2.TokenSource {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  authURL + tokenPath,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	return oauth2.ReuseTokenSource(nil, &passwordSource{
		ctx:      context.WithValue(context.Background(), oauth2.HTTPClient, httpClient),
		conf:     conf,
		username: username,
		password: password,
	})
}

// userAgentTransport sets the User-Agent on token requests, which bypass
// the instrumented client.
type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("User-Agent", t.userAgent)

	return t.base.RoundTrip(r)
}
