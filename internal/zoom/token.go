package zoom

import (
	"context"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTokenURL is Zoom's OAuth token endpoint.
const DefaultTokenURL = "https://zoom.us/oauth/token"

// Scopes required for listing and downloading cloud recordings. They must
// also be enabled in the Zoom app settings.
var recordingScopes = []string{
	"cloud_recording:read:list_user_recordings",
	"cloud_recording:read:list_user_recordings:admin",
}

// Credential is a bearer token obtained from the token endpoint. It is
// replaced wholesale on refresh and never partially updated. Expiry is
// discovered reactively (a request fails with the expired-token signal)
// rather than tracked against a TTL.
type Credential struct {
	AccessToken string
	ObtainedAt  time.Time
}

// TokenProvider obtains credentials via Zoom's Server-to-Server OAuth grant:
// Basic auth with the client id/secret and grant_type=account_credentials.
// It holds no token state itself; caching and refresh policy belong to the
// caller.
type TokenProvider struct {
	// TokenURL may be overridden for tests; defaults to DefaultTokenURL.
	TokenURL string

	accountID    string
	clientID     string
	clientSecret string
}

// NewTokenProvider creates a provider bound to fixed account identifiers.
func NewTokenProvider(accountID, clientID, clientSecret string) *TokenProvider {
	return &TokenProvider{
		TokenURL:     DefaultTokenURL,
		accountID:    accountID,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Fetch obtains a fresh credential. Every call performs a full
// re-authentication; there is no incremental refresh in the S2S grant.
func (p *TokenProvider) Fetch(ctx context.Context) (Credential, error) {
	conf := &clientcredentials.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		TokenURL:     p.TokenURL,
		Scopes:       recordingScopes,
		AuthStyle:    oauth2.AuthStyleInHeader,
		EndpointParams: url.Values{
			// The clientcredentials package allows overriding grant_type
			// for non-standard grants like Zoom's account_credentials.
			"grant_type": {"account_credentials"},
			"account_id": {p.accountID},
		},
	}

	tok, err := conf.Token(ctx)
	if err != nil {
		return Credential{}, &AuthError{Operation: "token fetch", Err: err}
	}

	return Credential{AccessToken: tok.AccessToken, ObtainedAt: time.Now()}, nil
}
