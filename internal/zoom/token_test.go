package zoom

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenProviderFetch(t *testing.T) {
	var gotGrant, gotAccount string
	var gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotGrant = r.FormValue("grant_type")
		gotAccount = r.FormValue("account_id")
		gotUser, gotPass, _ = r.BasicAuth()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	p := NewTokenProvider("acc-1", "cid-1", "sec-1")
	p.TokenURL = srv.URL

	cred, err := p.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-1", cred.AccessToken)
	assert.False(t, cred.ObtainedAt.IsZero())
	assert.Equal(t, "account_credentials", gotGrant)
	assert.Equal(t, "acc-1", gotAccount)
	assert.Equal(t, "cid-1", gotUser)
	assert.Equal(t, "sec-1", gotPass)
}

func TestTokenProviderFetchRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"reason":"Invalid client_id or client_secret"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewTokenProvider("acc-1", "bad", "bad")
	p.TokenURL = srv.URL

	_, err := p.Fetch(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	assert.True(t, errors.As(err, &authErr), "rejected identifiers should yield *AuthError, got %T", err)
}

func TestTokenProviderFetchIsFullReauth(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-` + string(rune('0'+calls)) + `","token_type":"bearer"}`))
	}))
	defer srv.Close()

	p := NewTokenProvider("acc-1", "cid-1", "sec-1")
	p.TokenURL = srv.URL

	first, err := p.Fetch(context.Background())
	require.NoError(t, err)
	second, err := p.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "every Fetch performs a full re-authentication")
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
}
