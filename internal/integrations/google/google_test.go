package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestProvider(t *testing.T, userinfo string) *Provider {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "good-code", r.PostForm.Get("code"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(userinfo))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p := NewProvider("client-id", "client-secret", "http://localhost:8080/auth/google/callback")
	p.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	p.userInfoURL = srv.URL + "/userinfo"
	return p
}

func TestAuthCodeURL(t *testing.T) {
	p := NewProvider("client-id", "secret", "http://localhost:8080/auth/google/callback")

	u, err := url.Parse(p.AuthCodeURL("abc.def.123"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "abc.def.123", q.Get("state"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "http://localhost:8080/auth/google/callback", q.Get("redirect_uri"))
}

func TestExchange(t *testing.T) {
	p := newTestProvider(t, `{"sub":"1234","email":"carol@example.com","email_verified":true,"name":"Carol","picture":"https://lh3.example.com/p.png"}`)

	profile, err := p.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "1234", profile.Subject)
	assert.Equal(t, "carol@example.com", profile.Email)
	assert.Equal(t, "Carol", profile.Name)
	assert.Equal(t, "https://lh3.example.com/p.png", profile.Picture)
}

func TestExchangeRejectsUnverifiedEmail(t *testing.T) {
	p := newTestProvider(t, `{"sub":"1234","email":"carol@example.com","email_verified":false}`)

	_, err := p.Exchange(context.Background(), "good-code")
	assert.ErrorContains(t, err, "not verified")
}

func TestExchangeRejectsIncompleteProfile(t *testing.T) {
	p := newTestProvider(t, `{"email":"carol@example.com","email_verified":true}`)

	_, err := p.Exchange(context.Background(), "good-code")
	assert.ErrorContains(t, err, "missing subject")
}
