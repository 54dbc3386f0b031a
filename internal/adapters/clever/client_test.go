package clever

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/squidword/squidword/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:5000/oauth/callback",
		AuthorizeURL: serverURL + "/oauth/authorize",
		TokenURL:     serverURL + "/oauth/tokens",
		APIBaseURL:   serverURL + "/",
		Logger:       testLogger(),
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_ValidationErrors(t *testing.T) {
	base := Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/oauth/callback",
		AuthorizeURL: "https://clever.com/oauth/authorize",
		TokenURL:     "https://clever.com/oauth/tokens",
		APIBaseURL:   "https://api.clever.com",
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "missing client ID", mutate: func(c *Config) { c.ClientID = "" }, errMsg: "client ID is required"},
		{name: "missing client secret", mutate: func(c *Config) { c.ClientSecret = "" }, errMsg: "client secret is required"},
		{name: "missing redirect URL", mutate: func(c *Config) { c.RedirectURL = "" }, errMsg: "redirect URL is required"},
		{name: "missing token URL", mutate: func(c *Config) { c.TokenURL = "" }, errMsg: "authorize and token URLs are required"},
		{name: "missing API base", mutate: func(c *Config) { c.APIBaseURL = "" }, errMsg: "API base URL is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			_, err := NewClient(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestClient_AuthCodeURL(t *testing.T) {
	c := newTestClient(t, "https://clever.example")

	raw := c.AuthCodeURL("abc123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "clever.example", u.Host)
	assert.Equal(t, "/oauth/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "test-client", q.Get("client_id"))
	assert.Equal(t, "http://localhost:5000/oauth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "abc123", q.Get("state"))
}

func TestClient_ExchangeCode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth/tokens", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "client credentials must use HTTP Basic")
		assert.Equal(t, "test-client", user)
		assert.Equal(t, "test-secret", pass)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "http://localhost:5000/oauth/callback", r.PostForm.Get("redirect_uri"))
		assert.Empty(t, r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "il-token", "token_type": "bearer"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	token, err := c.ExchangeCode(context.Background(), "the-code")

	require.NoError(t, err)
	assert.Equal(t, "il-token", token)
}

func TestClient_ExchangeCode_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "invalid client",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			},
		},
		{
			name: "expired or reused code",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			},
		},
		{
			name: "provider down",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "missing access token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			token, err := c.ExchangeCode(context.Background(), "the-code")

			require.Error(t, err)
			assert.Empty(t, token)
			assert.True(t, apperrors.IsTokenExchangeFailed(err), "got %v", err)
		})
	}
}

func TestClient_ExchangeCode_EmptyCode(t *testing.T) {
	c := newTestClient(t, "https://clever.example")
	_, err := c.ExchangeCode(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsMissingCode(err))
}

func TestClient_Get_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3.0/me", r.URL.Path)
		assert.Equal(t, "Bearer il-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"u1","type":"user"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	for _, endpoint := range []string{"/v3.0/me", "v3.0/me", srv.URL + "/v3.0/me"} {
		doc, err := c.Get(context.Background(), endpoint, "il-token")
		require.NoError(t, err, endpoint)

		m, ok := doc.(map[string]any)
		require.True(t, ok)
		data, ok := m["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "u1", data["id"])
		assert.Equal(t, "user", data["type"])
	}
}

func TestClient_Get_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	doc, err := c.Get(context.Background(), "/v3.0/me", "expired")

	require.Error(t, err)
	assert.Nil(t, doc)
	assert.True(t, apperrors.IsFetchFailed(err))
	assert.Contains(t, err.Error(), "unexpected status 401")
}

func TestClient_Get_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Get(context.Background(), "/v3.0/me", "tok")

	require.Error(t, err)
	assert.True(t, apperrors.IsFetchFailed(err))
}
