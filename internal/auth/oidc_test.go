package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
	"traceable-link/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeIssuer struct {
	server *httptest.Server

	mu           sync.Mutex
	userInfoBody map[string]any
}

func (f *fakeIssuer) setUserInfo(body map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userInfoBody = body
}

func newFakeIssuer(t *testing.T) *fakeIssuer {
	t.Helper()

	issuer := &fakeIssuer{
		userInfoBody: map[string]any{"sub": "1", "email": "ada@example.com", "name": "Ada Lovelace"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		base := issuer.server.URL
		writeJSON(w, http.StatusOK, map[string]any{
			"issuer":                                base,
			"authorization_endpoint":                base + "/authorize",
			"token_endpoint":                        base + "/token",
			"userinfo_endpoint":                     base + "/userinfo",
			"jwks_uri":                              base + "/keys",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
			return
		}
		if r.PostForm.Get("code") != "good-code" || r.PostForm.Get("code_verifier") != "the-verifier" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "access-123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		issuer.mu.Lock()
		body := issuer.userInfoBody
		issuer.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	})

	issuer.server = httptest.NewServer(mux)
	t.Cleanup(issuer.server.Close)

	return issuer
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestProvider(t *testing.T, issuer *fakeIssuer, accessType string) *OAuthProvider {
	t.Helper()

	provider, err := NewOAuthProvider(context.Background(), config.OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		IssuerURL:    issuer.server.URL,
		RedirectURI:  "https://links.example.com/auth/callback",
		Scopes:       []string{"openid", "email", "profile"},
		AccessType:   accessType,
		Timeout:      5 * time.Second,
	})
	require.NoError(t, err)
	return provider
}

func TestNewOAuthProvider_DiscoveryFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewOAuthProvider(context.Background(), config.OAuthConfig{IssuerURL: server.URL})
	assert.ErrorContains(t, err, "failed to create OIDC provider")
}

func TestOAuthProvider_AuthCodeURL(t *testing.T) {
	issuer := newFakeIssuer(t)

	t.Run("offline access with PKCE", func(t *testing.T) {
		provider := newTestProvider(t, issuer, "offline")

		authURL, err := url.Parse(provider.AuthCodeURL("state-abc", "the-verifier"))
		require.NoError(t, err)

		assert.Equal(t, issuer.server.URL+"/authorize", authURL.Scheme+"://"+authURL.Host+authURL.Path)

		q := authURL.Query()
		assert.Equal(t, "client-id", q.Get("client_id"))
		assert.Equal(t, "code", q.Get("response_type"))
		assert.Equal(t, "openid email profile", q.Get("scope"))
		assert.Equal(t, "offline", q.Get("access_type"))
		assert.Equal(t, "state-abc", q.Get("state"))
		assert.Equal(t, "https://links.example.com/auth/callback", q.Get("redirect_uri"))
		assert.Equal(t, "S256", q.Get("code_challenge_method"))
		assert.Equal(t, oauth2.S256ChallengeFromVerifier("the-verifier"), q.Get("code_challenge"))
	})

	t.Run("online access", func(t *testing.T) {
		provider := newTestProvider(t, issuer, "online")

		authURL, err := url.Parse(provider.AuthCodeURL("s", "v"))
		require.NoError(t, err)
		assert.Equal(t, "online", authURL.Query().Get("access_type"))
	})
}

func TestOAuthProvider_ExchangeAndFetchUserInfo(t *testing.T) {
	issuer := newFakeIssuer(t)
	provider := newTestProvider(t, issuer, "offline")
	ctx := context.Background()

	token, err := provider.Exchange(ctx, "good-code", "the-verifier")
	require.NoError(t, err)
	assert.Equal(t, "access-123", token.AccessToken)

	user, err := provider.FetchUserInfo(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada Lovelace", user.Name)
}

func TestOAuthProvider_ExchangeRejected(t *testing.T) {
	issuer := newFakeIssuer(t)
	provider := newTestProvider(t, issuer, "offline")

	_, err := provider.Exchange(context.Background(), "bad-code", "the-verifier")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to exchange code for token"))
}

func TestOAuthProvider_FetchUserInfoErrors(t *testing.T) {
	issuer := newFakeIssuer(t)
	provider := newTestProvider(t, issuer, "offline")
	ctx := context.Background()

	t.Run("rejected token", func(t *testing.T) {
		_, err := provider.FetchUserInfo(ctx, &oauth2.Token{AccessToken: "wrong", TokenType: "Bearer"})
		assert.ErrorContains(t, err, "failed to get user info")
	})

	t.Run("missing email", func(t *testing.T) {
		issuer.setUserInfo(map[string]any{"sub": "1", "name": "No Email"})

		_, err := provider.FetchUserInfo(ctx, &oauth2.Token{AccessToken: "access-123", TokenType: "Bearer"})
		assert.ErrorIs(t, err, ErrMissingEmail)
	})
}

func TestOAuthProvider_GenerateRandString(t *testing.T) {
	issuer := newFakeIssuer(t)
	provider := newTestProvider(t, issuer, "offline")

	a := provider.GenerateRandString(32)
	b := provider.GenerateRandString(32)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44)
}

func TestOAuthProvider_GenerateCodeVerifier(t *testing.T) {
	issuer := newFakeIssuer(t)
	provider := newTestProvider(t, issuer, "offline")

	verifier := provider.GenerateCodeVerifier()
	assert.Len(t, verifier, 43)
	assert.NotContains(t, verifier, "=")
	assert.NotEqual(t, verifier, provider.GenerateCodeVerifier())
}
