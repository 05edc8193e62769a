package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
	"traceable-link/internal/config"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/models"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

var ErrMissingEmail = errors.New("user info did not include an email")

// OAuthProvider talks to the identity provider. It is built once from configuration and
// never mutated, so a single instance serves every request.
type OAuthProvider struct {
	provider     *oidc.Provider
	oauth2Config oauth2.Config
	accessType   string
	timeout      time.Duration
}

// NewOAuthProvider discovers the issuer's endpoints and returns an immutable provider client.
func NewOAuthProvider(ctx context.Context, cfg config.OAuthConfig) (*OAuthProvider, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	scopes := make([]string, len(cfg.Scopes))
	copy(scopes, cfg.Scopes)

	return &OAuthProvider{
		provider: provider,
		oauth2Config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       scopes,
			RedirectURL:  cfg.RedirectURI,
		},
		accessType: cfg.AccessType,
		timeout:    cfg.Timeout,
	}, nil
}

var _ middlewares.IdentityProvider = (*OAuthProvider)(nil)

func (p *OAuthProvider) GenerateRandString(bytes int) string {
	if bytes <= 0 {
		bytes = 32
	}

	b := make([]byte, bytes)
	_, _ = rand.Read(b)

	return base64.URLEncoding.EncodeToString(b)
}

// GenerateCodeVerifier returns a fresh PKCE code verifier.
func (p *OAuthProvider) GenerateCodeVerifier() string {
	return oauth2.GenerateVerifier()
}

// AuthCodeURL returns the consent page URL carrying state and the S256 challenge for codeVerifier.
func (p *OAuthProvider) AuthCodeURL(state, codeVerifier string) string {
	accessType := oauth2.AccessTypeOnline
	if p.accessType == "offline" {
		accessType = oauth2.AccessTypeOffline
	}

	return p.oauth2Config.AuthCodeURL(state,
		accessType,
		oauth2.S256ChallengeOption(codeVerifier),
	)
}

func (p *OAuthProvider) Exchange(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	token, err := p.oauth2Config.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	return token, nil
}

// FetchUserInfo retrieves the visitor's email and name from the UserInfo endpoint.
func (p *OAuthProvider) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*models.User, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	userInfo, err := p.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	if err := userInfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse user info claims: %w", err)
	}

	if claims.Email == "" {
		return nil, ErrMissingEmail
	}

	return &models.User{
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

func (p *OAuthProvider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}
