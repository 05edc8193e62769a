package middlewares

import (
	"context"
	"traceable-link/internal/models"

	"golang.org/x/oauth2"
)

//go:generate mockgen -source=identity_provider.go -destination=../mocks/identity.go -package=mocks

// IdentityProvider is the OAuth 2.0 authorization-code client used by the login flow.
// Implementations are immutable after construction and safe for concurrent use.
type IdentityProvider interface {
	GenerateRandString(bytes int) string
	GenerateCodeVerifier() string
	AuthCodeURL(state, codeVerifier string) string
	Exchange(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error)
	FetchUserInfo(ctx context.Context, token *oauth2.Token) (*models.User, error)
}
