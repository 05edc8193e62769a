package middlewares

import (
	"net/http"
	"traceable-link/internal/models"
)

//go:generate mockgen -source=session_provider.go -destination=../mocks/session.go -package=mocks

type SessionProvider interface {
	GetState(ctx *AppContext) models.SessionState
	SetPending(ctx *AppContext, pending *models.PendingLink)
	GetPending(ctx *AppContext) (pending *models.PendingLink, ok bool)
	ClearPending(ctx *AppContext)
	SetUser(ctx *AppContext, user *models.User)
	GetUser(ctx *AppContext) (user *models.User, ok bool)
	SetOauthState(ctx *AppContext, state string)
	GetOauthState(ctx *AppContext) string
	ClearOauthState(ctx *AppContext)
	SetOauthCodeVerifier(ctx *AppContext, verifier string)
	GetOauthCodeVerifier(ctx *AppContext) string
	ClearOauthCodeVerifier(ctx *AppContext)
	RenewToken(ctx *AppContext) error
	Logout(ctx *AppContext) error

	LoadAndSave(next http.Handler) http.Handler
}
