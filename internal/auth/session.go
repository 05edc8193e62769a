package auth

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"net/http"
	"traceable-link/internal/config"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/models"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"
)

type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager builds the scs manager for the configured store. redisClient is only
// consulted when sessions.store is "redis".
func NewSessionManager(logger *slog.Logger, cfg *config.Config, redisClient *redis.Client) (*SessionManager, error) {
	gob.Register(&models.User{})
	gob.Register(&models.PendingLink{})
	sessionManager := scs.New()

	switch cfg.Sessions.Store {
	case "memory":
		sessionManager.Store = memstore.New()
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis session store requires a redis client")
		}
		sessionManager.Store = goredisstore.New(redisClient)
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Sessions.Store)
	}

	sessionManager.Lifetime = cfg.Sessions.Lifetime

	sessionManager.Cookie.Name = cfg.Sessions.Name
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Sessions.Secure
	sessionManager.Cookie.Path = "/"

	sessionManager.ErrorFunc = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("session store failure", "error", err, "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}

	return &SessionManager{SessionManager: sessionManager}, nil
}

func (s *SessionManager) LoadAndSave(next http.Handler) http.Handler {
	return s.SessionManager.LoadAndSave(next)
}

// GetState derives the tagged login state from the values currently in the session.
func (s *SessionManager) GetState(ctx *middlewares.AppContext) models.SessionState {
	pending, _ := s.GetPending(ctx)
	user, _ := s.GetUser(ctx)
	return models.DeriveSessionState(pending, user)
}

func (s *SessionManager) SetPending(ctx *middlewares.AppContext, pending *models.PendingLink) {
	s.Put(ctx, string(SessionKeyPendingLink), pending)
}

func (s *SessionManager) GetPending(ctx *middlewares.AppContext) (pending *models.PendingLink, ok bool) {
	data := s.Get(ctx, string(SessionKeyPendingLink))
	if data == nil {
		return nil, false
	}

	if pending, ok := data.(*models.PendingLink); ok && pending != nil {
		return pending, true
	}

	return nil, false
}

func (s *SessionManager) ClearPending(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(SessionKeyPendingLink))
}

func (s *SessionManager) SetUser(ctx *middlewares.AppContext, user *models.User) {
	s.Put(ctx, string(SessionKeyUserData), user)
}

func (s *SessionManager) GetUser(ctx *middlewares.AppContext) (user *models.User, ok bool) {
	data := s.Get(ctx, string(SessionKeyUserData))
	if data == nil {
		return nil, false
	}

	if user, ok := data.(*models.User); ok && user != nil {
		return user, true
	}

	return nil, false
}

func (s *SessionManager) SetOauthState(ctx *middlewares.AppContext, state string) {
	s.Put(ctx, string(SessionKeyOauthState), state)
}

func (s *SessionManager) GetOauthState(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(SessionKeyOauthState))
}

func (s *SessionManager) ClearOauthState(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(SessionKeyOauthState))
}

func (s *SessionManager) SetOauthCodeVerifier(ctx *middlewares.AppContext, verifier string) {
	s.Put(ctx, string(SessionKeyOauthCodeVerifier), verifier)
}

func (s *SessionManager) GetOauthCodeVerifier(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(SessionKeyOauthCodeVerifier))
}

func (s *SessionManager) ClearOauthCodeVerifier(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(SessionKeyOauthCodeVerifier))
}

// RenewToken issues a new session token while keeping the session data.
func (s *SessionManager) RenewToken(ctx *middlewares.AppContext) error {
	return s.SessionManager.RenewToken(ctx)
}

func (s *SessionManager) Logout(ctx *middlewares.AppContext) error {
	return s.Destroy(ctx)
}
