package middlewares

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"traceable-link/internal/config"
)

type AppContext struct {
	context.Context
	Config           *config.Config
	Logger           *slog.Logger
	SessionManager   SessionProvider
	IdentityProvider IdentityProvider
	ClickLogger      ClickLogger
	ClickCache       ClickCache

	Request  *http.Request
	Response http.ResponseWriter
}

type contextKey string

const appContextKey contextKey = "appContext"

func AppContextMiddleware(baseCtx *AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCtx := &AppContext{
				Context:          r.Context(),
				Config:           baseCtx.Config,
				Logger:           baseCtx.Logger,
				SessionManager:   baseCtx.SessionManager,
				IdentityProvider: baseCtx.IdentityProvider,
				ClickLogger:      baseCtx.ClickLogger,
				ClickCache:       baseCtx.ClickCache,
				Request:          r,
				Response:         w,
			}

			ctx := context.WithValue(r.Context(), appContextKey, requestCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type AppHandler func(*AppContext)

// HandlerFunc converts AppHandler to a http.HandlerFunc
func (ctx *AppContext) HandlerFunc(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Get the AppContext from the request context
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		h(appCtx)
	}
}

func (ctx *AppContext) Redirect(url string, status int) {
	http.Redirect(ctx.Response, ctx.Request, url, status)
}

func NewAppContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, sessionManager SessionProvider, identityProvider IdentityProvider, clickLogger ClickLogger, clickCache ClickCache) *AppContext {
	return &AppContext{
		Context:          ctx,
		Config:           cfg,
		Logger:           logger,
		SessionManager:   sessionManager,
		IdentityProvider: identityProvider,
		ClickLogger:      clickLogger,
		ClickCache:       clickCache,
	}
}

func GetAppContext(r *http.Request) *AppContext {
	if ctx, ok := r.Context().Value(appContextKey).(*AppContext); ok {
		return ctx
	}

	return nil
}

func (ctx *AppContext) WriteJSON(status int, data interface{}) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if err := json.NewEncoder(ctx.Response).Encode(data); err != nil {
		ctx.Logger.Error("failed to marshal json", "error", err)
	}
}

func (ctx *AppContext) WriteText(status int, text string) {
	ctx.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	ctx.Response.WriteHeader(status)
	if _, err := ctx.Response.Write([]byte(text)); err != nil {
		ctx.Logger.Error("failed to write response", "error", err)
	}
}

func (ctx *AppContext) SetJSONError(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"error": message,
	})
}

func (ctx *AppContext) SetJSONStatus(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"status": message,
	})
}
