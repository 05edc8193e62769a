package handlers

import (
	"net/http"
	"time"
	"traceable-link/internal/metrics"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/models"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// GETForwardHandler logs the click for an authenticated visitor and forwards them to the target.
func GETForwardHandler(ctx *middlewares.AppContext) {
	state := ctx.SessionManager.GetState(ctx)

	switch state.Kind {
	case models.SessionAnonymous, models.SessionAwaitingCallback:
		ctx.Logger.Debug("Visitor not authenticated, restarting login", "session_state", state.Kind.String())
		ctx.Redirect(EntryPath, http.StatusFound)
		return

	case models.SessionAuthenticated:

	default:
		ctx.Logger.Error("Unknown session state", "session_state", state.Kind.String())
		ctx.WriteText(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	event := models.NewClickEvent(uuid.NewString(), state.Pending, state.User, time.Now())
	event.ClientIP = middlewares.ClientIP(ctx.Request)
	event.UserAgent = ctx.Request.UserAgent()
	event.RequestID = middleware.GetReqID(ctx)

	if shouldEmitClick(ctx, event) {
		ctx.ClickLogger.Emit(ctx, event)
	}

	if ctx.Config.Tracking.SingleUsePending && state.Pending != nil {
		ctx.SessionManager.ClearPending(ctx)
	}

	target, err := resolveTarget(event.Target, ctx.Config.Tracking.AllowedTargetHosts)
	if err != nil {
		ctx.Logger.Warn("Refusing to forward to target",
			"error", err,
			"sop", event.Sop,
			"email", RedactEmail(event.Email))

		if redirectToFallback(ctx) {
			return
		}

		ctx.WriteText(http.StatusBadRequest, invalidTargetMessage)
		return
	}

	ctx.Redirect(target, http.StatusFound)
}

// shouldEmitClick reports false only when the dedup window is on and the same click was already seen.
func shouldEmitClick(ctx *middlewares.AppContext, event models.ClickEvent) bool {
	window := ctx.Config.Tracking.DedupWindow
	if window <= 0 || ctx.ClickCache == nil {
		return true
	}

	first, err := ctx.ClickCache.MarkClick(ctx, clickFingerprint(ctx.Config.Sessions.Secret, event), window)
	if err != nil {
		ctx.Logger.Warn("Click dedup check failed, emitting click", "error", err)
		return true
	}

	if !first {
		metrics.ClicksDeduplicated.Inc()
		ctx.Logger.Debug("Suppressed duplicate click", "sop", event.Sop, "window", window)
		return false
	}

	return true
}
