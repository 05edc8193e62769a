package handlers

import (
	"net/http"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/models"
)

// GETEntryHandler records the followed link and sends anonymous visitors to the identity provider.
func GETEntryHandler(ctx *middlewares.AppContext) {
	query := ctx.Request.URL.Query()
	pending := &models.PendingLink{
		Sop:     query.Get("sop"),
		SopName: query.Get("sopName"),
		Target:  query.Get("target"),
	}

	state := ctx.SessionManager.GetState(ctx)

	switch state.Kind {
	case models.SessionAuthenticated:
		if ctx.Config.Tracking.RefreshPendingOnReentry && query.Has("target") {
			ctx.SessionManager.SetPending(ctx, pending)
			ctx.Logger.Debug("Replaced pending link for authenticated visitor", "sop", pending.Sop)
		}

		ctx.Redirect(ForwardPath, http.StatusFound)

	case models.SessionAnonymous, models.SessionAwaitingCallback:
		ctx.SessionManager.SetPending(ctx, pending)

		oauthState := ctx.IdentityProvider.GenerateRandString(32)
		codeVerifier := ctx.IdentityProvider.GenerateCodeVerifier()
		ctx.SessionManager.SetOauthState(ctx, oauthState)
		ctx.SessionManager.SetOauthCodeVerifier(ctx, codeVerifier)

		ctx.Logger.Debug("Redirecting to identity provider",
			"sop", pending.Sop,
			"session_state", state.Kind.String())

		ctx.Redirect(ctx.IdentityProvider.AuthCodeURL(oauthState, codeVerifier), http.StatusFound)

	default:
		ctx.Logger.Error("Unknown session state", "session_state", state.Kind.String())
		ctx.WriteText(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
