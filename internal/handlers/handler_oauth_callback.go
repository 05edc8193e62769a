package handlers

import (
	"crypto/subtle"
	"net/http"
	"traceable-link/internal/metrics"
	"traceable-link/internal/middlewares"
)

// GETCallbackHandler completes the authorization-code flow and stores the visitor identity.
func GETCallbackHandler(ctx *middlewares.AppContext) {
	query := ctx.Request.URL.Query()

	if errorParam := query.Get("error"); errorParam != "" {
		authenticationFailed(ctx, "OAuth callback error",
			"error", errorParam,
			"description", query.Get("error_description"))
		return
	}

	expectedState := ctx.SessionManager.GetOauthState(ctx)
	codeVerifier := ctx.SessionManager.GetOauthCodeVerifier(ctx)
	ctx.SessionManager.ClearOauthState(ctx)
	ctx.SessionManager.ClearOauthCodeVerifier(ctx)

	if expectedState == "" || subtle.ConstantTimeCompare([]byte(query.Get("state")), []byte(expectedState)) != 1 {
		authenticationFailed(ctx, "Failed to validate OAuth callback", "error", ErrOauthStateMismatch)
		return
	}

	code := query.Get("code")
	if code == "" {
		authenticationFailed(ctx, "Failed to validate OAuth callback", "error", ErrMissingCode)
		return
	}

	token, err := ctx.IdentityProvider.Exchange(ctx, code, codeVerifier)
	if err != nil {
		authenticationFailed(ctx, "Failed to exchange authorization code", "error", err)
		return
	}

	user, err := ctx.IdentityProvider.FetchUserInfo(ctx, token)
	if err != nil {
		authenticationFailed(ctx, "Failed to fetch user info", "error", err)
		return
	}

	if err := ctx.SessionManager.RenewToken(ctx); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.LoginResultFailure).Inc()
		ctx.Logger.Error("Failed to renew session token", "error", err)
		ctx.WriteText(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	ctx.SessionManager.SetUser(ctx, user)
	metrics.LoginsTotal.WithLabelValues(metrics.LoginResultSuccess).Inc()

	ctx.Logger.Info("User successfully authenticated", "email", RedactEmail(user.Email))

	ctx.Redirect(ForwardPath, http.StatusFound)
}

func authenticationFailed(ctx *middlewares.AppContext, msg string, args ...any) {
	metrics.LoginsTotal.WithLabelValues(metrics.LoginResultFailure).Inc()
	ctx.Logger.Error(msg, args...)

	if redirectToFallback(ctx) {
		return
	}

	ctx.WriteText(http.StatusBadGateway, authenticationFailedMessage)
}
