package handlers

import (
	"net/http"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/models"
)

func POSTLogoutHandler(ctx *middlewares.AppContext) {
	logger := ctx.Logger

	state := ctx.SessionManager.GetState(ctx)
	if state.Kind != models.SessionAuthenticated {
		ctx.SetJSONError(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		return
	}

	if err := ctx.SessionManager.Logout(ctx); err != nil {
		logger.Error("Failed to logout user", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	logger.Info("User logged out", "email", RedactEmail(state.User.Email))

	ctx.SetJSONStatus(http.StatusOK, "OK")
}
