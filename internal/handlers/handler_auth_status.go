package handlers

import (
	"net/http"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/models"
)

type AuthStatusResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
}

func GETAuthStatusHandler(ctx *middlewares.AppContext) {
	response := AuthStatusResponse{
		Authenticated: false,
	}

	state := ctx.SessionManager.GetState(ctx)

	switch state.Kind {
	case models.SessionAuthenticated:
		response.Authenticated = true
		response.User = state.User
		ctx.WriteJSON(http.StatusOK, response)
	case models.SessionAnonymous, models.SessionAwaitingCallback:
		ctx.WriteJSON(http.StatusUnauthorized, response)
	default:
		ctx.SetJSONError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
