package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"traceable-link/internal/models"
	"traceable-link/internal/testutil"
)

func TestPOSTLogoutHandler_ShouldDestroySession(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/logout")
	defer tc.Finish()

	tc.ExpectState(models.SessionState{Kind: models.SessionAuthenticated, User: testUser})
	tc.MockSession.EXPECT().Logout(tc.AppContext).Return(nil)

	tc.CallHandler(POSTLogoutHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "application/json")
	tc.AssertJSONField(t, "status", "OK")
	tc.AssertLogAttr(t, slog.LevelInfo, "User logged out", "email", "*@b.com")
}

func TestPOSTLogoutHandler_ShouldRejectAnonymousVisitors(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/logout")
	defer tc.Finish()

	tc.ExpectState(models.SessionState{Kind: models.SessionAnonymous})

	tc.CallHandler(POSTLogoutHandler)

	tc.AssertStatus(t, http.StatusBadRequest)
	tc.AssertJSONField(t, "error", "Bad Request")
}

func TestPOSTLogoutHandler_ShouldReportStoreFailure(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/logout")
	defer tc.Finish()

	tc.ExpectState(models.SessionState{Kind: models.SessionAuthenticated, User: testUser})
	tc.MockSession.EXPECT().Logout(tc.AppContext).Return(errors.New("store unavailable"))

	tc.CallHandler(POSTLogoutHandler)

	tc.AssertStatus(t, http.StatusInternalServerError)
	tc.AssertJSONField(t, "error", "Internal Server Error")
	tc.AssertLogsContainMessage(t, slog.LevelError, "Failed to logout user")
}
