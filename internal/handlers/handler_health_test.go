package handlers

import (
	"net/http"
	"testing"
	"traceable-link/internal/testutil"
	"traceable-link/internal/version"
)

func TestHandlerHealth(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/v1/health")
	defer tc.Finish()

	tc.CallHandler(HandlerHealth)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "application/json")
	tc.AssertJSONString(t, "status", "OK")
	tc.AssertJSONString(t, "version", version.GetVersion())
	tc.AssertJSONString(t, "commit", version.GetGitCommit())
	tc.AssertJSONString(t, "built", version.GetBuildTime())
}
