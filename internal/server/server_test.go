package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
	"traceable-link/internal/config"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/mocks"
	"traceable-link/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routerMocks struct {
	session     *mocks.MockSessionProvider
	identity    *mocks.MockIdentityProvider
	clickLogger *mocks.MockClickLogger
}

func newTestRouter(t *testing.T) (http.Handler, routerMocks) {
	ctrl := gomock.NewController(t)

	m := routerMocks{
		session:     mocks.NewMockSessionProvider(ctrl),
		identity:    mocks.NewMockIdentityProvider(ctrl),
		clickLogger: mocks.NewMockClickLogger(ctrl),
	}
	m.session.EXPECT().LoadAndSave(gomock.Any()).DoAndReturn(func(next http.Handler) http.Handler {
		return next
	})

	cfg := &config.Config{CORS: config.DefaultCORSConfig}
	appCtx := middlewares.NewAppContext(context.Background(), cfg, slog.New(slog.DiscardHandler), m.session, m.identity, m.clickLogger, nil)

	return setupRouter(appCtx), m
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "OK", body["status"])
}

func TestRouter_ForwardWithoutLoginRestartsAtEntry(t *testing.T) {
	router, m := newTestRouter(t)
	m.session.EXPECT().GetState(gomock.Any()).Return(models.SessionState{Kind: models.SessionAnonymous})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/go", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestRouter_EntryStoresPendingLink(t *testing.T) {
	router, m := newTestRouter(t)

	m.session.EXPECT().GetState(gomock.Any()).Return(models.SessionState{Kind: models.SessionAnonymous})
	m.session.EXPECT().SetPending(gomock.Any(), &models.PendingLink{
		Sop:     "abc123",
		SopName: "Weekly Report",
		Target:  "https://coda.io/d/xyz",
	})
	m.identity.EXPECT().GenerateRandString(32).Return("state")
	m.identity.EXPECT().GenerateCodeVerifier().Return("verifier")
	m.session.EXPECT().SetOauthState(gomock.Any(), "state")
	m.session.EXPECT().SetOauthCodeVerifier(gomock.Any(), "verifier")
	m.identity.EXPECT().AuthCodeURL("state", "verifier").Return("https://accounts.google.com/o/oauth2/v2/auth?state=state")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/?sop=abc123&sopName=Weekly%20Report&target=https%3A%2F%2Fcoda.io%2Fd%2Fxyz", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/v2/auth?state=state", rr.Header().Get("Location"))
}

func TestRouter_LogoutRequiresPost(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/auth/logout", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestSetupDebugRouter_ServesMetrics(t *testing.T) {
	router := setupDebugRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestCalculateSweepInterval(t *testing.T) {
	assert.Equal(t, 30*time.Second, calculateSweepInterval(time.Second))
	assert.Equal(t, 30*time.Second, calculateSweepInterval(30*time.Second))
	assert.Equal(t, 5*time.Minute, calculateSweepInterval(5*time.Minute))
}

func TestSetupLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace-link.log")
	cfg := &config.Config{Log: config.LogConfig{Level: "info", Format: "text", File: path}}

	logger, closer, err := setupLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, closer)

	logger.Debug("hidden")
	logger.Error("something broke", "component", "test")
	require.NoError(t, closer.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(contents, &record))
	assert.Equal(t, "something broke", record["msg"])
	assert.Equal(t, "test", record["component"])
	assert.Contains(t, record["stack"], "runtime/debug.Stack")
}

func TestSetupLogger_InvalidFile(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{File: filepath.Join(t.TempDir(), "missing", "app.log")}}

	_, _, err := setupLogger(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}

func TestMultiHandler_FansOut(t *testing.T) {
	first := &countingHandler{}
	second := &countingHandler{}

	logger := slog.New(NewMultiHandler(first, second)).With("k", "v")
	logger.Info("hello")

	assert.Equal(t, 1, first.count)
	assert.Equal(t, 1, second.count)
}

type countingHandler struct {
	count int
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *countingHandler) Handle(context.Context, slog.Record) error {
	h.count++
	return nil
}

func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }
