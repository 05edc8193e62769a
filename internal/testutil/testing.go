package testutil

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"traceable-link/internal/config"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/mocks"
	"traceable-link/internal/models"

	"go.uber.org/mock/gomock"
)

// TestContext holds everything needed for testing
type TestContext struct {
	AppContext      *middlewares.AppContext
	Request         *http.Request
	Response        *httptest.ResponseRecorder
	MockController  *gomock.Controller
	MockSession     *mocks.MockSessionProvider
	MockIdentity    *mocks.MockIdentityProvider
	MockClickLogger *mocks.MockClickLogger
	MockClickCache  *mocks.MockClickCache
	LogHandler      *TestLogHandler
}

// NewTestContextWithURL creates a complete test setup with sensible defaults
func NewTestContextWithURL(t *testing.T, method, url string) *TestContext {
	cfg := &config.Config{}

	logHandler := NewTestLogHandler()
	logger := slog.New(logHandler)

	// Create mock controller
	ctrl := gomock.NewController(t)

	// Create mocks
	mockSession := mocks.NewMockSessionProvider(ctrl)
	mockIdentity := mocks.NewMockIdentityProvider(ctrl)
	mockClickLogger := mocks.NewMockClickLogger(ctrl)
	mockClickCache := mocks.NewMockClickCache(ctrl)

	req := httptest.NewRequest(method, url, nil)
	rr := httptest.NewRecorder()

	appCtx := &middlewares.AppContext{
		Context:          req.Context(),
		Config:           cfg,
		Logger:           logger,
		SessionManager:   mockSession,
		IdentityProvider: mockIdentity,
		ClickLogger:      mockClickLogger,
		ClickCache:       nil,
		Request:          req,
		Response:         rr,
	}

	return &TestContext{
		AppContext:      appCtx,
		Request:         req,
		Response:        rr,
		MockController:  ctrl,
		MockSession:     mockSession,
		MockIdentity:    mockIdentity,
		MockClickLogger: mockClickLogger,
		MockClickCache:  mockClickCache,
		LogHandler:      logHandler,
	}
}

// Finish should be called at the end of tests to clean up mocks
func (tc *TestContext) Finish() {
	if tc.MockController != nil {
		tc.MockController.Finish()
	}
}

func (tc *TestContext) AssertLogsContainMessage(t *testing.T, level slog.Level, message string) {
	t.Helper()
	if !tc.LogHandler.ContainsMessage(level, message) {
		t.Errorf("Expected to find log entry with level %v containing message: %s", level, message)
	}
}

func (tc *TestContext) AssertLogCount(t *testing.T, level slog.Level, expectedCount int) {
	t.Helper()
	count := tc.LogHandler.CountByLevel(level)
	if count != expectedCount {
		t.Errorf("Expected %d log entries at level %v, got %d", expectedCount, level, count)
	}
}

// AssertLogAttr checks an attribute of the first log entry with the given level and message.
func (tc *TestContext) AssertLogAttr(t *testing.T, level slog.Level, message, key string, expected any) {
	t.Helper()
	record, found := tc.LogHandler.FindRecord(level, message)
	if !found {
		t.Errorf("Expected to find log entry with level %v containing message: %s", level, message)
		return
	}
	if actual, ok := record.Attrs[key]; !ok || actual != expected {
		t.Errorf("Expected log attribute %s=%v on %q, got %v", key, expected, message, actual)
	}
}

func (tc *TestContext) GetLogRecords() []TestLogRecord {
	return tc.LogHandler.GetRecords()
}

// CallHandler executes a handler with the test context
func (tc *TestContext) CallHandler(handler middlewares.AppHandler) {
	handler(tc.AppContext)
}

// AssertStatus checks the HTTP status code
func (tc *TestContext) AssertStatus(t *testing.T, expectedStatus int) {
	t.Helper()
	if tc.Response.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d", expectedStatus, tc.Response.Code)
	}
}

// AssertContentType checks the content type header
func (tc *TestContext) AssertContentType(t *testing.T, expectedType string) {
	t.Helper()
	if ct := tc.Response.Header().Get("Content-Type"); ct != expectedType {
		t.Errorf("Expected content type %s, got %s", expectedType, ct)
	}
}

// AssertLocationHeader checks the redirect destination
func (tc *TestContext) AssertLocationHeader(t *testing.T, expected string) {
	t.Helper()
	if location := tc.Response.Header().Get("Location"); location != expected {
		t.Errorf("Expected Location %q, got %q", expected, location)
	}
}

// AssertBody checks the raw response body
func (tc *TestContext) AssertBody(t *testing.T, expected string) {
	t.Helper()
	if body := tc.Response.Body.String(); body != expected {
		t.Errorf("Expected body %q, got %q", expected, body)
	}
}

// GetJSONResponse parses the response body as JSON
func (tc *TestContext) GetJSONResponse(t *testing.T) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse JSON response: %v", err)
	}
	return response
}

// AssertJSONField checks a specific field in a JSON response
func (tc *TestContext) AssertJSONField(t *testing.T, field string, expected any) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	if actual, ok := response[field]; !ok || actual != expected {
		t.Errorf("Expected %s to be %v, got %v", field, expected, response[field])
	}
}

func (tc *TestContext) AssertJSONBool(t *testing.T, field string, expected bool) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	actualBool, ok := actual.(bool)
	if !ok {
		t.Errorf("Expected %s to be a boolean, got %T", field, actual)
		return
	}

	if actualBool != expected {
		t.Errorf("Expected %s to be %v, got %v", field, expected, actualBool)
	}
}

// AssertJSONString checks a specific string field in a JSON response
func (tc *TestContext) AssertJSONString(t *testing.T, field string, expected string) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	actualString, ok := actual.(string)
	if !ok {
		t.Errorf("Expected %s to be a string, got %T", field, actual)
		return
	}

	if actualString != expected {
		t.Errorf("Expected %s to be %q, got %q", field, expected, actualString)
	}
}

// AssertUser validates a user object in the JSON response
func (tc *TestContext) AssertUser(t *testing.T, field string, expected *models.User) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	user, ok := actual.(map[string]interface{})
	if !ok {
		t.Errorf("Expected %s to be a user object, got %T", field, actual)
		return
	}

	if user["email"] != expected.Email {
		t.Errorf("Expected %s.email to be %q, got %v", field, expected.Email, user["email"])
	}
	if user["name"] != expected.Name {
		t.Errorf("Expected %s.name to be %q, got %v", field, expected.Name, user["name"])
	}
}

// WithConfig allows you to override the default config for specific tests
func (tc *TestContext) WithConfig(cfg *config.Config) *TestContext {
	tc.AppContext.Config = cfg
	return tc
}

// WithClickCache enables the mock dedup cache
func (tc *TestContext) WithClickCache() *TestContext {
	tc.AppContext.ClickCache = tc.MockClickCache
	return tc
}

// Helper to add query parameters to the request
func (tc *TestContext) WithQueryParam(key, value string) *TestContext {
	q := tc.Request.URL.Query()
	q.Add(key, value)
	tc.Request.URL.RawQuery = q.Encode()
	return tc
}

// Helper to add headers
func (tc *TestContext) WithHeader(key, value string) *TestContext {
	tc.Request.Header.Set(key, value)
	return tc
}

// ExpectState sets up an expectation for session.GetState()
func (tc *TestContext) ExpectState(state models.SessionState) *gomock.Call {
	return tc.MockSession.EXPECT().GetState(tc.AppContext).Return(state)
}
