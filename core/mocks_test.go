package core

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/nidohq/nido/config"
	"github.com/nidohq/nido/db/mock"
	"github.com/nidohq/nido/router"
	"github.com/nidohq/nido/session"
	"github.com/nidohq/nido/verification"
)

// MockValidator implements the Validator interface for testing
type MockValidator struct {
	ContentTypeFunc func(r *http.Request, allowedType string) (jsonResponse, error)
}

func (m *MockValidator) ContentType(r *http.Request, allowedType string) (jsonResponse, error) {
	if m.ContentTypeFunc != nil {
		return m.ContentTypeFunc(r, allowedType)
	}
	return jsonResponse{}, nil
}

// MockMailer implements the Mailer interface and records sends.
type MockMailer struct {
	SendVerificationCodeFunc func(ctx context.Context, email, username, code string) error

	SentEmail string
	SentCode  string
	Sends     int
}

func (m *MockMailer) SendVerificationCode(ctx context.Context, email, username, code string) error {
	m.Sends++
	m.SentEmail = email
	m.SentCode = code
	if m.SendVerificationCodeFunc != nil {
		return m.SendVerificationCodeFunc(ctx, email, username, code)
	}
	return nil
}

// mapCache is a minimal cache.Cache for tests. It never evicts on its own.
type mapCache struct {
	entries map[string]any
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]any)}
}

func (m *mapCache) Get(key string) (any, bool) {
	v, ok := m.entries[key]
	return v, ok
}

func (m *mapCache) Set(key string, value any, cost int64) bool {
	m.entries[key] = value
	return true
}

func (m *mapCache) SetWithTTL(key string, value any, cost int64, ttl time.Duration) bool {
	m.entries[key] = value
	return true
}

func (m *mapCache) Delete(key string) {
	delete(m.entries, key)
}

// mockParams implements router.ParamGetter with fixed parameters.
type mockParams struct {
	params router.Params
}

func (m *mockParams) Get(ctx context.Context) router.Params {
	return m.params
}

var (
	testAccessSecret  = "access_secret_32_bytes_long_xxxx"
	testRefreshSecret = "refresh_secret_32_bytes_long_xxx"
)

func testConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Jwt.AccessSecret = testAccessSecret
	cfg.Jwt.RefreshSecret = testRefreshSecret
	cfg.Smtp.Enabled = true
	cfg.Cookies.Secure = false
	return cfg
}

// newTestApp assembles an App with real verification and session cores and
// mocked edges: mock db, mock mailer, in-memory cache.
func newTestApp(t *testing.T, mockDb *mock.Db) (*App, *MockMailer) {
	t.Helper()

	issuer, err := session.NewIssuer([]byte(testAccessSecret), []byte(testRefreshSecret), 0, 0)
	if err != nil {
		t.Fatalf("NewIssuer() error = %v", err)
	}

	mailer := &MockMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := &App{
		dbAuth:         mockDb,
		dbListing:      mockDb,
		cache:          newMapCache(),
		configProvider: config.NewProvider(testConfig()),
		logger:         logger,
		verifier:       verification.New(newMapCache()),
		sessions:       issuer,
		mailer:         mailer,
		validator:      &DefaultValidator{},
		params:         &mockParams{},
	}
	app.authenticator = NewDefaultAuthenticator(mockDb, issuer, logger)

	return app, mailer
}

// setParams replaces the app's parameter getter with fixed values.
func setParams(app *App, params ...router.Param) {
	app.params = &mockParams{params: params}
}

// responseCode extracts the response code from a precomputed jsonResponse.
func responseCode(t *testing.T, resp jsonResponse) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(resp.body, &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body.Code
}

// accessCookie mints a valid access cookie for the given user id.
func accessCookie(t *testing.T, app *App, userID string) *http.Cookie {
	t.Helper()
	token, _, err := app.Sessions().NewAccessToken(userID)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	return &http.Cookie{Name: CookieNameAccess, Value: token}
}
