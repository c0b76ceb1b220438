package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nidohq/nido/config"
	"github.com/nidohq/nido/db"
	"github.com/nidohq/nido/db/mock"
)

// fakeGoogle serves the token and userinfo endpoints of the code flow.
func fakeGoogle(t *testing.T, info googleUserInfo) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.FormValue("code") == "bad-code" {
			http.Error(w, "invalid_grant", http.StatusBadRequest)
			return
		}
		if r.FormValue("code_verifier") == "" {
			http.Error(w, "missing verifier", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"fake-access","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(info)
	})
	return httptest.NewServer(mux)
}

func googleTestApp(t *testing.T, mockDb *mock.Db, srv *httptest.Server) *App {
	t.Helper()
	app, _ := newTestApp(t, mockDb)
	cfg := testConfig()
	cfg.OAuth2Providers[config.OAuth2ProviderGoogle] = config.OAuth2Provider{
		Name:         config.OAuth2ProviderGoogle,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      srv.URL + "/auth",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
		Scopes:       []string{"email", "profile"},
		PKCE:         true,
	}
	app.configProvider.Update(cfg)
	return app
}

func postGoogle(app *App, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/auth/google", strings.NewReader(body))
	req.Header.Set("Content-Type", MimeTypeJSON)
	rr := httptest.NewRecorder()
	app.AuthWithGoogleHandler(rr, req)
	return rr
}

func TestAuthWithGoogleValidation(t *testing.T) {
	app, _ := newTestApp(t, &mock.Db{})

	testCases := []struct {
		name     string
		body     string
		wantCode string
	}{
		{
			name:     "missing code",
			body:     `{"code_verifier":"v","redirect_uri":"https://app.example.com/cb"}`,
			wantCode: CodeErrorMissingFields,
		},
		{
			name:     "missing verifier",
			body:     `{"code":"c","redirect_uri":"https://app.example.com/cb"}`,
			wantCode: CodeErrorMissingFields,
		},
		{
			name:     "missing redirect uri",
			body:     `{"code":"c","code_verifier":"v"}`,
			wantCode: CodeErrorMissingFields,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postGoogle(app, tc.body)
			if code := decodeResponseCode(t, rr); code != tc.wantCode {
				t.Errorf("code = %q, want %q", code, tc.wantCode)
			}
		})
	}
}

func TestAuthWithGoogleUnknownProvider(t *testing.T) {
	app, _ := newTestApp(t, &mock.Db{})
	cfg := testConfig()
	cfg.OAuth2Providers = map[string]config.OAuth2Provider{}
	app.configProvider.Update(cfg)

	rr := postGoogle(app, `{"code":"c","code_verifier":"v","redirect_uri":"https://app.example.com/cb"}`)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if code := decodeResponseCode(t, rr); code != CodeErrorInvalidOAuth2Provider {
		t.Errorf("code = %q, want %q", code, CodeErrorInvalidOAuth2Provider)
	}
}

func TestAuthWithGoogleExchangeFailure(t *testing.T) {
	srv := fakeGoogle(t, googleUserInfo{Email: "user@example.com"})
	defer srv.Close()
	app := googleTestApp(t, &mock.Db{}, srv)

	rr := postGoogle(app, `{"code":"bad-code","code_verifier":"v","redirect_uri":"https://app.example.com/cb"}`)

	if code := decodeResponseCode(t, rr); code != CodeErrorOAuth2Exchange {
		t.Errorf("code = %q, want %q", code, CodeErrorOAuth2Exchange)
	}
}

func TestAuthWithGoogleFirstLogin(t *testing.T) {
	var created db.User
	mockDb := &mock.Db{
		CreateUserWithOauth2Func: func(user db.User) (*db.User, error) {
			created = user
			user.ID = "user-g1"
			return &user, nil
		},
	}
	srv := fakeGoogle(t, googleUserInfo{Email: "jane@example.com", Name: "Jane Doe", Picture: "p.png"})
	defer srv.Close()
	app := googleTestApp(t, mockDb, srv)

	rr := postGoogle(app, `{"code":"good-code","code_verifier":"v","redirect_uri":"https://app.example.com/cb"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp authResponseBody
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != CodeOkAuthentication {
		t.Errorf("code = %q, want %q", resp.Code, CodeOkAuthentication)
	}
	if resp.Data.Record.ID != "user-g1" {
		t.Errorf("record id = %q, want %q", resp.Data.Record.ID, "user-g1")
	}

	if !created.Oauth2 || created.Password != "" {
		t.Errorf("created user = %+v, want federated account without password", created)
	}
	if !strings.HasPrefix(created.Username, "janedoe") || len(created.Username) != len("janedoe")+4 {
		t.Errorf("username = %q, want janedoe plus 4 digits", created.Username)
	}

	access, refresh := sessionCookies(rr)
	if access == nil || refresh == nil {
		t.Fatal("session cookies not set")
	}
}

func TestAuthWithGoogleExistingFederatedUser(t *testing.T) {
	existing := &db.User{ID: "user-g1", Email: "jane@example.com", Username: "janedoe1234", Oauth2: true}
	mockDb := &mock.Db{
		GetUserByEmailFunc: func(email string) (*db.User, error) {
			return existing, nil
		},
		CreateUserWithOauth2Func: func(user db.User) (*db.User, error) {
			t.Error("CreateUserWithOauth2 called for existing federated user")
			return nil, nil
		},
	}
	srv := fakeGoogle(t, googleUserInfo{Email: "jane@example.com", Name: "Jane Doe"})
	defer srv.Close()
	app := googleTestApp(t, mockDb, srv)

	rr := postGoogle(app, `{"code":"good-code","code_verifier":"v","redirect_uri":"https://app.example.com/cb"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp authResponseBody
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Record.Username != "janedoe1234" {
		t.Errorf("username = %q, want existing account", resp.Data.Record.Username)
	}
}

func TestGeneratedUsername(t *testing.T) {
	testCases := []struct {
		name       string
		email      string
		display    string
		wantPrefix string
	}{
		{name: "from display name", email: "jane@example.com", display: "Jane Doe", wantPrefix: "janedoe"},
		{name: "from email local part", email: "jane.d@example.com", display: "", wantPrefix: "jane.d"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := generatedUsername(tc.email, tc.display)
			if !strings.HasPrefix(got, tc.wantPrefix) {
				t.Errorf("generatedUsername() = %q, want prefix %q", got, tc.wantPrefix)
			}
			suffix := strings.TrimPrefix(got, tc.wantPrefix)
			if len(suffix) != 4 {
				t.Fatalf("suffix = %q, want 4 digits", suffix)
			}
			for _, c := range suffix {
				if c < '0' || c > '9' {
					t.Errorf("suffix %q contains non-digit", suffix)
					break
				}
			}
		})
	}
}
