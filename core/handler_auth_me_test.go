package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nidohq/nido/db"
	"github.com/nidohq/nido/db/mock"
)

func TestMeHandlerUnauthenticated(t *testing.T) {
	app, _ := newTestApp(t, &mock.Db{})

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	rr := httptest.NewRecorder()

	app.MeHandler(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if code := decodeResponseCode(t, rr); code != CodeErrorNoAuthCookie {
		t.Errorf("code = %q, want %q", code, CodeErrorNoAuthCookie)
	}
}

func TestMeHandlerSuccess(t *testing.T) {
	mockDb := &mock.Db{
		GetUserByIdFunc: func(id string) (*db.User, error) {
			return &db.User{ID: id, Email: "user@example.com", Username: "user1", Avatar: "a.png"}, nil
		},
	}
	app, _ := newTestApp(t, mockDb)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(accessCookie(t, app, "user-1"))
	rr := httptest.NewRecorder()

	app.MeHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp struct {
		Code string     `json:"code"`
		Data AuthRecord `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != CodeOkIdentity {
		t.Errorf("code = %q, want %q", resp.Code, CodeOkIdentity)
	}
	want := AuthRecord{ID: "user-1", Email: "user@example.com", Username: "user1", Avatar: "a.png"}
	if resp.Data != want {
		t.Errorf("record = %+v, want %+v", resp.Data, want)
	}
}

func TestSignoutClearsCookies(t *testing.T) {
	app, _ := newTestApp(t, &mock.Db{})

	req := httptest.NewRequest("GET", "/api/auth/signout", nil)
	rr := httptest.NewRecorder()

	app.SignoutHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if code := decodeResponseCode(t, rr); code != CodeOkSignout {
		t.Errorf("code = %q, want %q", code, CodeOkSignout)
	}
	if !clearedCookie(rr, CookieNameAccess) || !clearedCookie(rr, CookieNameRefresh) {
		t.Error("signout must clear both session cookies")
	}
}
