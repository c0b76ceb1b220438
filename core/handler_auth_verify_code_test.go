package core

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nidohq/nido/db/mock"
)

func TestVerifyCodeValidation(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed json",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorInvalidRequest,
		},
		{
			name:       "missing email",
			body:       `{"code":"123456"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorMissingFields,
		},
		{
			name:       "missing code",
			body:       `{"email":"new@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorMissingFields,
		},
		{
			name:       "no pending code",
			body:       `{"email":"new@example.com","code":"123456"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorInvalidOrExpiredCode,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := newTestApp(t, &mock.Db{})

			req := httptest.NewRequest("POST", "/api/auth/verify-code", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", MimeTypeJSON)
			rr := httptest.NewRecorder()

			app.VerifyCodeHandler(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if code := decodeResponseCode(t, rr); code != tc.wantCode {
				t.Errorf("code = %q, want %q", code, tc.wantCode)
			}
		})
	}
}

func TestVerifyCodeFlow(t *testing.T) {
	app, _ := newTestApp(t, &mock.Db{})

	code, err := app.Verifier().IssueCode("new@example.com", "newuser", "Str0ng!pass")
	if err != nil {
		t.Fatalf("IssueCode() error = %v", err)
	}

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/auth/verify-code", strings.NewReader(body))
		req.Header.Set("Content-Type", MimeTypeJSON)
		rr := httptest.NewRecorder()
		app.VerifyCodeHandler(rr, req)
		return rr
	}

	// Wrong code does not verify and does not consume the pending entry.
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	rr := post(fmt.Sprintf(`{"email":"new@example.com","code":"%s"}`, wrong))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("wrong code: status = %d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = post(fmt.Sprintf(`{"email":"new@example.com","code":"%s"}`, code))
	if rr.Code != http.StatusOK {
		t.Fatalf("correct code: status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := decodeResponseCode(t, rr); got != CodeOkCodeVerified {
		t.Errorf("code = %q, want %q", got, CodeOkCodeVerified)
	}

	// Validation is single-use; the same code is rejected on replay.
	rr = post(fmt.Sprintf(`{"email":"new@example.com","code":"%s"}`, code))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("replayed code: status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if got := decodeResponseCode(t, rr); got != CodeErrorInvalidOrExpiredCode {
		t.Errorf("replayed code: code = %q, want %q", got, CodeErrorInvalidOrExpiredCode)
	}
}
