package core

import (
	"encoding/json"
	"net/http"
	"strings"
)

// SendCodeHandler starts the signup flow: it validates the submitted signup
// payload, stores it pending verification and mails a 6-digit code.
// Endpoint: POST /api/auth/send-code
// Authenticated: No
// Allowed Mimetype: application/json
//
// Re-sending for the same email supersedes the previous code. The mail send
// is synchronous; a delivery failure drops the pending entry again so the
// client sees the failure instead of waiting for a code that never comes.
func (a *App) SendCodeHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" || req.Password == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if !validUsername(req.Username) {
		writeJsonError(w, errorUsernameLength)
		return
	}

	if !validPassword(req.Password) {
		writeJsonError(w, errorPasswordComplexity)
		return
	}

	// Early conflict checks so the user is told before the mail round trip.
	// The window between this check and signup stays open; the UNIQUE
	// constraint at account creation decides the race.
	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if user != nil {
		if user.Oauth2 && user.Password == "" {
			writeJsonError(w, errorRegisteredWithGoogle)
			return
		}
		writeJsonError(w, errorEmailConflict)
		return
	}

	user, err = a.DbAuth().GetUserByUsername(req.Username)
	if err != nil {
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if user != nil {
		writeJsonError(w, errorUsernameConflict)
		return
	}

	code, err := a.Verifier().IssueCode(req.Email, req.Username, req.Password)
	if err != nil {
		a.Logger().Error("failed to issue verification code", "error", err)
		writeJsonError(w, errorServiceUnavailable)
		return
	}

	if !a.Config().Smtp.Enabled {
		// local development without an SMTP server
		a.Logger().Info("smtp disabled, verification code not mailed", "email", req.Email, "code", code)
		writeJsonOk(w, okVerificationCodeSent)
		return
	}

	if err := a.Mailer().SendVerificationCode(r.Context(), req.Email, req.Username, code); err != nil {
		a.Logger().Error("failed to send verification email", "error", err, "email", req.Email)
		a.Verifier().Invalidate(req.Email)
		writeJsonError(w, errorMailDelivery)
		return
	}

	writeJsonOk(w, okVerificationCodeSent)
}
