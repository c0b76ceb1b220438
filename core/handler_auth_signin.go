package core

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nidohq/nido/crypto"
)

// SigninHandler handles password-based authentication.
// Endpoint: POST /api/auth/signin
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) SigninHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil {
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	// Federated accounts have no password hash. Telling the user apart
	// from a wrong password is deliberate: the account exists and has a
	// working sign-in method.
	if user.Password == "" {
		writeJsonError(w, errorRegisteredWithGoogle)
		return
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	pair, err := a.Sessions().NewTokenPair(user.ID)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	a.setSessionCookies(w, pair)
	writeAuthResponse(w, pair.AccessExpires, user)
}
