package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nidohq/nido/crypto"
	"github.com/nidohq/nido/db"
)

// SignupHandler completes registration for a verified email.
// Endpoint: POST /api/auth/signup
// Authenticated: No
// Allowed Mimetype: application/json
//
// Requires a live verified mark from VerifyCodeHandler; the mark is
// consumed after the account is created so one verification authorizes
// exactly one signup. A successful signup signs the user in.
func (a *App) SignupHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := a.Verifier().Verified(req.Email); err != nil {
		writeJsonError(w, errorEmailNotVerified)
		return
	}

	hashedPassword, err := crypto.GenerateHash(req.Password)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	newUser := db.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hashedPassword,
	}

	user, err := a.DbAuth().CreateUserWithPassword(newUser)
	if err != nil {
		if errors.Is(err, db.ErrConstraintUnique) {
			writeJsonError(w, a.signupConflict(req.Email))
			return
		}
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	a.Verifier().Consume(req.Email)

	pair, err := a.Sessions().NewTokenPair(user.ID)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	a.setSessionCookies(w, pair)
	writeAuthResponse(w, pair.AccessExpires, user)
}

// signupConflict decides which uniqueness constraint fired. The sqlite
// driver reports a bare unique violation, so the email is looked up again:
// if it exists the email lost the race, otherwise the username did.
func (a *App) signupConflict(email string) jsonResponse {
	user, err := a.DbAuth().GetUserByEmail(email)
	if err == nil && user != nil {
		return errorEmailConflict
	}
	return errorUsernameConflict
}
