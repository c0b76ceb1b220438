package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nidohq/nido/verification"
)

// VerifyCodeHandler validates a submitted verification code.
// Endpoint: POST /api/auth/verify-code
// Authenticated: No
// Allowed Mimetype: application/json
//
// Validation is single-use: a correct code consumes the pending entry and
// marks the email verified for the signup step. Missing, wrong and expired
// codes all produce the same response.
func (a *App) VerifyCodeHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Code = strings.TrimSpace(req.Code)
	if req.Email == "" || req.Code == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if err := a.Verifier().ValidateCode(req.Email, req.Code); err != nil {
		if errors.Is(err, verification.ErrInvalidOrExpiredCode) {
			writeJsonError(w, errorInvalidOrExpiredCode)
			return
		}
		writeJsonError(w, errorServiceUnavailable)
		return
	}

	writeJsonOk(w, okCodeVerified)
}
