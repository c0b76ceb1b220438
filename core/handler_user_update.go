package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nidohq/nido/db"
)

// UpdateUserHandler changes the profile of the authenticated user. Only
// the owner may update their account.
// Endpoint: PUT /api/users/:id
// Authenticated: Yes
// Allowed Mimetype: application/json
//
// Username and email are validated like at signup; a change to either is
// checked for conflicts with other accounts. The avatar is only replaced
// when a non-empty value is submitted.
func (a *App) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	user, resp, err := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, resp)
		return
	}

	if id := a.Params().Get(r.Context()).ByName("id"); id != user.ID {
		writeJsonError(w, errorForbidden)
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" {
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

	// Conflict checks only for values that actually change; keeping your
	// own email or username is never a conflict.
	if req.Email != user.Email {
		other, err := a.DbAuth().GetUserByEmail(req.Email)
		if err != nil {
			writeJsonError(w, errorAuthDatabaseError)
			return
		}
		if other != nil {
			writeJsonError(w, errorEmailConflict)
			return
		}
	}
	if req.Username != user.Username {
		other, err := a.DbAuth().GetUserByUsername(req.Username)
		if err != nil {
			writeJsonError(w, errorAuthDatabaseError)
			return
		}
		if other != nil {
			writeJsonError(w, errorUsernameConflict)
			return
		}
	}

	updated := *user
	updated.Email = req.Email
	updated.Username = req.Username
	if req.Avatar != "" {
		updated.Avatar = req.Avatar
	}

	saved, err := a.DbAuth().UpdateUser(updated)
	if err != nil {
		if errors.Is(err, db.ErrConstraintUnique) {
			// lost the race against a concurrent signup or update
			writeJsonError(w, a.signupConflict(req.Email))
			return
		}
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		a.Logger().Error("failed to update user", "error", err, "user", user.ID)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkIdentity,
			Message: "Profile updated successfully",
		},
		Data: newAuthRecord(saved),
	})
}
