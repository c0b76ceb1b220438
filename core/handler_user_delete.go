package core

import (
	"errors"
	"net/http"

	"github.com/nidohq/nido/db"
)

// DeleteUserHandler removes the authenticated user's account and their
// listings, then ends the session by expiring both session cookies. Only
// the owner may delete their account.
// Endpoint: DELETE /api/users/:id
// Authenticated: Yes
func (a *App) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	user, resp, err := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, resp)
		return
	}

	if id := a.Params().Get(r.Context()).ByName("id"); id != user.ID {
		writeJsonError(w, errorForbidden)
		return
	}

	if err := a.DbAuth().DeleteUser(user.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		a.Logger().Error("failed to delete user", "error", err, "user", user.ID)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	a.clearSessionCookies(w)
	writeJsonOk(w, okAccountDeleted)
}
