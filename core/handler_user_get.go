package core

import (
	"net/http"
)

// GetUserHandler returns the public profile of a user by id. Any
// authenticated user may look up any profile; the password hash never
// leaves the record shape.
// Endpoint: GET /api/users/:id
// Authenticated: Yes
func (a *App) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	if _, resp, err := a.Auth().Authenticate(r); err != nil {
		writeJsonError(w, resp)
		return
	}

	id := a.Params().Get(r.Context()).ByName("id")

	user, err := a.DbAuth().GetUserById(id)
	if err != nil {
		a.Logger().Error("failed to load user", "error", err, "user", id)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil {
		writeJsonError(w, errorNotFound)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkIdentity,
			Message: "User found",
		},
		Data: newAuthRecord(user),
	})
}
