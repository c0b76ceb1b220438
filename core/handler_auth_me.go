package core

import (
	"net/http"
)

// MeHandler returns the identity behind the access cookie.
// Endpoint: GET /api/auth/me
// Authenticated: Yes
func (a *App) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, resp, err := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, resp)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkIdentity,
			Message: "Authenticated user",
		},
		Data: newAuthRecord(user),
	})
}
