package core

import (
	"net/http"
)

// SignoutHandler ends the session by expiring both session cookies.
// Endpoint: GET /api/auth/signout
// Authenticated: No
//
// No token verification happens: signing out with an expired or missing
// session is not an error, and there is no server-side session state to
// revoke.
func (a *App) SignoutHandler(w http.ResponseWriter, r *http.Request) {
	a.clearSessionCookies(w)
	writeJsonOk(w, okSignout)
}
