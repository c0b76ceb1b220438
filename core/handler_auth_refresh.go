package core

import (
	"net/http"
)

// RefreshHandler mints a new access token from the refresh cookie.
// Endpoint: GET /api/auth/refresh
// Authenticated: refresh cookie
//
// This is the silent-refresh path clients hit when the access token
// expires. Any refresh failure is terminal: both cookies are cleared and
// the client must sign in again. The refresh token is not rotated on
// success.
func (a *App) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(CookieNameRefresh)
	if err != nil || cookie.Value == "" {
		writeJsonError(w, errorNoAuthCookie)
		return
	}

	access, expires, err := a.Sessions().Refresh(cookie.Value)
	if err != nil {
		a.clearSessionCookies(w)
		writeJsonError(w, errorJwtInvalidToken)
		return
	}

	userID, err := a.Sessions().VerifyAccess(access)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	user, err := a.DbAuth().GetUserById(userID)
	if err != nil {
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil {
		a.clearSessionCookies(w)
		writeJsonError(w, errorJwtInvalidToken)
		return
	}

	a.setAccessCookie(w, access, expires)
	writeAuthResponse(w, expires, user)
}
