package core

import (
	"net/http"
	"time"

	"github.com/nidohq/nido/session"
)

// Session cookie names. The access cookie is read on every authenticated
// request; the refresh cookie only by the refresh endpoint.
const (
	CookieNameAccess  = "access_token"
	CookieNameRefresh = "refresh_token"
)

func (a *App) newSessionCookie(name, value string, expires time.Time) *http.Cookie {
	cfg := a.Config()
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Cookies.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   cfg.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// setSessionCookies writes both tokens of a freshly minted pair.
func (a *App) setSessionCookies(w http.ResponseWriter, pair session.TokenPair) {
	http.SetCookie(w, a.newSessionCookie(CookieNameAccess, pair.AccessToken, pair.AccessExpires))
	http.SetCookie(w, a.newSessionCookie(CookieNameRefresh, pair.RefreshToken, pair.RefreshExpires))
}

// setAccessCookie replaces only the access token, used by the refresh
// endpoint. The refresh token is not rotated.
func (a *App) setAccessCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, a.newSessionCookie(CookieNameAccess, token, expires))
}

// clearSessionCookies expires both session cookies.
func (a *App) clearSessionCookies(w http.ResponseWriter) {
	expired := time.Unix(0, 0)
	access := a.newSessionCookie(CookieNameAccess, "", expired)
	access.MaxAge = -1
	refresh := a.newSessionCookie(CookieNameRefresh, "", expired)
	refresh.MaxAge = -1
	http.SetCookie(w, access)
	http.SetCookie(w, refresh)
}
