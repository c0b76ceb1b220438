package core

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nidohq/nido/db"
	"github.com/nidohq/nido/session"
)

// Authenticator defines the interface for authentication operations
type Authenticator interface {
	// Authenticate resolves the request's access cookie to a user. On
	// failure the jsonResponse is the error to write; the expired case
	// carries its own code so clients know a refresh attempt is worthwhile.
	Authenticate(r *http.Request) (*db.User, jsonResponse, error)
}

// DefaultAuthenticator implements Authenticator using the access token
// cookie set at sign-in.
type DefaultAuthenticator struct {
	dbAuth   db.DbAuth
	sessions *session.Issuer
	logger   *slog.Logger
}

// NewDefaultAuthenticator creates a new DefaultAuthenticator instance
func NewDefaultAuthenticator(dbAuth db.DbAuth, sessions *session.Issuer, logger *slog.Logger) *DefaultAuthenticator {
	return &DefaultAuthenticator{
		dbAuth:   dbAuth,
		sessions: sessions,
		logger:   logger,
	}
}

// Authenticate implements the Authenticator interface
func (a *DefaultAuthenticator) Authenticate(r *http.Request) (*db.User, jsonResponse, error) {
	errAuth := errors.New("auth error")

	cookie, err := r.Cookie(CookieNameAccess)
	if err != nil || cookie.Value == "" {
		return nil, errorNoAuthCookie, errAuth
	}

	userID, err := a.sessions.VerifyAccess(cookie.Value)
	if err != nil {
		if errors.Is(err, session.ErrTokenExpired) {
			return nil, errorJwtTokenExpired, errAuth
		}
		return nil, errorJwtInvalidToken, errAuth
	}

	user, err := a.dbAuth.GetUserById(userID)
	if err != nil {
		a.logger.Error("auth: user lookup failed", "error", err)
		return nil, errorAuthDatabaseError, errAuth
	}
	// A valid token for a deleted user is still an invalid session.
	if user == nil {
		return nil, errorJwtInvalidToken, errAuth
	}

	return user, jsonResponse{}, nil
}
