package core

import (
	"net/http"
	"time"

	"github.com/nidohq/nido/db"
)

// Standardized response formats for authentication endpoints. The session
// tokens travel in http-only cookies, so the body carries the access token
// metadata and the user record only; the client never stores tokens itself.
//
// Example authentication response:
//
//	{
//	  "status": 200,
//	  "code": "ok_authentication",
//	  "message": "Authentication successful",
//	  "data": {
//	    "token_type": "Cookie",
//	    "expires_in": 900,
//	    "record": {
//	      "id": "u1a2b3",
//	      "email": "user@example.com",
//	      "username": "user1234",
//	      "avatar": ""
//	    }
//	  }
//	}
const (
	// oks for non precomputed, dynamic auth responses
	CodeOkAuthentication = "ok_authentication"
	CodeOkIdentity       = "ok_identity"
)

// AuthRecord represents the user record in authentication responses
type AuthRecord struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// AuthData represents the authentication response structure
type AuthData struct {
	TokenType string     `json:"token_type"`
	ExpiresIn int        `json:"expires_in"`
	Record    AuthRecord `json:"record"`
}

func newAuthRecord(user *db.User) AuthRecord {
	return AuthRecord{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Avatar:   user.Avatar,
	}
}

// writeAuthResponse writes a standardized authentication response.
// accessExpires is the expiry of the access token just written to the
// cookie; the client uses expires_in to schedule its silent refresh.
func writeAuthResponse(w http.ResponseWriter, accessExpires time.Time, user *db.User) {
	authData := AuthData{
		TokenType: "Cookie",
		ExpiresIn: int(time.Until(accessExpires).Seconds()),
		Record:    newAuthRecord(user),
	}
	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkAuthentication,
			Message: "Authentication successful",
		},
		Data: authData,
	}
	writeJsonWithData(w, response)
}
