package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/nidohq/nido/config"
	"github.com/nidohq/nido/crypto"
	"github.com/nidohq/nido/db"
)

// oauth2TokenExchangeTimeout caps OAuth2 token exchange operations so an
// unresponsive provider cannot hang the request.
const oauth2TokenExchangeTimeout = 10 * time.Second

// googleUserInfo is the subset of the userinfo endpoint payload we use.
type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// AuthWithGoogleHandler handles federated login through Google.
// Endpoint: POST /api/auth/google
// Authenticated: No
// Allowed Mimetype: application/json
//
// The client runs the authorization code flow with PKCE and posts the code
// plus its verifier here. First login creates the account with a generated
// username and no password; an existing password account is upgraded in
// place, keeping the password valid.
func (a *App) AuthWithGoogleHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Code         string `json:"code"`
		CodeVerifier string `json:"code_verifier"`
		RedirectURI  string `json:"redirect_uri"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.Code == "" || req.CodeVerifier == "" || req.RedirectURI == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	provider, ok := a.Config().OAuth2Providers[config.OAuth2ProviderGoogle]
	if !ok {
		writeJsonError(w, errorInvalidOAuth2Provider)
		return
	}

	oauth2Config := oauth2.Config{
		ClientID:     provider.ClientID,
		ClientSecret: provider.ClientSecret,
		RedirectURL:  req.RedirectURI,
		Scopes:       provider.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  provider.AuthURL,
			TokenURL: provider.TokenURL,
		},
	}

	ctx, cancel := context.WithTimeout(r.Context(), oauth2TokenExchangeTimeout)
	defer cancel()

	token, err := oauth2Config.Exchange(
		ctx,
		req.Code,
		oauth2.SetAuthURLParam("code_verifier", req.CodeVerifier),
	)
	if err != nil {
		writeJsonError(w, errorOAuth2Exchange)
		return
	}

	client := oauth2Config.Client(ctx, token)
	resp, err := client.Get(provider.UserInfoURL)
	if err != nil {
		writeJsonError(w, errorOAuth2UserInfo)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		writeJsonError(w, errorOAuth2UserInfo)
		return
	}

	if info.Email == "" || ValidateEmail(info.Email) != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.federatedUser(info)
	if err != nil {
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	pair, err := a.Sessions().NewTokenPair(user.ID)
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	a.setSessionCookies(w, pair)
	writeAuthResponse(w, pair.AccessExpires, user)
}

// federatedUser resolves a Google identity to a local user, creating or
// upgrading the record as needed. The upsert keys on email; a generated
// username can still collide with an existing one, so creation retries with
// a fresh suffix a few times before giving up.
func (a *App) federatedUser(info googleUserInfo) (*db.User, error) {
	user, err := a.DbAuth().GetUserByEmail(info.Email)
	if err != nil {
		return nil, err
	}
	if user != nil && user.Oauth2 {
		return user, nil
	}

	for attempt := 0; attempt < 3; attempt++ {
		user, err = a.DbAuth().CreateUserWithOauth2(db.User{
			Email:    info.Email,
			Username: generatedUsername(info.Email, info.Name),
			Avatar:   info.Picture,
			Oauth2:   true,
		})
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, db.ErrConstraintUnique) {
			return nil, err
		}
	}
	return nil, err
}

// generatedUsername derives a username from the display name, or the email
// local part when the name is empty, plus four random digits.
func generatedUsername(email, name string) string {
	base := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if base == "" {
		base, _, _ = strings.Cut(email, "@")
		base = strings.ToLower(base)
	}
	return base + crypto.RandomString(4, crypto.DigitsAlphabet)
}
