// Package session mints and verifies the JWT pair that carries a signed-in
// user through the API: a short-lived access token presented on every
// request and a long-lived refresh token used solely to mint new access
// tokens. Cookie transport is the caller's concern.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nidohq/nido/crypto"
)

const (
	// DefaultAccessDuration is the access token lifetime.
	DefaultAccessDuration = 15 * time.Minute
	// DefaultRefreshDuration is the refresh token lifetime.
	DefaultRefreshDuration = 7 * 24 * time.Hour
)

var (
	// ErrTokenExpired is returned when a token failed verification only
	// because its expiry has passed. Callers use this to decide whether a
	// refresh attempt is worthwhile.
	ErrTokenExpired = errors.New("session token expired")

	// ErrTokenInvalid is returned for every other verification failure:
	// bad signature, malformed token, missing subject claim.
	ErrTokenInvalid = errors.New("session token invalid")
)

// TokenPair is the credential set minted at sign-in, signup completion or
// federated login. Both tokens carry the user id as the only payload claim.
type TokenPair struct {
	AccessToken    string
	AccessExpires  time.Time
	RefreshToken   string
	RefreshExpires time.Time
}

// Issuer mints and verifies session tokens. Expiry windows are fixed at
// construction, not configurable per call.
type Issuer struct {
	accessSecret    []byte
	refreshSecret   []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewIssuer creates an Issuer with the given signing secrets. Both secrets
// must satisfy the minimum HMAC key length.
func NewIssuer(accessSecret, refreshSecret []byte, accessDuration, refreshDuration time.Duration) (*Issuer, error) {
	if len(accessSecret) < crypto.MinKeyLength || len(refreshSecret) < crypto.MinKeyLength {
		return nil, crypto.ErrJwtInvalidSecretLength
	}
	if accessDuration == 0 {
		accessDuration = DefaultAccessDuration
	}
	if refreshDuration == 0 {
		refreshDuration = DefaultRefreshDuration
	}
	return &Issuer{
		accessSecret:    accessSecret,
		refreshSecret:   refreshSecret,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
	}, nil
}

// NewTokenPair mints an access/refresh pair bound to the user id.
func (i *Issuer) NewTokenPair(userID string) (TokenPair, error) {
	access, accessExp, err := i.NewAccessToken(userID)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, refreshExp, err := crypto.NewJwt(jwt.MapClaims{crypto.ClaimUserID: userID}, i.refreshSecret, i.refreshDuration)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:    access,
		AccessExpires:  accessExp,
		RefreshToken:   refresh,
		RefreshExpires: refreshExp,
	}, nil
}

// NewAccessToken mints a standalone access token for the user id.
func (i *Issuer) NewAccessToken(userID string) (string, time.Time, error) {
	return crypto.NewJwt(jwt.MapClaims{crypto.ClaimUserID: userID}, i.accessSecret, i.accessDuration)
}

// VerifyAccess checks an access token and returns its subject user id.
// An expired token reports ErrTokenExpired; every other failure reports
// ErrTokenInvalid. The distinction drives the client's silent refresh.
func (i *Issuer) VerifyAccess(token string) (string, error) {
	return verify(token, i.accessSecret)
}

// Refresh verifies a refresh token and mints a new access token for the
// same subject. Any refresh verification failure, expiry included, is
// terminal for the session and reported as ErrTokenInvalid; the caller
// must require a fresh sign-in. The refresh token itself is not rotated.
func (i *Issuer) Refresh(refreshToken string) (string, time.Time, error) {
	userID, err := verify(refreshToken, i.refreshSecret)
	if err != nil {
		return "", time.Time{}, ErrTokenInvalid
	}
	return i.NewAccessToken(userID)
}

func verify(token string, secret []byte) (string, error) {
	claims, err := crypto.ParseJwt(token, secret)
	if err != nil {
		if errors.Is(err, crypto.ErrJwtTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	userID, ok := claims[crypto.ClaimUserID].(string)
	if !ok || userID == "" {
		return "", ErrTokenInvalid
	}
	return userID, nil
}
