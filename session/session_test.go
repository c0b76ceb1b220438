package session

import (
	"errors"
	"testing"
	"time"

	"github.com/nidohq/nido/crypto"
)

var (
	testAccessSecret  = []byte("access_secret_32_bytes_long_xxxx")
	testRefreshSecret = []byte("refresh_secret_32_bytes_long_xxx")
)

func newTestIssuer(t *testing.T, accessDuration, refreshDuration time.Duration) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(testAccessSecret, testRefreshSecret, accessDuration, refreshDuration)
	if err != nil {
		t.Fatalf("NewIssuer() error = %v", err)
	}
	return issuer
}

func TestNewIssuerShortSecret(t *testing.T) {
	_, err := NewIssuer([]byte("short"), testRefreshSecret, 0, 0)
	if !errors.Is(err, crypto.ErrJwtInvalidSecretLength) {
		t.Errorf("NewIssuer() error = %v, want %v", err, crypto.ErrJwtInvalidSecretLength)
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t, 0, 0)

	pair, err := issuer.NewTokenPair("user123")
	if err != nil {
		t.Fatalf("NewTokenPair() error = %v", err)
	}

	userID, err := issuer.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess() error = %v", err)
	}
	if userID != "user123" {
		t.Errorf("expected subject user123, got %q", userID)
	}

	if until := time.Until(pair.AccessExpires); until > DefaultAccessDuration || until < DefaultAccessDuration-time.Minute {
		t.Errorf("access expiry %v outside 15 minute window", until)
	}
	if until := time.Until(pair.RefreshExpires); until > DefaultRefreshDuration || until < DefaultRefreshDuration-time.Minute {
		t.Errorf("refresh expiry %v outside 7 day window", until)
	}
}

func TestVerifyAccessFailures(t *testing.T) {
	issuer := newTestIssuer(t, 0, 0)
	expiredIssuer := newTestIssuer(t, -time.Second, 0)

	pair, _ := issuer.NewTokenPair("user123")
	expiredPair, _ := expiredIssuer.NewTokenPair("user123")

	testCases := []struct {
		name      string
		token     string
		wantError error
	}{
		{
			name:      "expired access token",
			token:     expiredPair.AccessToken,
			wantError: ErrTokenExpired,
		},
		{
			name:      "refresh token presented as access token",
			token:     pair.RefreshToken,
			wantError: ErrTokenInvalid,
		},
		{
			name:      "malformed token",
			token:     "malformed.token.string",
			wantError: ErrTokenInvalid,
		},
		{
			name:      "missing token",
			token:     "",
			wantError: ErrTokenInvalid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := issuer.VerifyAccess(tc.token)
			if !errors.Is(err, tc.wantError) {
				t.Errorf("VerifyAccess() error = %v, want %v", err, tc.wantError)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	issuer := newTestIssuer(t, 0, 0)

	pair, err := issuer.NewTokenPair("user123")
	if err != nil {
		t.Fatalf("NewTokenPair() error = %v", err)
	}

	access, _, err := issuer.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	// the fresh access token is bound to the same subject
	userID, err := issuer.VerifyAccess(access)
	if err != nil {
		t.Fatalf("VerifyAccess() on refreshed token error = %v", err)
	}
	if userID != "user123" {
		t.Errorf("expected subject user123, got %q", userID)
	}

	// refresh does not rotate: the same refresh token keeps working
	if _, _, err := issuer.Refresh(pair.RefreshToken); err != nil {
		t.Errorf("second Refresh() error = %v", err)
	}
}

func TestRefreshFailures(t *testing.T) {
	issuer := newTestIssuer(t, 0, 0)
	expiredIssuer := newTestIssuer(t, 0, -time.Second)

	pair, _ := issuer.NewTokenPair("user123")
	expiredPair, _ := expiredIssuer.NewTokenPair("user123")

	testCases := []struct {
		name  string
		token string
	}{
		{name: "expired refresh token", token: expiredPair.RefreshToken},
		{name: "access token presented as refresh token", token: pair.AccessToken},
		{name: "malformed token", token: "garbage"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// every refresh failure is terminal: uniformly ErrTokenInvalid
			_, _, err := issuer.Refresh(tc.token)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Refresh() error = %v, want %v", err, ErrTokenInvalid)
			}
		})
	}
}
