// Package verification implements the email verification code store used
// during signup. Codes are short-lived, single-use and keyed by email; the
// backing store is any TTL-capable cache (ristretto in production), so no
// process-global state is involved and entries expire even if never read.
package verification

import (
	"errors"
	"time"

	"github.com/nidohq/nido/cache"
	"github.com/nidohq/nido/crypto"
)

var (
	// ErrInvalidOrExpiredCode is returned when no code is pending for the
	// email, the submitted code does not match, or the code has expired.
	// The three cases are deliberately indistinguishable to the caller.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired verification code")

	// ErrNotVerified is returned by Verified when the email has no live
	// verified mark, meaning no successful code validation happened within
	// the mark TTL.
	ErrNotVerified = errors.New("email not verified")
)

const (
	// DefaultCodeTTL is how long an issued code stays valid.
	DefaultCodeTTL = 10 * time.Minute
	// DefaultMarkTTL is how long a successful validation authorizes signup.
	DefaultMarkTTL = 10 * time.Minute

	pendingKeyPrefix  = "verification:pending:"
	verifiedKeyPrefix = "verification:verified:"
)

// PendingSignup holds the signup payload submitted with a code request.
// At most one exists per email; issuing a new code overwrites it.
type PendingSignup struct {
	Email     string
	Code      string
	Username  string
	Password  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Store issues and validates verification codes.
//
// State machine per email:
//
//	NoPending -> CodeIssued -> (CodeValidated | Expired | Superseded) -> Consumed
//
// Superseded happens when IssueCode overwrites a live entry (resend).
// Consumed is terminal; the flow restarts at NoPending.
type Store struct {
	cache   cache.Cache[string, any]
	codeTTL time.Duration
	markTTL time.Duration
	now     func() time.Time
}

type Option func(*Store)

// WithTTL overrides the code and verified-mark lifetimes.
func WithTTL(codeTTL, markTTL time.Duration) Option {
	return func(s *Store) {
		s.codeTTL = codeTTL
		s.markTTL = markTTL
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(c cache.Cache[string, any], opts ...Option) *Store {
	s := &Store{
		cache:   c,
		codeTTL: DefaultCodeTTL,
		markTTL: DefaultMarkTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueCode generates a fresh 6-digit code for the email and stores it with
// the signup payload. Any previously issued code for the same email is
// overwritten and therefore invalidated; this is the intended resend
// behavior, not an error.
func (s *Store) IssueCode(email, username, password string) (string, error) {
	now := s.now()
	pending := PendingSignup{
		Email:     email,
		Code:      crypto.VerificationCode(),
		Username:  username,
		Password:  password,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.codeTTL),
	}

	if !s.cache.SetWithTTL(pendingKeyPrefix+email, pending, 1, s.codeTTL) {
		return "", errors.New("verification store rejected entry")
	}

	return pending.Code, nil
}

// ValidateCode checks the submitted code against the pending entry.
// Validation is single-use: on success the pending entry is deleted and a
// verified mark with its own TTL is created, so submitting the same code
// again fails. The expiry deadline is checked explicitly in addition to the
// store TTL, so a not-yet-evicted stale entry is still rejected.
func (s *Store) ValidateCode(email, code string) error {
	v, ok := s.cache.Get(pendingKeyPrefix + email)
	if !ok {
		return ErrInvalidOrExpiredCode
	}
	pending, ok := v.(PendingSignup)
	if !ok {
		return ErrInvalidOrExpiredCode
	}

	if code == "" || pending.Code != code || s.now().After(pending.ExpiresAt) {
		return ErrInvalidOrExpiredCode
	}

	s.cache.Delete(pendingKeyPrefix + email)
	s.cache.SetWithTTL(verifiedKeyPrefix+email, s.now().Add(s.markTTL), 1, s.markTTL)
	return nil
}

// Verified reports whether the email passed code validation within the mark
// TTL. It does not consume the mark; call Consume once the user record has
// been created.
func (s *Store) Verified(email string) error {
	v, ok := s.cache.Get(verifiedKeyPrefix + email)
	if !ok {
		return ErrNotVerified
	}
	expiresAt, ok := v.(time.Time)
	if !ok || s.now().After(expiresAt) {
		return ErrNotVerified
	}
	return nil
}

// Consume removes the verified mark for the email. The mark is single-use
// across the whole flow: once an account is created the verification
// artifact must not authorize a second signup.
func (s *Store) Consume(email string) {
	s.cache.Delete(verifiedKeyPrefix + email)
}

// Invalidate drops all verification state for the email, forcing the flow
// back to the start.
func (s *Store) Invalidate(email string) {
	s.cache.Delete(pendingKeyPrefix + email)
	s.cache.Delete(verifiedKeyPrefix + email)
}
