package core

import (
	"context"
)

// Mailer sends the signup verification code. The production implementation
// lives in the mail package; handlers depend on this interface so tests can
// observe and fail sends.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, username, code string) error
}
