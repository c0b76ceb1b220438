package mail

import (
	"context"
	"fmt"
	"html"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"
)

// Mailer handles sending emails
type Mailer struct {
	host     string
	port     int
	username string
	password string
	fromName string
	fromAddr string
}

// New creates a new Mailer instance
func New(host string, port int, username, password, fromName, fromAddr string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

// verificationBody renders the HTML body of the code email. The username
// is user-controlled input and must be escaped before interpolation.
func verificationBody(username, code string) string {
	return fmt.Sprintf(`
		<p>Welcome, %s 👋</p>
		<p>Your verification code is:</p>
		<h2>%s</h2>
		<p>This code will expire in 10 minutes.</p>
	`, html.EscapeString(username), code)
}

// SendVerificationCode mails the signup verification code. The send is a
// synchronous SMTP exchange; a delivery failure propagates to the caller so
// the code request can be reported as failed instead of silently succeeding.
func (m *Mailer) SendVerificationCode(ctx context.Context, email, username, code string) error {
	mail := mailyak.New(fmt.Sprintf("%s:%d", m.host, m.port),
		smtp.PlainAuth("", m.username, m.password, m.host))

	mail.To(email)
	mail.From(m.fromAddr)
	mail.FromName(m.fromName)
	mail.Subject("Your verification code")
	mail.HTML().Set(verificationBody(username, code))

	// mailyak has no context support; run the send in a goroutine so the
	// caller's deadline still applies.
	done := make(chan error, 1)
	go func() {
		done <- mail.Send()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send verification email: %w", err)
		}
	}

	return nil
}
