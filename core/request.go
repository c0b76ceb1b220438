package core

import (
	"fmt"
	"net"
	"net/http"
	"net/mail"
	"strings"
)

// ValidateEmail checks if an email address is valid according to RFC 5322.
// Returns nil if valid, or an error describing why the email is invalid.
func ValidateEmail(email string) error {
	_, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	return nil
}

// clientIP extracts the client IP address from the request, handling
// proxies via the configured header.
func (a *App) clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if header := a.Config().Server.ClientIpProxyHeader; header != "" {
		if forwarded := r.Header.Get(header); forwarded != "" {
			// use the first IP if the header carries a list
			parts := strings.Split(forwarded, ",")
			ip = strings.TrimSpace(parts[0])
		}
	}
	return ip
}
