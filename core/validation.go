package core

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
)

const MimeTypeJSON = "application/json"

// Validator defines an interface for request validation operations
type Validator interface {
	// ContentType checks if the request's Content-Type matches the allowed type
	ContentType(r *http.Request, allowedType string) (jsonResponse, error)
}

// DefaultValidator implements the Validator interface
type DefaultValidator struct{}

// NewValidator creates a new DefaultValidator instance
func NewValidator() Validator {
	return &DefaultValidator{}
}

// ContentType checks if the request's Content-Type matches the allowed type.
// Uses http.StatusUnsupportedMediaType (415) for invalid content types as
// per HTTP spec. The returned error message stays generic.
func (v *DefaultValidator) ContentType(r *http.Request, allowedType string) (jsonResponse, error) {
	errInvalidType := errors.New("invalid content type")
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return errorInvalidContentType, errInvalidType
	}

	// Content-Type may include parameters, e.g. "application/json; charset=utf-8"
	mediaType := strings.Split(contentType, ";")[0]
	mediaType = strings.TrimSpace(mediaType)

	if mediaType != allowedType {
		return errorInvalidContentType, errInvalidType
	}

	return jsonResponse{}, nil
}

// validUsername reports whether a username satisfies the policy: at least
// 3 characters after trimming.
func validUsername(username string) bool {
	return len(strings.TrimSpace(username)) >= 3
}

// validPassword reports whether a signup password satisfies the policy: at
// least 8 characters with one letter, one digit and one special character.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}
