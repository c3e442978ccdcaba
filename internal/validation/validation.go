package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrPasswordLength = errors.New("password must be between 8 and 72 characters")
	ErrNameLength     = errors.New("name must be between 1 and 100 characters")
	ErrBodyEmpty      = errors.New("body must not be empty")
	ErrBodyTooLong    = errors.New("body is too long")
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks an email address for basic validity
func ValidateEmail(email string) error {
	if !emailRegexp.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword checks password length bounds (bcrypt caps input at 72 bytes)
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return ErrPasswordLength
	}
	return nil
}

// ValidateName checks a display name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > 100 {
		return ErrNameLength
	}
	return nil
}

// ValidateBody checks user-authored text (posts, messages) against a rune limit
func ValidateBody(body string, maxRunes int) error {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ErrBodyEmpty
	}
	if utf8.RuneCountInString(trimmed) > maxRunes {
		return ErrBodyTooLong
	}
	return nil
}
