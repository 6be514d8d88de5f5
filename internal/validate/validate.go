// Package validate checks auth request fields and reports issues keyed by
// field name, ready to embed in a validation error response.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 8
)

var (
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Registration validates a registration payload. It returns nil when every
// field is acceptable.
func Registration(email string, username string, pass string) map[string]string {
	details := map[string]string{}

	if issue := Email(email); issue != "" {
		details["email"] = issue
	}
	if issue := Username(username); issue != "" {
		details["username"] = issue
	}
	if issue := Password(pass); issue != "" {
		details["password"] = issue
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// Credentials checks that a login payload carries both fields. Format rules
// are deliberately not applied here; a malformed email is simply a login
// that will not match.
func Credentials(email string, pass string) map[string]string {
	details := map[string]string{}

	if strings.TrimSpace(email) == "" {
		details["email"] = "email is required"
	}
	if pass == "" {
		details["password"] = "password is required"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

func Email(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "email is required"
	}
	if !emailRe.MatchString(email) {
		return "email must be a valid address"
	}
	return ""
}

func Username(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return "username is required"
	}
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return "username must be between 3 and 30 characters"
	}
	if !usernameRe.MatchString(username) {
		return "username may only contain letters, digits, and underscores"
	}
	return ""
}

func Password(pass string) string {
	if pass == "" {
		return "password is required"
	}
	if len(pass) < passwordMinLen {
		return "password must be at least 8 characters"
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range pass {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case !hasLower:
		return "password must contain a lowercase letter"
	case !hasUpper:
		return "password must contain an uppercase letter"
	case !hasDigit:
		return "password must contain a digit"
	}

	return ""
}
