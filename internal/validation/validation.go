package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{2,29}$`)

// Error represents a validation error tied to a form field. Validation
// runs before any storage call and aborts the operation.
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a field validation error.
func IsValidationError(err error) bool {
	_, ok := err.(Error)
	return ok
}

// ValidateUsername checks the sign-in username format. Usernames are
// lower-case and become the local part of the synthetic account email.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return Error{Field: "username", Message: "username is required"}
	}
	if !usernameRegex.MatchString(username) {
		return Error{Field: "username", Message: "username must be 3-30 characters: lower-case letters, digits, dot, dash or underscore"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return Error{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return Error{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks an email address. Empty is allowed; child
// accounts get a synthetic address instead.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if !emailRegex.MatchString(email) {
		return Error{Field: "email", Message: "invalid email address"}
	}
	return nil
}

// ValidateFullName checks an optional display name.
func ValidateFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if len(name) < 2 {
		return Error{Field: "full_name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateDocumentName checks the name of a board, schedule or activity.
func ValidateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return Error{Field: "name", Message: "name is required"}
	}
	return nil
}

// ValidateStars checks a marketplace rating value.
func ValidateStars(stars int) error {
	if stars < 1 || stars > 5 {
		return Error{Field: "stars", Message: "rating must be between 1 and 5 stars"}
	}
	return nil
}
