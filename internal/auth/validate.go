package auth

import (
	"regexp"

	"expensetracker/internal/core"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterRe   = regexp.MustCompile(`[A-Za-z]`)
	digitRe    = regexp.MustCompile(`\d`)
)

// ValidateUsername accepts 3-20 characters of letters, digits, and underscore.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return core.ErrInvalidUsername
	}
	return nil
}

// ValidateEmail checks the address against a simple pattern.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return core.ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 6 characters with
// at least one letter and one digit. Checks run in that order so the first
// violated rule determines the error.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return core.ErrPasswordTooShort
	}
	if !letterRe.MatchString(password) {
		return core.ErrPasswordNoLetter
	}
	if !digitRe.MatchString(password) {
		return core.ErrPasswordNoDigit
	}
	return nil
}
