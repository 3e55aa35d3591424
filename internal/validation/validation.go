// Package validation holds input validation rules for account fields.
package validation

import (
	"errors"
	"regexp"
)

var (
	nicknameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateNickname checks length and allowed characters.
func ValidateNickname(nickname string) error {
	if !nicknameRe.MatchString(nickname) {
		return errors.New("nickname must be 3-30 characters of letters, digits, or underscores")
	}
	return nil
}

// ValidateEmail checks the address has a plausible shape.
func ValidateEmail(email string) error {
	if len(email) > 254 || !emailRe.MatchString(email) {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum length. Strength beyond length is
// the user's problem; the hash cost is the real defense.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return errors.New("password must be at most 72 characters")
	}
	return nil
}
