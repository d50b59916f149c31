package services

import (
	"errors"
	"fmt"
	"unicode"
)

const MinPasswordLength = 8

var ErrWeakPassword = errors.New("weak password")

// ValidatePasswordStrength requires MinPasswordLength runes with at least one
// upper case letter, one lower case letter and one digit.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, MinPasswordLength)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: needs an upper case letter", ErrWeakPassword)
	case !hasLower:
		return fmt.Errorf("%w: needs a lower case letter", ErrWeakPassword)
	case !hasDigit:
		return fmt.Errorf("%w: needs a digit", ErrWeakPassword)
	}
	return nil
}
