package services

import (
	"errors"
	"unicode"
)

var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordNeedsDigit = errors.New("password must contain at least one digit")
	ErrPasswordNeedsUpper = errors.New("password must contain at least one uppercase letter")
)

func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return ErrPasswordTooShort
	}

	hasDigit := false
	hasUpper := false
	for _, char := range password {
		switch {
		case unicode.IsDigit(char):
			hasDigit = true
		case unicode.IsUpper(char):
			hasUpper = true
		}
	}

	if !hasDigit {
		return ErrPasswordNeedsDigit
	}
	if !hasUpper {
		return ErrPasswordNeedsUpper
	}
	return nil
}
