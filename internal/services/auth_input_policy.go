package services

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrNameTooShort           = errors.New("name must be at least 3 characters")
	ErrEmailInvalid           = errors.New("email address is invalid")
)

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeAuthName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if len([]rune(name)) < 3 {
		return "", ErrNameTooShort
	}
	return name, nil
}

func NormalizeCredentialsInput(nameRaw string, passwordRaw string) (string, string, error) {
	name := strings.TrimSpace(nameRaw)
	password := strings.TrimSpace(passwordRaw)
	if name == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return name, password, nil
}
