package services

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password the sign-in and sign-up forms accept.
const MinPasswordLength = 4

// ValidateCredentials checks an email/password pair before anything is sent.
// The email must be a bare address (no display name).
func ValidateCredentials(email string, password []byte) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q is not a valid email", ErrValidation, email)
	}
	if len(password) == 0 {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if utf8.RuneCount(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	return nil
}

// ValidateNickName rejects blank nicknames.
func ValidateNickName(nickName string) error {
	if strings.TrimSpace(nickName) == "" {
		return fmt.Errorf("%w: nickname is required", ErrValidation)
	}
	return nil
}
