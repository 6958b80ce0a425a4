package services

import "errors"

var (
	// ErrValidation means the submitted credentials or profile fields were
	// rejected locally; no request was sent.
	ErrValidation = errors.New("invalid input")
	// ErrAuthInProgress means a register-or-login chain is already running.
	ErrAuthInProgress = errors.New("authentication already in progress")
	// ErrNotSignedIn means the operation needs an own profile and there is none.
	ErrNotSignedIn = errors.New("not signed in")
)
