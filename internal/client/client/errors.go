package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable covers transport failures and 5xx responses.
	ErrUnavailable = errors.New("server unavailable")
	// ErrAuthRejected is a 4xx answer to register or login: bad
	// credentials or an account that already exists.
	ErrAuthRejected = errors.New("credentials rejected")
	// ErrUnauthorized is a 401/403 on an authenticated call, or a call made
	// without a stored token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRejected is any other 4xx.
	ErrRejected = errors.New("request rejected")
	// ErrProfileNotFound means the my-profile endpoint returned no rows.
	ErrProfileNotFound = errors.New("profile not found")
)

// APIError describes a failed call. It unwraps to one of the sentinels above
// and, for transport failures, to the underlying cause.
type APIError struct {
	Op         string
	StatusCode int
	Body       string

	kind  error
	cause error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.kind, e.cause)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s: %v (status %d)", e.Op, e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v (status %d): %s", e.Op, e.kind, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func transportError(op string, cause error) *APIError {
	return &APIError{Op: op, kind: ErrUnavailable, cause: cause}
}

func statusError(op string, code int, body string) *APIError {
	return &APIError{Op: op, StatusCode: code, Body: body, kind: mapStatus(op, code)}
}

// mapStatus classifies a non-2xx status for op.
func mapStatus(op string, code int) error {
	switch {
	case code >= http.StatusInternalServerError:
		return ErrUnavailable
	case (op == OpRegister || op == OpLogin) && code >= http.StatusBadRequest:
		return ErrAuthRejected
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return ErrRejected
	}
}
