// Package common contains shared constants and small helpers used across
// photoshare client components.
package common

const (
	// TokenKey is the well-known name under which the session token is
	// persisted. Absence of the key means "not authenticated".
	TokenKey = "localJWT"

	// AuthScheme prefixes the token in the Authorization header.
	AuthScheme = "JWT"

	// DefaultNickName is given to the profile created right after sign-up.
	DefaultNickName = "anonymous"

	// RequestIDHeaderName carries a per-request id on outbound API calls.
	RequestIDHeaderName = "X-Request-ID"
)
