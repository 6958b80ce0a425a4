package models

// Credentials are the email/password pair submitted by the sign-in and
// sign-up forms. They are never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account is the payload returned by the register endpoint.
type Account struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// TokenPair is the login response. Only Access is used by the client.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
