package common

// WipeByteArray overwrites b with zeros. Used to drop passwords from memory
// once a workflow no longer needs them. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// AuthorizationValue formats token for the Authorization header.
func AuthorizationValue(token string) string {
	return AuthScheme + " " + token
}
