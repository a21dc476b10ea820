package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown users and wrong
	// passwords. The message is deliberately identical for the two cases to
	// avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a bearer token is malformed, carries a
	// bad signature or has expired.
	ErrInvalidToken = errors.New("invalid token")

	// ErrPrincipalNotFound is returned when a token subject no longer resolves
	// to an active user. The token itself may still be cryptographically
	// valid; this check is what catches users deleted after issuance.
	ErrPrincipalNotFound = errors.New("principal not resolvable")
)
