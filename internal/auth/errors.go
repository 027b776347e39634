package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for any failed login, regardless of
	// which part of the credential pair was wrong.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken indicates the token failed verification.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrCredentialNotFound is returned by credential stores when no
	// administrator record has been provisioned.
	ErrCredentialNotFound = errors.New("auth: credential not found")
)
