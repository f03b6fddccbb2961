package auth

import "errors"

var (
	// ErrInvalidCredentials is the single failure for login: unknown email
	// and wrong password are indistinguishable by design.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("duplicate_email")

	// ErrUnauthenticated is the single failure for token resolution:
	// missing, malformed, expired, tampered, and deleted-user cases all
	// look the same to the caller.
	ErrUnauthenticated = errors.New("unauthenticated")
)
