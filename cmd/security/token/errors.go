package token

import "errors"

var (
	// ErrInvalidToken covers every verification failure uniformly:
	// malformed input, wrong key, expired, or missing identity claim.
	ErrInvalidToken = errors.New("invalid token")

	// ErrConfig is returned for an unusable token configuration.
	ErrConfig = errors.New("invalid token config")
)
