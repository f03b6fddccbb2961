// Package auth composes the credential store, token service, and identity
// store into the three operations every handler consumes: Register,
// Authenticate, and Resolve.
//
// Failure shapes are deliberately uniform. Authenticate never reveals
// whether the email or the password was wrong, and Resolve never reveals
// whether a token was malformed, expired, or pointed at a deleted user.
package auth
