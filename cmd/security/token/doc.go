// Package token issues and verifies the bearer tokens that carry a user
// identity between requests.
//
// Tokens are PASETO v4.local: authenticated symmetric encryption under a
// single process-wide key shared by issuance and verification. They are
// stateless and carry their own expiry; there is no server-side block list,
// so a token stays valid until its TTL runs out.
//
// Every verification failure (malformed structure, bad key, expiry, missing
// claim) surfaces as the same ErrInvalidToken so callers cannot be used as
// an oracle for which check failed.
package token
