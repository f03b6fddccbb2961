// Package password hashes and verifies user passwords with Argon2id.
//
// Hashes are PHC-encoded strings so parameters travel with the hash and old
// hashes keep verifying after cost upgrades. Verification is constant-time
// and refuses hashes whose parameters sit wildly above the configured cost,
// so attacker-supplied hash strings cannot drive pathological memory usage.
package password
