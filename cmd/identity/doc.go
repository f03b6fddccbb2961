// Package identity defines the canonical user principal and its persistence
// boundary.
//
// Two implementations of Store exist: Postgres for real deployments and an
// in-memory store for dev mode and tests. Both enforce the same contract:
// emails are unique exactly as stored (no case folding), and the password
// hash travels only through UserAuth, never through User.
package identity
