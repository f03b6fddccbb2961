// Package api exposes the habit tracker over HTTP.
//
// Handlers are thin: each protected route resolves the caller's identity
// exactly once at the top, then passes the resolved user explicitly into the
// auth and habit layers. Error kinds map to fixed statuses; no handler
// invents its own error semantics.
package api
