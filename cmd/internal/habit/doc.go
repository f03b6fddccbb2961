// Package habit owns the habit and log resources and the ownership scoping
// applied to every access.
//
// Scoping model: habits carry the owner directly, so habit queries filter on
// owner_id. Logs do not carry an owner field at all; their effective owner is
// derived by joining through the parent habit on every query. Not duplicating
// the owner onto logs means the two can never drift apart.
//
// A resource that exists but belongs to someone else is reported exactly like
// a resource that does not exist: ErrNotFound. Callers can never confirm the
// existence of another user's data.
package habit
