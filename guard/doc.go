// Package guard decides whether a navigation into a protected admin view may proceed.
//
// [Guard.CheckAccess] reads the current session through an injected
// [session.Accessor] and returns an [Outcome]: allow, or redirect to the login path.
// Presence of a non-empty access token is the whole check; token contents, format and
// expiry are the session store's concern.
//
// # What this package must NOT do
//
//   - Write HTTP responses (the middleware package maps outcomes onto HTTP).
//   - Mutate or refresh sessions.
//   - Return errors: every evaluation yields exactly one outcome.
package guard
