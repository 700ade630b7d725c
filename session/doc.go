// Package session provides Redis-backed persistence for admin console sessions and the
// accessors the navigation guard reads them through.
//
// # Binary encoding
//
// Sessions are stored in Redis in a compact binary format with a leading version byte.
// The decoder rejects unknown versions instead of guessing at their layout.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations), the [Session] model and the
// [Accessor] contract. It does NOT decide whether a session grants access; the guard
// package makes that call from the token field alone.
//
// # What this package must NOT do
//
//   - Import goConsole, guard, or jwt (no upward imports).
//   - Validate or parse access tokens.
package session
