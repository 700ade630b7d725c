// Package goConsole is the server core of an admin console: a navigation guard for
// protected views, a persisted light/dark theme preference, and the login/logout
// flow that creates the sessions the guard reads.
//
// The package is designed for concurrent server workloads: [Console] methods are safe
// to call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goConsole is the public surface. It exposes [Console], [Builder], [Config], and value
// types (MetricsSnapshot, AuditEvent). The contractual pieces live in leaf packages:
// guard decides allow/redirect, preference owns the theme, session owns Redis storage.
// Console wires them together and adds metrics and audit around each call.
//
// # What this package must NOT do
//
//   - Write HTTP responses (the middleware package does that).
//   - Validate access tokens inside CheckAccess; presence is the whole check.
//   - Import middleware or cmd (no import cycles).
package goConsole
