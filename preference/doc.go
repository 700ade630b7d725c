// Package preference holds the operator's light/dark theme preference and persists
// every change to durable key-value storage.
//
// # Resolution order
//
// [Store.Initial] resolves the starting theme from, in order: the persisted value
// under the store key, the host's dark-mode signal, and the configured default
// (light). When storage is missing or fails, resolution stops at the default.
//
// # Updates
//
// [Store.SetTheme] and [Store.ToggleTheme] persist first, then update the in-memory
// value, then notify subscribers. A failed write leaves memory untouched.
//
// # What this package must NOT do
//
//   - Know about HTTP, cookies, or sessions.
//   - Store anything other than "light" or "dark" under its key.
package preference
