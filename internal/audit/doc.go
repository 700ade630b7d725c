// Package audit relays console audit events to a sink off the request path.
//
// # Components
//
//   - [Sink] receives events (channel, JSON lines, slog, no-op).
//   - [Dispatcher] buffers events and delivers them from one goroutine, dropping or
//     blocking when the buffer is full.
//   - [Event] is the record: type, operator, session, path, outcome, metadata.
//
// The package decides nothing about which events exist; the console emits them.
package audit
