package goConsole

import (
	"io"
	"log/slog"

	"github.com/MrEthical07/goConsole/internal/audit"
)

// Audit event types emitted by [Console].
const (
	AuditGuardRedirect = "guard.redirect"
	AuditThemeChanged  = "theme.changed"
	AuditLogin         = "login"
	AuditLogout        = "logout"
	AuditLogoutAll     = "logout.all"
)

// AuditEvent is one audit record.
type AuditEvent = audit.Event

// AuditSink receives audit events on the dispatcher goroutine.
type AuditSink = audit.Sink

// NoOpSink discards audit events.
type NoOpSink = audit.NoOpSink

// ChannelSink forwards audit events into a buffered channel.
type ChannelSink = audit.ChannelSink

// NewChannelSink returns a [ChannelSink] with the given buffer.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink returns a sink writing one JSON object per line to w.
func NewJSONWriterSink(w io.Writer) AuditSink {
	return audit.NewJSONWriterSink(w)
}

// NewSlogSink returns a sink logging each event through logger.
func NewSlogSink(logger *slog.Logger) AuditSink {
	return audit.NewSlogSink(logger)
}
