package goConsole

import (
	"context"
	"errors"

	"github.com/MrEthical07/goConsole/preference"
	"github.com/MrEthical07/goConsole/session"
)

// AuditErrorCode is the stable error label recorded on failed audit events.
type AuditErrorCode string

const (
	auditErrInvalidCredentials    AuditErrorCode = "invalid_credentials"
	auditErrNoSession             AuditErrorCode = "no_session"
	auditErrRateLimited           AuditErrorCode = "rate_limited"
	auditErrSessionCreationFailed AuditErrorCode = "session_creation_failed"
	auditErrSessionInvalidation   AuditErrorCode = "session_invalidation_failed"
	auditErrStorageUnavailable    AuditErrorCode = "storage_unavailable"
	auditErrInvalidTheme          AuditErrorCode = "invalid_theme"
	auditErrUnavailable           AuditErrorCode = "unavailable"
	auditErrInternal              AuditErrorCode = "internal_error"
)

func (c *Console) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	sessionID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if c == nil || c.audit == nil {
		return
	}
	if sessionID == "" {
		sessionID, _ = session.IDFromContext(ctx)
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: c.now().UTC(),
		EventType: eventType,
		UserID:    userID,
		SessionID: sessionID,
		Path:      requestPathFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	c.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrLoginRateLimited):
		return auditErrRateLimited
	case errors.Is(err, errNoSession):
		return auditErrNoSession
	case errors.Is(err, ErrSessionCreationFailed):
		return auditErrSessionCreationFailed
	case errors.Is(err, ErrSessionInvalidationFailed):
		return auditErrSessionInvalidation
	case errors.Is(err, preference.ErrStorageUnavailable):
		return auditErrStorageUnavailable
	case errors.Is(err, preference.ErrInvalidTheme):
		return auditErrInvalidTheme
	case errors.Is(err, session.ErrRedisUnavailable),
		errors.Is(err, ErrSessionsDisabled),
		errors.Is(err, ErrLoginDisabled):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}

// errNoSession labels guard redirects in audit events; it is never returned.
var errNoSession = errors.New("no session")
