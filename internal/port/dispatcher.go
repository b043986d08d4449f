package port

import (
	"context"

	"github.com/google/uuid"

	"filingdesk/internal/domain"
)

// Dispatcher is the notification/broadcast sink consumed by the domain
// services. Both operations are best-effort: callers log and discard any
// returned error, and no domain transition may fail because of one.
type Dispatcher interface {
	Notify(ctx context.Context, kind domain.EventKind, payload map[string]interface{}, recipients []string) error
	Broadcast(ctx context.Context, entityKind string, entity interface{}, action string, actorID uuid.UUID) error
}

// EmailSender delivers a single notification email.
type EmailSender interface {
	Send(ctx context.Context, toEmail, subject, textBody, htmlBody string) error
}
