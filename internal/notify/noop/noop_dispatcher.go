// Package noop provides a Dispatcher that only logs. Used in development
// and tests where no email or broker backends are configured.
package noop

import (
	"context"
	"log"

	"github.com/google/uuid"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

type noopDispatcher struct{}

// NewDispatcher creates a Dispatcher that logs instead of delivering.
func NewDispatcher() port.Dispatcher {
	return &noopDispatcher{}
}

func (d *noopDispatcher) Notify(_ context.Context, kind domain.EventKind, _ map[string]interface{}, recipients []string) error {
	log.Printf("noopDispatcher.Notify: %s to %d recipients", kind, len(recipients))
	return nil
}

func (d *noopDispatcher) Broadcast(_ context.Context, entityKind string, _ interface{}, action string, _ uuid.UUID) error {
	log.Printf("noopDispatcher.Broadcast: %s.%s", entityKind, action)
	return nil
}
