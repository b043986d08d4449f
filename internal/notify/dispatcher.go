// Package notify implements the notification/broadcast dispatcher: event
// emails through an EmailSender and entity broadcasts through an AMQP
// publisher. Both paths are best-effort; callers discard errors.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

// Publisher pushes a broadcast message onto the message broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type dispatcher struct {
	email     port.EmailSender
	publisher Publisher
}

// NewDispatcher creates a Dispatcher over an email sender and an optional
// broker publisher. A nil publisher disables broadcasts.
func NewDispatcher(email port.EmailSender, publisher Publisher) port.Dispatcher {
	return &dispatcher{email: email, publisher: publisher}
}

// subjects maps event kinds to email subject lines.
var subjects = map[domain.EventKind]string{
	domain.EventObligationCreated:   "New obligation assigned",
	domain.EventObligationCompleted: "Obligation completed",
	domain.EventDocumentCreated:     "New billing document",
	domain.EventDocumentTransition:  "Billing document updated",
	domain.EventPaymentRecorded:     "Payment received",
}

func (d *dispatcher) Notify(ctx context.Context, kind domain.EventKind, payload map[string]interface{}, recipients []string) error {
	subject, ok := subjects[kind]
	if !ok {
		subject = string(kind)
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("notify: encoding payload: %w", err)
	}
	text := fmt.Sprintf("Event: %s\n\n%s\n", kind, body)

	var firstErr error
	for _, to := range recipients {
		if to == "" {
			continue
		}
		if err := d.email.Send(ctx, to, subject, text, ""); err != nil {
			log.Printf("dispatcher.Notify: send to %s failed: %v", to, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// broadcastEnvelope is the wire shape of a broadcast message.
type broadcastEnvelope struct {
	EntityKind string      `json:"entity_kind"`
	Action     string      `json:"action"`
	ActorID    uuid.UUID   `json:"actor_id"`
	At         time.Time   `json:"at"`
	Entity     interface{} `json:"entity"`
}

func (d *dispatcher) Broadcast(ctx context.Context, entityKind string, entity interface{}, action string, actorID uuid.UUID) error {
	if d.publisher == nil {
		return nil
	}

	body, err := json.Marshal(broadcastEnvelope{
		EntityKind: entityKind,
		Action:     action,
		ActorID:    actorID,
		At:         time.Now().UTC(),
		Entity:     entity,
	})
	if err != nil {
		return fmt.Errorf("broadcast: encoding envelope: %w", err)
	}

	routingKey := entityKind + "." + action
	if err := d.publisher.Publish(ctx, routingKey, body); err != nil {
		return fmt.Errorf("broadcast: publishing %s: %w", routingKey, err)
	}
	return nil
}
