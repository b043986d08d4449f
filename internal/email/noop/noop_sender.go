// Package noop provides an EmailSender that only logs. Used in
// development and tests where no email provider is configured.
package noop

import (
	"context"
	"log"

	"filingdesk/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) Send(_ context.Context, toEmail, subject, _, _ string) error {
	log.Printf("noopSender.Send: to=%s subject=%q", toEmail, subject)
	return nil
}
