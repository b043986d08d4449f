// Package noop provides a PaymentGateway that fabricates links locally.
// Used in development and tests where no external gateway is reachable.
package noop

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"filingdesk/internal/port"
)

type gateway struct{}

// NewGateway creates a no-op PaymentGateway.
func NewGateway() port.PaymentGateway {
	return &gateway{}
}

func (g *gateway) RequestLink(_ context.Context, req *port.PaymentLinkRequest) *port.PaymentLinkResult {
	linkID := "plink_" + uuid.New().String()[:13]
	log.Printf("noopGateway.RequestLink: document %s amount %.2f -> %s", req.DocumentID, req.Amount, linkID)
	return &port.PaymentLinkResult{
		Success:  true,
		LinkID:   linkID,
		OrderID:  "order_" + uuid.New().String()[:13],
		ShortURL: fmt.Sprintf("https://pay.example.test/%s", linkID),
	}
}
