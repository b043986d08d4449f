package port

import (
	"context"

	"github.com/google/uuid"

	"filingdesk/internal/domain"
)

// PaymentLinkRequest carries everything the gateway needs to issue a
// payment link. Document and obligation IDs ride along as correlation
// notes so the external system can deduplicate retries.
type PaymentLinkRequest struct {
	DocumentID    uuid.UUID
	ObligationID  *uuid.UUID
	Amount        float64
	Currency      string
	Description   string
	CustomerName  string
	CustomerEmail string
}

// PaymentLinkResult is the outcome of a link request. Failures are data,
// not errors: callers inspect Success and ErrorKind and must never treat
// a failed link request as fatal to the surrounding workflow.
type PaymentLinkResult struct {
	Success  bool
	LinkID   string
	OrderID  string
	ShortURL string

	ErrorKind domain.GatewayErrorKind
	Message   string
}

// PaymentGateway issues payment links against the external payment
// service. Implementations bound the call with a hard timeout and are
// safely re-invokable for the same document.
type PaymentGateway interface {
	RequestLink(ctx context.Context, req *PaymentLinkRequest) *PaymentLinkResult
}
