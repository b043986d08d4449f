package port

import (
	"context"

	"github.com/google/uuid"

	"filingdesk/internal/domain"
)

// DocumentFilter narrows billing document listings.
type DocumentFilter struct {
	Kind     domain.DocumentKind
	Status   domain.DocumentStatus
	ClientID *uuid.UUID
}

// BillingDocumentRepository defines the contract for billing document
// persistence. Mutations are guarded by optimistic versioning: updates
// match on (id, version) and must surface domain.ErrConcurrencyConflict
// when the row has moved on. Create must surface domain.ErrDuplicateQuote
// when the single-live-quote-per-obligation constraint rejects the row.
type BillingDocumentRepository interface {
	Create(ctx context.Context, doc *domain.BillingDocument) error
	GetByID(ctx context.Context, firmID, docID uuid.UUID) (*domain.BillingDocument, error)
	GetActiveQuoteByObligation(ctx context.Context, firmID, obligationID uuid.UUID) (*domain.BillingDocument, error)
	List(ctx context.Context, firmID uuid.UUID, filter DocumentFilter, offset, limit int) ([]domain.BillingDocument, int, error)
	// UpdateVersioned persists doc where the stored version still matches
	// doc.Version, bumping it by one. On success doc.Version reflects the
	// new version.
	UpdateVersioned(ctx context.Context, doc *domain.BillingDocument) error
	// AppendPayment atomically inserts the payment row and applies the
	// already-recomputed paid/balance/status on doc under the same
	// version check. Payments are append-only; there is no update or
	// delete counterpart.
	AppendPayment(ctx context.Context, payment *domain.Payment, doc *domain.BillingDocument) error
	ListPayments(ctx context.Context, firmID, docID uuid.UUID) ([]domain.Payment, error)
}
