package port

import (
	"context"

	"github.com/google/uuid"

	"filingdesk/internal/domain"
)

// Directory resolves firm and client registration details. The billing
// service uses the two state codes to decide the interstate tax split.
type Directory interface {
	GetFirm(ctx context.Context, firmID uuid.UUID) (*domain.Firm, error)
	GetClient(ctx context.Context, firmID, clientID uuid.UUID) (*domain.Client, error)
}
