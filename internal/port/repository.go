package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"filingdesk/internal/domain"
)

// TemplateRepository defines the contract for recurring template
// persistence. All query methods include firmID to enforce firm isolation
// at the data layer. Templates are soft-deleted only.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *domain.RecurringTemplate) error
	GetByID(ctx context.Context, firmID, templateID uuid.UUID) (*domain.RecurringTemplate, error)
	ListByFirm(ctx context.Context, firmID uuid.UUID, offset, limit int) ([]domain.RecurringTemplate, int, error)
	ListActiveRecurring(ctx context.Context, firmID uuid.UUID) ([]domain.RecurringTemplate, error)
	Update(ctx context.Context, tpl *domain.RecurringTemplate) error
	SoftDelete(ctx context.Context, firmID, templateID uuid.UUID) error
	TouchUsage(ctx context.Context, firmID, templateID uuid.UUID, usedAt time.Time) error
}

// ObligationFilter narrows obligation listings.
type ObligationFilter struct {
	Status     domain.ObligationStatus
	AssigneeID *uuid.UUID
	TemplateID *uuid.UUID
	Archived   *bool
}

// ObligationRepository defines the contract for obligation persistence.
// Create must surface domain.ErrDuplicateObligation when the storage-level
// (template_id, period_key) uniqueness constraint rejects the row.
type ObligationRepository interface {
	Create(ctx context.Context, ob *domain.Obligation) error
	GetByID(ctx context.Context, firmID, obligationID uuid.UUID) (*domain.Obligation, error)
	List(ctx context.Context, firmID uuid.UUID, filter ObligationFilter, offset, limit int) ([]domain.Obligation, int, error)
	ExistsForTemplatePeriod(ctx context.Context, firmID, templateID uuid.UUID, periodKey string) (bool, error)
	Update(ctx context.Context, ob *domain.Obligation) error
	SetArchived(ctx context.Context, firmID, obligationID uuid.UUID, archived bool, actorID uuid.UUID) error
}
