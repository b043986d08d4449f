package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

// CreateObligationInput is the DTO for creating a one-off obligation.
type CreateObligationInput struct {
	FirmID        uuid.UUID                 `json:"-"`
	CreatedBy     uuid.UUID                 `json:"-"`
	Title         string                    `json:"title" binding:"required"`
	Category      domain.TemplateCategory   `json:"category" binding:"required"`
	Priority      domain.ObligationPriority `json:"priority"`
	DueDate       time.Time                 `json:"due_date" binding:"required"`
	Billable      bool                      `json:"billable"`
	FixedPrice    float64                   `json:"fixed_price"`
	ClientID      uuid.UUID                 `json:"client_id" binding:"required"`
	AssigneeID    *uuid.UUID                `json:"assignee_id"`
	Collaborators domain.UUIDList           `json:"collaborators"`
	Subtasks      domain.SubtaskList        `json:"subtasks"`
}

// ObligationService defines the obligation workflow contract. Completing
// a billable obligation emits its quotation.
type ObligationService interface {
	Create(ctx context.Context, input *CreateObligationInput) (*domain.Obligation, error)
	GetByID(ctx context.Context, firmID, obligationID uuid.UUID) (*domain.Obligation, error)
	List(ctx context.Context, firmID uuid.UUID, filter port.ObligationFilter, offset, limit int) ([]domain.Obligation, int, error)
	UpdateStatus(ctx context.Context, firmID, obligationID uuid.UUID, status domain.ObligationStatus, actorID uuid.UUID) (*domain.Obligation, error)
	Complete(ctx context.Context, firmID, obligationID uuid.UUID, actorID uuid.UUID) (*domain.Obligation, error)
	SetArchived(ctx context.Context, firmID, obligationID uuid.UUID, archived bool, actorID uuid.UUID) error
}

type obligationService struct {
	obligationRepo port.ObligationRepository
	billingSvc     BillingService
	directory      port.Directory
	dispatcher     port.Dispatcher
}

// NewObligationService creates a new ObligationService implementation.
func NewObligationService(obligationRepo port.ObligationRepository, billingSvc BillingService, directory port.Directory, dispatcher port.Dispatcher) ObligationService {
	return &obligationService{
		obligationRepo: obligationRepo,
		billingSvc:     billingSvc,
		directory:      directory,
		dispatcher:     dispatcher,
	}
}

func (s *obligationService) Create(ctx context.Context, input *CreateObligationInput) (*domain.Obligation, error) {
	if !domain.ValidCategories[input.Category] {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, input.Category)
	}
	if input.ClientID == uuid.Nil {
		return nil, domain.ErrClientRequired
	}
	if input.FixedPrice < 0 {
		return nil, fmt.Errorf("%w: negative fixed price", domain.ErrValidation)
	}
	if _, err := s.directory.GetClient(ctx, input.FirmID, input.ClientID); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	ob := &domain.Obligation{
		ID:            uuid.New(),
		FirmID:        input.FirmID,
		Title:         input.Title,
		Category:      input.Category,
		Priority:      priority,
		Status:        domain.ObligationTodo,
		DueDate:       input.DueDate,
		Billable:      input.Billable,
		FixedPrice:    input.FixedPrice,
		ClientID:      input.ClientID,
		AssigneeID:    input.AssigneeID,
		Collaborators: input.Collaborators,
		Subtasks:      input.Subtasks,
		CreatedBy:     input.CreatedBy,
	}

	if err := s.obligationRepo.Create(ctx, ob); err != nil {
		return nil, fmt.Errorf("creating obligation: %w", err)
	}

	payload := map[string]interface{}{
		"obligation_id": ob.ID,
		"title":         ob.Title,
		"due_date":      ob.DueDate,
	}
	if err := s.dispatcher.Notify(ctx, domain.EventObligationCreated, payload, s.assigneeRecipients(ctx, ob)); err != nil {
		log.Printf("obligationService.Create: notify for obligation %s failed: %v", ob.ID, err)
	}
	if err := s.dispatcher.Broadcast(ctx, "obligation", ob, "created", input.CreatedBy); err != nil {
		log.Printf("obligationService.Create: broadcast for obligation %s failed: %v", ob.ID, err)
	}
	return ob, nil
}

func (s *obligationService) GetByID(ctx context.Context, firmID, obligationID uuid.UUID) (*domain.Obligation, error) {
	return s.obligationRepo.GetByID(ctx, firmID, obligationID)
}

func (s *obligationService) List(ctx context.Context, firmID uuid.UUID, filter port.ObligationFilter, offset, limit int) ([]domain.Obligation, int, error) {
	return s.obligationRepo.List(ctx, firmID, filter, offset, limit)
}

func (s *obligationService) UpdateStatus(ctx context.Context, firmID, obligationID uuid.UUID, status domain.ObligationStatus, actorID uuid.UUID) (*domain.Obligation, error) {
	if !domain.ValidObligationStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	if status == domain.ObligationCompleted {
		return s.Complete(ctx, firmID, obligationID, actorID)
	}

	ob, err := s.obligationRepo.GetByID(ctx, firmID, obligationID)
	if err != nil {
		return nil, err
	}
	if ob.Status == domain.ObligationCancelled {
		return nil, fmt.Errorf("%w: obligation %s is cancelled", domain.ErrInvalidTransition, obligationID)
	}

	ob.Status = status
	if err := s.obligationRepo.Update(ctx, ob); err != nil {
		return nil, err
	}
	return ob, nil
}

// Complete marks an obligation done and, when it is billable, emits its
// quotation. A quote that already exists for the obligation is left
// alone; completion stays idempotent on the billing side.
func (s *obligationService) Complete(ctx context.Context, firmID, obligationID uuid.UUID, actorID uuid.UUID) (*domain.Obligation, error) {
	ob, err := s.obligationRepo.GetByID(ctx, firmID, obligationID)
	if err != nil {
		return nil, err
	}
	if ob.Status == domain.ObligationCancelled {
		return nil, fmt.Errorf("%w: obligation %s is cancelled", domain.ErrInvalidTransition, obligationID)
	}
	if ob.Status == domain.ObligationCompleted {
		return ob, nil
	}

	ob.Status = domain.ObligationCompleted
	if err := s.obligationRepo.Update(ctx, ob); err != nil {
		return nil, err
	}

	if ob.Billable {
		doc, err := s.billingSvc.EmitQuoteForObligation(ctx, ob, actorID)
		switch {
		case errors.Is(err, domain.ErrDuplicateQuote):
			log.Printf("obligationService.Complete: obligation %s already has a live quote, skipping emission", ob.ID)
		case err != nil:
			return nil, fmt.Errorf("emitting quote for obligation %s: %w", ob.ID, err)
		default:
			log.Printf("obligationService.Complete: obligation %s emitted quote %s", ob.ID, doc.ID)
		}
	}

	payload := map[string]interface{}{
		"obligation_id": ob.ID,
		"title":         ob.Title,
		"billable":      ob.Billable,
	}
	if err := s.dispatcher.Notify(ctx, domain.EventObligationCompleted, payload, s.assigneeRecipients(ctx, ob)); err != nil {
		log.Printf("obligationService.Complete: notify for obligation %s failed: %v", ob.ID, err)
	}
	if err := s.dispatcher.Broadcast(ctx, "obligation", ob, "completed", actorID); err != nil {
		log.Printf("obligationService.Complete: broadcast for obligation %s failed: %v", ob.ID, err)
	}

	return ob, nil
}

func (s *obligationService) SetArchived(ctx context.Context, firmID, obligationID uuid.UUID, archived bool, actorID uuid.UUID) error {
	return s.obligationRepo.SetArchived(ctx, firmID, obligationID, archived, actorID)
}

// assigneeRecipients resolves notification recipients for an obligation.
// The firm's own address stands in until per-user email lookup exists.
func (s *obligationService) assigneeRecipients(ctx context.Context, ob *domain.Obligation) []string {
	firm, err := s.directory.GetFirm(ctx, ob.FirmID)
	if err != nil || firm.Email == "" {
		return nil
	}
	return []string{firm.Email}
}
