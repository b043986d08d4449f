package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

// CreateTemplateInput is the DTO for creating a recurring template.
type CreateTemplateInput struct {
	FirmID     uuid.UUID                `json:"-"`
	CreatedBy  uuid.UUID                `json:"-"`
	Title      string                   `json:"title" binding:"required"`
	Category   domain.TemplateCategory  `json:"category" binding:"required"`
	Pattern    domain.RecurrencePattern `json:"pattern" binding:"required"`
	AssigneeID *uuid.UUID               `json:"assignee_id"`
	ClientID   uuid.UUID                `json:"client_id" binding:"required"`
	Price      float64                  `json:"price"`
	Subtasks   domain.SubtaskList       `json:"subtasks"`
}

// UpdateTemplateInput is the DTO for updating a recurring template.
type UpdateTemplateInput struct {
	Title      string                   `json:"title"`
	Category   domain.TemplateCategory  `json:"category"`
	Pattern    domain.RecurrencePattern `json:"pattern"`
	AssigneeID *uuid.UUID               `json:"assignee_id"`
	ClientID   uuid.UUID                `json:"client_id"`
	Price      *float64                 `json:"price"`
	Subtasks   *domain.SubtaskList      `json:"subtasks"`
	IsActive   *bool                    `json:"is_active"`
}

// TemplateService defines the recurring template management contract.
type TemplateService interface {
	Create(ctx context.Context, input *CreateTemplateInput) (*domain.RecurringTemplate, error)
	GetByID(ctx context.Context, firmID, templateID uuid.UUID) (*domain.RecurringTemplate, error)
	List(ctx context.Context, firmID uuid.UUID, offset, limit int) ([]domain.RecurringTemplate, int, error)
	Update(ctx context.Context, firmID, templateID uuid.UUID, input *UpdateTemplateInput) (*domain.RecurringTemplate, error)
	Delete(ctx context.Context, firmID, templateID uuid.UUID) error
}

type templateService struct {
	templateRepo port.TemplateRepository
	directory    port.Directory
}

// NewTemplateService creates a new TemplateService implementation.
func NewTemplateService(templateRepo port.TemplateRepository, directory port.Directory) TemplateService {
	return &templateService{templateRepo: templateRepo, directory: directory}
}

func (s *templateService) Create(ctx context.Context, input *CreateTemplateInput) (*domain.RecurringTemplate, error) {
	if !domain.ValidCategories[input.Category] {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, input.Category)
	}
	switch input.Pattern {
	case domain.PatternMonthly, domain.PatternYearly, domain.PatternCustom:
	default:
		return nil, fmt.Errorf("%w: unknown pattern %q", domain.ErrValidation, input.Pattern)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: negative price", domain.ErrValidation)
	}
	if input.ClientID == uuid.Nil {
		return nil, domain.ErrClientRequired
	}
	// Verify the client exists in this firm before binding a template to it.
	if _, err := s.directory.GetClient(ctx, input.FirmID, input.ClientID); err != nil {
		return nil, err
	}

	tpl := &domain.RecurringTemplate{
		ID:         uuid.New(),
		FirmID:     input.FirmID,
		Title:      input.Title,
		Category:   input.Category,
		Pattern:    input.Pattern,
		AssigneeID: input.AssigneeID,
		ClientID:   input.ClientID,
		Price:      input.Price,
		Subtasks:   input.Subtasks,
		IsActive:   true,
		CreatedBy:  input.CreatedBy,
	}

	log.Printf("templateService.Create: creating template %s (%s/%s) for firm %s",
		tpl.ID, tpl.Category, tpl.Pattern, tpl.FirmID)

	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("creating template: %w", err)
	}
	return tpl, nil
}

func (s *templateService) GetByID(ctx context.Context, firmID, templateID uuid.UUID) (*domain.RecurringTemplate, error) {
	return s.templateRepo.GetByID(ctx, firmID, templateID)
}

func (s *templateService) List(ctx context.Context, firmID uuid.UUID, offset, limit int) ([]domain.RecurringTemplate, int, error) {
	return s.templateRepo.ListByFirm(ctx, firmID, offset, limit)
}

func (s *templateService) Update(ctx context.Context, firmID, templateID uuid.UUID, input *UpdateTemplateInput) (*domain.RecurringTemplate, error) {
	tpl, err := s.templateRepo.GetByID(ctx, firmID, templateID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		tpl.Title = input.Title
	}
	if input.Category != "" {
		if !domain.ValidCategories[input.Category] {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, input.Category)
		}
		tpl.Category = input.Category
	}
	if input.Pattern != "" {
		switch input.Pattern {
		case domain.PatternMonthly, domain.PatternYearly, domain.PatternCustom:
			tpl.Pattern = input.Pattern
		default:
			return nil, fmt.Errorf("%w: unknown pattern %q", domain.ErrValidation, input.Pattern)
		}
	}
	if input.AssigneeID != nil {
		tpl.AssigneeID = input.AssigneeID
	}
	if input.ClientID != uuid.Nil {
		if _, err := s.directory.GetClient(ctx, firmID, input.ClientID); err != nil {
			return nil, err
		}
		tpl.ClientID = input.ClientID
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: negative price", domain.ErrValidation)
		}
		tpl.Price = *input.Price
	}
	if input.Subtasks != nil {
		tpl.Subtasks = *input.Subtasks
	}
	if input.IsActive != nil {
		tpl.IsActive = *input.IsActive
	}

	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Delete soft-deletes a template. Obligations already generated from it
// are unaffected.
func (s *templateService) Delete(ctx context.Context, firmID, templateID uuid.UUID) error {
	log.Printf("templateService.Delete: soft-deleting template %s for firm %s", templateID, firmID)
	return s.templateRepo.SoftDelete(ctx, firmID, templateID)
}
