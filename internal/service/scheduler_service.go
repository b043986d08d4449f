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
	"filingdesk/internal/schedule"
)

// GenerationSummary reports the outcome of one scheduler pass. Skipped
// counts templates whose period already has an obligation; Unsupported
// lists templates whose pattern has no generation rule.
type GenerationSummary struct {
	Created     []uuid.UUID `json:"created"`
	Skipped     int         `json:"skipped"`
	Unsupported []uuid.UUID `json:"unsupported"`
}

// SchedulerService generates obligations from active recurring templates.
type SchedulerService interface {
	GenerateRecurring(ctx context.Context, firmID uuid.UUID, asOf time.Time, actorID uuid.UUID) (*GenerationSummary, error)
}

type schedulerService struct {
	templateRepo   port.TemplateRepository
	obligationRepo port.ObligationRepository
	dispatcher     port.Dispatcher
}

// NewSchedulerService creates a new SchedulerService implementation.
func NewSchedulerService(templateRepo port.TemplateRepository, obligationRepo port.ObligationRepository, dispatcher port.Dispatcher) SchedulerService {
	return &schedulerService{
		templateRepo:   templateRepo,
		obligationRepo: obligationRepo,
		dispatcher:     dispatcher,
	}
}

// GenerateRecurring walks every active template of the firm and emits at
// most one obligation per template per period. The pass is idempotent:
// re-running it for the same asOf creates nothing new. A failure on one
// template does not abort the pass.
func (s *schedulerService) GenerateRecurring(ctx context.Context, firmID uuid.UUID, asOf time.Time, actorID uuid.UUID) (*GenerationSummary, error) {
	templates, err := s.templateRepo.ListActiveRecurring(ctx, firmID)
	if err != nil {
		return nil, fmt.Errorf("listing active templates: %w", err)
	}

	summary := &GenerationSummary{Created: []uuid.UUID{}, Unsupported: []uuid.UUID{}}

	for i := range templates {
		tpl := &templates[i]

		period, err := schedule.PeriodFor(tpl.Pattern, asOf)
		if errors.Is(err, domain.ErrPatternNotSupported) {
			summary.Unsupported = append(summary.Unsupported, tpl.ID)
			continue
		}
		if err != nil {
			log.Printf("schedulerService.GenerateRecurring: template %s: resolving period: %v", tpl.ID, err)
			continue
		}

		exists, err := s.obligationRepo.ExistsForTemplatePeriod(ctx, firmID, tpl.ID, period.Key)
		if err != nil {
			log.Printf("schedulerService.GenerateRecurring: template %s: checking period %s: %v", tpl.ID, period.Key, err)
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		due, err := schedule.DueDate(tpl.Pattern, tpl.Category, asOf)
		if err != nil {
			log.Printf("schedulerService.GenerateRecurring: template %s: resolving due date: %v", tpl.ID, err)
			continue
		}

		// Templates without an assignee hand the obligation to whoever
		// runs the pass; a system run without an actor leaves it open.
		assignee := tpl.AssigneeID
		if assignee == nil && actorID != uuid.Nil {
			actor := actorID
			assignee = &actor
		}

		templateID := tpl.ID
		ob := &domain.Obligation{
			ID:          uuid.New(),
			FirmID:      firmID,
			Title:       fmt.Sprintf("%s (%s)", tpl.Title, period.Key),
			Category:    tpl.Category,
			Priority:    domain.PriorityMedium,
			Status:      domain.ObligationTodo,
			DueDate:     due,
			Billable:    tpl.Price > 0,
			FixedPrice:  tpl.Price,
			IsRecurring: true,
			TemplateID:  &templateID,
			PeriodKey:   period.Key,
			ClientID:    tpl.ClientID,
			AssigneeID:  assignee,
			Subtasks:    tpl.Subtasks,
			CreatedBy:   actorID,
		}

		if err := s.obligationRepo.Create(ctx, ob); err != nil {
			// The unique (template_id, period_key) constraint closes the
			// race between the exists check and the insert.
			if errors.Is(err, domain.ErrDuplicateObligation) {
				summary.Skipped++
				continue
			}
			log.Printf("schedulerService.GenerateRecurring: template %s: creating obligation: %v", tpl.ID, err)
			continue
		}

		if err := s.templateRepo.TouchUsage(ctx, firmID, tpl.ID, asOf); err != nil {
			log.Printf("schedulerService.GenerateRecurring: template %s: stamping usage: %v", tpl.ID, err)
		}

		if err := s.dispatcher.Broadcast(ctx, "obligation", ob, "created", actorID); err != nil {
			log.Printf("schedulerService.GenerateRecurring: broadcast for obligation %s failed: %v", ob.ID, err)
		}

		summary.Created = append(summary.Created, ob.ID)
	}

	log.Printf("schedulerService.GenerateRecurring: firm %s asOf %s: created=%d skipped=%d unsupported=%d",
		firmID, asOf.Format("2006-01-02"), len(summary.Created), summary.Skipped, len(summary.Unsupported))

	return summary, nil
}
