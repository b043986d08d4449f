package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

type obligationRepo struct {
	db *sqlx.DB
}

// NewObligationRepo creates a new PostgreSQL-backed ObligationRepository.
func NewObligationRepo(db *sqlx.DB) port.ObligationRepository {
	return &obligationRepo{db: db}
}

func (r *obligationRepo) Create(ctx context.Context, ob *domain.Obligation) error {
	now := time.Now().UTC()
	ob.CreatedAt = now
	ob.UpdatedAt = now

	query := `INSERT INTO obligations (
		id, firm_id, title, category, priority, status,
		due_date, billable, fixed_price, is_recurring,
		template_id, period_key, client_id, assignee_id,
		collaborators, subtasks, archived, archived_at, archived_by,
		created_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13, $14,
		$15, $16, $17, $18, $19,
		$20, $21, $22
	)`

	_, err := r.db.ExecContext(ctx, query,
		ob.ID, ob.FirmID, ob.Title, ob.Category, ob.Priority, ob.Status,
		ob.DueDate, ob.Billable, ob.FixedPrice, ob.IsRecurring,
		ob.TemplateID, ob.PeriodKey, ob.ClientID, ob.AssigneeID,
		ob.Collaborators, ob.Subtasks, ob.Archived, ob.ArchivedAt, ob.ArchivedBy,
		ob.CreatedBy, ob.CreatedAt, ob.UpdatedAt)
	if err != nil {
		// The (template_id, period_key) unique index is the storage-level
		// idempotency guard for scheduler runs.
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "period_key") {
			return domain.ErrDuplicateObligation
		}
		return fmt.Errorf("obligationRepo.Create: %w", err)
	}
	return nil
}

func (r *obligationRepo) GetByID(ctx context.Context, firmID, obligationID uuid.UUID) (*domain.Obligation, error) {
	var ob domain.Obligation
	err := r.db.GetContext(ctx, &ob,
		"SELECT * FROM obligations WHERE id = $1 AND firm_id = $2", obligationID, firmID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrObligationNotFound
		}
		return nil, fmt.Errorf("obligationRepo.GetByID: %w", err)
	}
	return &ob, nil
}

func (r *obligationRepo) List(ctx context.Context, firmID uuid.UUID, filter port.ObligationFilter, offset, limit int) ([]domain.Obligation, int, error) {
	where := "WHERE firm_id = $1"
	args := []interface{}{firmID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		where += fmt.Sprintf(" AND assignee_id = $%d", len(args))
	}
	if filter.TemplateID != nil {
		args = append(args, *filter.TemplateID)
		where += fmt.Sprintf(" AND template_id = $%d", len(args))
	}
	if filter.Archived != nil {
		args = append(args, *filter.Archived)
		where += fmt.Sprintf(" AND archived = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM obligations "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("obligationRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT * FROM obligations %s ORDER BY due_date, created_at LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var obs []domain.Obligation
	if err := r.db.SelectContext(ctx, &obs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("obligationRepo.List: %w", err)
	}
	return obs, total, nil
}

func (r *obligationRepo) ExistsForTemplatePeriod(ctx context.Context, firmID, templateID uuid.UUID, periodKey string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM obligations
		 WHERE firm_id = $1 AND template_id = $2 AND period_key = $3`,
		firmID, templateID, periodKey)
	if err != nil {
		return false, fmt.Errorf("obligationRepo.ExistsForTemplatePeriod: %w", err)
	}
	return count > 0, nil
}

func (r *obligationRepo) Update(ctx context.Context, ob *domain.Obligation) error {
	ob.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE obligations SET
			title = $1, category = $2, priority = $3, status = $4,
			due_date = $5, billable = $6, fixed_price = $7,
			assignee_id = $8, collaborators = $9, subtasks = $10,
			updated_at = $11
		 WHERE id = $12 AND firm_id = $13`,
		ob.Title, ob.Category, ob.Priority, ob.Status,
		ob.DueDate, ob.Billable, ob.FixedPrice,
		ob.AssigneeID, ob.Collaborators, ob.Subtasks,
		ob.UpdatedAt,
		ob.ID, ob.FirmID)
	if err != nil {
		return fmt.Errorf("obligationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrObligationNotFound
	}
	return nil
}

func (r *obligationRepo) SetArchived(ctx context.Context, firmID, obligationID uuid.UUID, archived bool, actorID uuid.UUID) error {
	now := time.Now().UTC()
	var archivedAt *time.Time
	var archivedBy *uuid.UUID
	if archived {
		archivedAt = &now
		archivedBy = &actorID
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE obligations SET archived = $1, archived_at = $2, archived_by = $3, updated_at = $4
		 WHERE id = $5 AND firm_id = $6`,
		archived, archivedAt, archivedBy, now, obligationID, firmID)
	if err != nil {
		return fmt.Errorf("obligationRepo.SetArchived: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrObligationNotFound
	}
	return nil
}
