package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

type templateRepo struct {
	db *sqlx.DB
}

// NewTemplateRepo creates a new PostgreSQL-backed TemplateRepository.
func NewTemplateRepo(db *sqlx.DB) port.TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, tpl *domain.RecurringTemplate) error {
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	query := `INSERT INTO recurring_templates (
		id, firm_id, title, category, pattern,
		assignee_id, client_id, price, subtasks,
		usage_count, last_used_at, is_active, is_deleted,
		created_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12, $13,
		$14, $15, $16
	)`

	_, err := r.db.ExecContext(ctx, query,
		tpl.ID, tpl.FirmID, tpl.Title, tpl.Category, tpl.Pattern,
		tpl.AssigneeID, tpl.ClientID, tpl.Price, tpl.Subtasks,
		tpl.UsageCount, tpl.LastUsedAt, tpl.IsActive, tpl.IsDeleted,
		tpl.CreatedBy, tpl.CreatedAt, tpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("templateRepo.Create: %w", err)
	}
	return nil
}

func (r *templateRepo) GetByID(ctx context.Context, firmID, templateID uuid.UUID) (*domain.RecurringTemplate, error) {
	var tpl domain.RecurringTemplate
	err := r.db.GetContext(ctx, &tpl,
		"SELECT * FROM recurring_templates WHERE id = $1 AND firm_id = $2 AND is_deleted = FALSE",
		templateID, firmID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("templateRepo.GetByID: %w", err)
	}
	return &tpl, nil
}

func (r *templateRepo) ListByFirm(ctx context.Context, firmID uuid.UUID, offset, limit int) ([]domain.RecurringTemplate, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM recurring_templates WHERE firm_id = $1 AND is_deleted = FALSE", firmID)
	if err != nil {
		return nil, 0, fmt.Errorf("templateRepo.ListByFirm count: %w", err)
	}

	var tpls []domain.RecurringTemplate
	err = r.db.SelectContext(ctx, &tpls,
		`SELECT * FROM recurring_templates WHERE firm_id = $1 AND is_deleted = FALSE
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		firmID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("templateRepo.ListByFirm: %w", err)
	}
	return tpls, total, nil
}

func (r *templateRepo) ListActiveRecurring(ctx context.Context, firmID uuid.UUID) ([]domain.RecurringTemplate, error) {
	var tpls []domain.RecurringTemplate
	err := r.db.SelectContext(ctx, &tpls,
		`SELECT * FROM recurring_templates
		 WHERE firm_id = $1 AND is_active = TRUE AND is_deleted = FALSE
		 ORDER BY created_at`,
		firmID)
	if err != nil {
		return nil, fmt.Errorf("templateRepo.ListActiveRecurring: %w", err)
	}
	return tpls, nil
}

func (r *templateRepo) Update(ctx context.Context, tpl *domain.RecurringTemplate) error {
	tpl.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE recurring_templates SET
			title = $1, category = $2, pattern = $3, assignee_id = $4,
			client_id = $5, price = $6, subtasks = $7, is_active = $8,
			updated_at = $9
		 WHERE id = $10 AND firm_id = $11 AND is_deleted = FALSE`,
		tpl.Title, tpl.Category, tpl.Pattern, tpl.AssigneeID,
		tpl.ClientID, tpl.Price, tpl.Subtasks, tpl.IsActive,
		tpl.UpdatedAt,
		tpl.ID, tpl.FirmID)
	if err != nil {
		return fmt.Errorf("templateRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepo) SoftDelete(ctx context.Context, firmID, templateID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recurring_templates SET is_deleted = TRUE, is_active = FALSE, updated_at = $1
		 WHERE id = $2 AND firm_id = $3 AND is_deleted = FALSE`,
		time.Now().UTC(), templateID, firmID)
	if err != nil {
		return fmt.Errorf("templateRepo.SoftDelete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepo) TouchUsage(ctx context.Context, firmID, templateID uuid.UUID, usedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recurring_templates SET usage_count = usage_count + 1, last_used_at = $1, updated_at = $1
		 WHERE id = $2 AND firm_id = $3 AND is_deleted = FALSE`,
		usedAt.UTC(), templateID, firmID)
	if err != nil {
		return fmt.Errorf("templateRepo.TouchUsage: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}
