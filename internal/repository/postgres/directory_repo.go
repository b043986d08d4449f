package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

type directoryRepo struct {
	db *sqlx.DB
}

// NewDirectoryRepo creates a new PostgreSQL-backed Directory.
func NewDirectoryRepo(db *sqlx.DB) port.Directory {
	return &directoryRepo{db: db}
}

func (r *directoryRepo) GetFirm(ctx context.Context, firmID uuid.UUID) (*domain.Firm, error) {
	var firm domain.Firm
	err := r.db.GetContext(ctx, &firm,
		"SELECT * FROM firms WHERE id = $1 AND is_active = TRUE", firmID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFirmNotFound
		}
		return nil, fmt.Errorf("directoryRepo.GetFirm: %w", err)
	}
	return &firm, nil
}

func (r *directoryRepo) GetClient(ctx context.Context, firmID, clientID uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client,
		"SELECT * FROM clients WHERE id = $1 AND firm_id = $2", clientID, firmID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("directoryRepo.GetClient: %w", err)
	}
	return &client, nil
}
