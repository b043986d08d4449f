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

type billingDocumentRepo struct {
	db *sqlx.DB
}

// NewBillingDocumentRepo creates a new PostgreSQL-backed BillingDocumentRepository.
func NewBillingDocumentRepo(db *sqlx.DB) port.BillingDocumentRepository {
	return &billingDocumentRepo{db: db}
}

func (r *billingDocumentRepo) Create(ctx context.Context, doc *domain.BillingDocument) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.Version = 1

	query := `INSERT INTO billing_documents (
		id, firm_id, kind, status, client_id, obligation_id,
		items, subtotal, discount, tax_amount, total_amount,
		paid_amount, balance_amount, gst, admin_approval, gateway,
		due_date, version, created_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10, $11,
		$12, $13, $14, $15, $16,
		$17, $18, $19, $20, $21
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.FirmID, doc.Kind, doc.Status, doc.ClientID, doc.ObligationID,
		doc.Items, doc.Subtotal, doc.Discount, doc.TaxAmount, doc.TotalAmount,
		doc.PaidAmount, doc.BalanceAmount, doc.GST, doc.AdminApproval, doc.Gateway,
		doc.DueDate, doc.Version, doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		// Partial unique index: one live quotation per obligation.
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "obligation_id") {
			return domain.ErrDuplicateQuote
		}
		return fmt.Errorf("billingDocumentRepo.Create: %w", err)
	}
	return nil
}

func (r *billingDocumentRepo) GetByID(ctx context.Context, firmID, docID uuid.UUID) (*domain.BillingDocument, error) {
	var doc domain.BillingDocument
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM billing_documents WHERE id = $1 AND firm_id = $2", docID, firmID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("billingDocumentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *billingDocumentRepo) GetActiveQuoteByObligation(ctx context.Context, firmID, obligationID uuid.UUID) (*domain.BillingDocument, error) {
	var doc domain.BillingDocument
	err := r.db.GetContext(ctx, &doc,
		`SELECT * FROM billing_documents
		 WHERE firm_id = $1 AND obligation_id = $2 AND kind = $3 AND status NOT IN ($4, $5)
		 ORDER BY created_at DESC LIMIT 1`,
		firmID, obligationID, domain.KindQuotation, domain.StatusCancelled, domain.StatusPaid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("billingDocumentRepo.GetActiveQuoteByObligation: %w", err)
	}
	return &doc, nil
}

func (r *billingDocumentRepo) List(ctx context.Context, firmID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.BillingDocument, int, error) {
	where := "WHERE firm_id = $1"
	args := []interface{}{firmID}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		where += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM billing_documents "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("billingDocumentRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT * FROM billing_documents %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var docs []domain.BillingDocument
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("billingDocumentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *billingDocumentRepo) UpdateVersioned(ctx context.Context, doc *domain.BillingDocument) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE billing_documents SET
			status = $1, items = $2, subtotal = $3, discount = $4,
			tax_amount = $5, total_amount = $6, paid_amount = $7,
			balance_amount = $8, gst = $9, admin_approval = $10,
			gateway = $11, due_date = $12, version = version + 1,
			updated_at = $13
		 WHERE id = $14 AND firm_id = $15 AND version = $16`,
		doc.Status, doc.Items, doc.Subtotal, doc.Discount,
		doc.TaxAmount, doc.TotalAmount, doc.PaidAmount,
		doc.BalanceAmount, doc.GST, doc.AdminApproval,
		doc.Gateway, doc.DueDate,
		doc.UpdatedAt,
		doc.ID, doc.FirmID, doc.Version)
	if err != nil {
		return fmt.Errorf("billingDocumentRepo.UpdateVersioned: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConcurrencyConflict
	}
	doc.Version++
	return nil
}

func (r *billingDocumentRepo) AppendPayment(ctx context.Context, payment *domain.Payment, doc *domain.BillingDocument) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("billingDocumentRepo.AppendPayment begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if payment.RecordedAt.IsZero() {
		payment.RecordedAt = time.Now().UTC()
	}
	// Payments are append-only: inserts here, never updates or deletes.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO document_payments (id, document_id, firm_id, amount, method, reference, recorded_by, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		payment.ID, payment.DocumentID, payment.FirmID, payment.Amount,
		payment.Method, payment.Reference, payment.RecordedBy, payment.RecordedAt)
	if err != nil {
		return fmt.Errorf("billingDocumentRepo.AppendPayment insert: %w", err)
	}

	doc.UpdatedAt = time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`UPDATE billing_documents SET
			status = $1, paid_amount = $2, balance_amount = $3,
			version = version + 1, updated_at = $4
		 WHERE id = $5 AND firm_id = $6 AND version = $7`,
		doc.Status, doc.PaidAmount, doc.BalanceAmount, doc.UpdatedAt,
		doc.ID, doc.FirmID, doc.Version)
	if err != nil {
		return fmt.Errorf("billingDocumentRepo.AppendPayment update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConcurrencyConflict
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("billingDocumentRepo.AppendPayment commit: %w", err)
	}
	doc.Version++
	return nil
}

func (r *billingDocumentRepo) ListPayments(ctx context.Context, firmID, docID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments,
		`SELECT * FROM document_payments WHERE firm_id = $1 AND document_id = $2 ORDER BY recorded_at, id`,
		firmID, docID)
	if err != nil {
		return nil, fmt.Errorf("billingDocumentRepo.ListPayments: %w", err)
	}
	return payments, nil
}
