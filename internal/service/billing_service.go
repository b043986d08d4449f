package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"filingdesk/internal/billing"
	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

// CreateDocumentInput is the DTO for creating a billing document.
type CreateDocumentInput struct {
	FirmID       uuid.UUID           `json:"-"`
	CreatedBy    uuid.UUID           `json:"-"`
	Kind         domain.DocumentKind `json:"kind" binding:"required"`
	ClientID     uuid.UUID           `json:"client_id" binding:"required"`
	ObligationID *uuid.UUID          `json:"obligation_id"`
	Items        []domain.LineItem   `json:"items"`
	Discount     domain.Discount     `json:"discount"`
	Subtotal     *float64            `json:"subtotal"`
	TaxAmount    *float64            `json:"tax_amount"`
	TotalAmount  *float64            `json:"total_amount"`
	DueDate      *time.Time          `json:"due_date"`
}

// RecordPaymentInput is the DTO for recording a payment against a document.
type RecordPaymentInput struct {
	Amount     float64              `json:"amount" binding:"required"`
	Method     domain.PaymentMethod `json:"method" binding:"required"`
	Reference  string               `json:"reference"`
	RecordedBy uuid.UUID            `json:"-"`
}

// BillingService defines the billing document workflow contract: document
// creation, the status state machine, payment recording, and payment
// link issuance.
type BillingService interface {
	CreateDocument(ctx context.Context, input *CreateDocumentInput) (*domain.BillingDocument, error)
	GetByID(ctx context.Context, firmID, docID uuid.UUID) (*domain.BillingDocument, error)
	List(ctx context.Context, firmID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.BillingDocument, int, error)
	ListPayments(ctx context.Context, firmID, docID uuid.UUID) ([]domain.Payment, error)
	RecordPayment(ctx context.Context, firmID, docID uuid.UUID, input *RecordPaymentInput) (*domain.BillingDocument, error)
	Transition(ctx context.Context, firmID, docID uuid.UUID, target domain.DocumentStatus, actorID uuid.UUID) (*domain.BillingDocument, error)
	RequestPaymentLink(ctx context.Context, firmID, docID uuid.UUID) (*port.PaymentLinkResult, error)
	EmitQuoteForObligation(ctx context.Context, ob *domain.Obligation, actorID uuid.UUID) (*domain.BillingDocument, error)
}

type billingService struct {
	docRepo    port.BillingDocumentRepository
	directory  port.Directory
	gateway    port.PaymentGateway
	dispatcher port.Dispatcher
}

// NewBillingService creates a new BillingService implementation.
func NewBillingService(docRepo port.BillingDocumentRepository, directory port.Directory, gateway port.PaymentGateway, dispatcher port.Dispatcher) BillingService {
	return &billingService{
		docRepo:    docRepo,
		directory:  directory,
		gateway:    gateway,
		dispatcher: dispatcher,
	}
}

func (s *billingService) CreateDocument(ctx context.Context, input *CreateDocumentInput) (*domain.BillingDocument, error) {
	switch input.Kind {
	case domain.KindQuotation, domain.KindInvoice, domain.KindProforma:
	default:
		return nil, fmt.Errorf("%w: unknown document kind %q", domain.ErrValidation, input.Kind)
	}
	if input.ClientID == uuid.Nil {
		return nil, domain.ErrClientRequired
	}

	firm, err := s.directory.GetFirm(ctx, input.FirmID)
	if err != nil {
		return nil, err
	}
	client, err := s.directory.GetClient(ctx, input.FirmID, input.ClientID)
	if err != nil {
		return nil, err
	}

	items := billing.NormalizeItems(input.Items)

	var ov billing.Overrides
	if input.Subtotal != nil {
		ov.Subtotal = billing.Provided(*input.Subtotal)
	}
	if input.TaxAmount != nil {
		ov.TaxAmount = billing.Provided(*input.TaxAmount)
	}
	if input.TotalAmount != nil {
		ov.TotalAmount = billing.Provided(*input.TotalAmount)
	}

	totals, err := billing.Compute(items, input.Discount, ov)
	if err != nil {
		return nil, err
	}

	interstate := firm.StateCode != client.StateCode
	cgst, sgst, igst := billing.SplitGST(totals.TaxAmount, interstate)

	discount := input.Discount
	discount.Amount = totals.DiscountAmount

	status := domain.StatusDraft
	approval := domain.AdminApproval{Status: domain.ApprovalApproved}
	if input.Kind == domain.KindQuotation {
		status = domain.StatusQuoteDraft
		approval = domain.AdminApproval{Status: domain.ApprovalPending}
	}

	doc := &domain.BillingDocument{
		ID:           uuid.New(),
		FirmID:       input.FirmID,
		Kind:         input.Kind,
		Status:       status,
		ClientID:     input.ClientID,
		ObligationID: input.ObligationID,
		Items:        items,
		Subtotal:     totals.Subtotal,
		Discount:     discount,
		TaxAmount:    totals.TaxAmount,
		TotalAmount:  totals.TotalAmount,
		PaidAmount:   0,
		BalanceAmount: totals.TotalAmount,
		GST: domain.GSTBreakup{
			Applicable: totals.TaxAmount != 0,
			Rate:       billing.AggregateRate(items),
			CGST:       cgst,
			SGST:       sgst,
			IGST:       igst,
		},
		AdminApproval: approval,
		DueDate:       input.DueDate,
		Version:       1,
		CreatedBy:     input.CreatedBy,
	}

	log.Printf("billingService.CreateDocument: creating %s %s for firm %s client %s total=%.2f",
		doc.Kind, doc.ID, doc.FirmID, doc.ClientID, doc.TotalAmount)

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventDocumentCreated, doc, "created", input.CreatedBy, client.Email)
	return doc, nil
}

func (s *billingService) GetByID(ctx context.Context, firmID, docID uuid.UUID) (*domain.BillingDocument, error) {
	return s.docRepo.GetByID(ctx, firmID, docID)
}

func (s *billingService) List(ctx context.Context, firmID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.BillingDocument, int, error) {
	return s.docRepo.List(ctx, firmID, filter, offset, limit)
}

func (s *billingService) ListPayments(ctx context.Context, firmID, docID uuid.UUID) ([]domain.Payment, error) {
	return s.docRepo.ListPayments(ctx, firmID, docID)
}

// RecordPayment appends a payment and rederives paid, balance, and status.
// A version conflict is retried once against the reloaded row; payments
// from two concurrent writers both land, the second on the bumped version.
func (s *billingService) RecordPayment(ctx context.Context, firmID, docID uuid.UUID, input *RecordPaymentInput) (*domain.BillingDocument, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount %.2f", domain.ErrInvalidAmount, input.Amount)
	}

	doc, err := s.docRepo.GetByID(ctx, firmID, docID)
	if err != nil {
		return nil, err
	}

	apply := func(doc *domain.BillingDocument) error {
		if doc.Status == domain.StatusCancelled {
			return domain.ErrDocumentCancelled
		}
		switch doc.Status {
		case domain.StatusQuoteReady, domain.StatusSent, domain.StatusPartiallyPaid, domain.StatusPaid:
		default:
			return fmt.Errorf("%w: cannot record payment in status %s", domain.ErrInvalidTransition, doc.Status)
		}
		doc.PaidAmount += input.Amount
		doc.BalanceAmount = doc.TotalAmount - doc.PaidAmount
		if billing.Settled(doc.TotalAmount, doc.PaidAmount) {
			doc.Status = domain.StatusPaid
		} else {
			doc.Status = domain.StatusPartiallyPaid
		}
		return nil
	}

	if err := apply(doc); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		FirmID:     firmID,
		Amount:     input.Amount,
		Method:     input.Method,
		Reference:  input.Reference,
		RecordedBy: input.RecordedBy,
		RecordedAt: time.Now().UTC(),
	}

	err = s.docRepo.AppendPayment(ctx, payment, doc)
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		log.Printf("billingService.RecordPayment: version conflict on document %s, retrying once", docID)
		doc, err = s.docRepo.GetByID(ctx, firmID, docID)
		if err != nil {
			return nil, err
		}
		if err := apply(doc); err != nil {
			return nil, err
		}
		err = s.docRepo.AppendPayment(ctx, payment, doc)
	}
	if err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventPaymentRecorded, doc, "payment_recorded", input.RecordedBy, s.clientEmail(ctx, firmID, doc.ClientID))
	return doc, nil
}

// Transition drives the explicit document state machine. Paid and
// partially paid are payment-derived and cannot be targeted here; a
// cancelled document rejects every transition.
func (s *billingService) Transition(ctx context.Context, firmID, docID uuid.UUID, target domain.DocumentStatus, actorID uuid.UUID) (*domain.BillingDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, firmID, docID)
	if err != nil {
		return nil, err
	}
	if doc.IsTerminal() {
		return nil, domain.ErrDocumentCancelled
	}

	// The gateway call for quote release happens before the versioned
	// write so no row lock spans the external 10s timeout window. A quote
	// sent without a link from a failed earlier attempt retries here.
	var link *port.PaymentLinkResult
	if !doc.Gateway.HasLink() {
		releasing := target == domain.StatusQuoteReady && doc.Status == domain.StatusQuoteDraft
		sending := target == domain.StatusSent && doc.Status == domain.StatusQuoteReady
		if releasing || sending {
			link = s.requestLink(ctx, doc)
		}
	}

	apply := func(doc *domain.BillingDocument) error {
		if doc.Status == domain.StatusCancelled {
			return domain.ErrDocumentCancelled
		}
		switch target {
		case domain.StatusCancelled:
			doc.Status = domain.StatusCancelled
		case domain.StatusQuoteReady:
			if doc.Status != domain.StatusQuoteDraft {
				return transitionErr(doc.Status, target)
			}
			doc.Status = domain.StatusQuoteReady
		case domain.StatusSent:
			switch doc.Status {
			case domain.StatusDraft:
			case domain.StatusQuoteReady:
				now := time.Now().UTC()
				actor := actorID
				doc.AdminApproval = domain.AdminApproval{
					Status:     domain.ApprovalApproved,
					ReviewedBy: &actor,
					ReviewedAt: &now,
				}
			default:
				return transitionErr(doc.Status, target)
			}
			doc.Status = domain.StatusSent
		default:
			return transitionErr(doc.Status, target)
		}
		if link != nil && link.Success {
			doc.Gateway = domain.GatewayData{
				LinkID:   link.LinkID,
				OrderID:  link.OrderID,
				ShortURL: link.ShortURL,
				Status:   "created",
			}
		}
		return nil
	}

	doc, err = s.updateVersioned(ctx, firmID, docID, doc, apply)
	if err != nil {
		return nil, err
	}

	log.Printf("billingService.Transition: document %s now %s", doc.ID, doc.Status)
	s.emit(ctx, domain.EventDocumentTransition, doc, "transitioned", actorID, s.clientEmail(ctx, firmID, doc.ClientID))
	return doc, nil
}

// RequestPaymentLink issues or re-issues a payment link for a document.
// Gateway failures come back in the result, never as an error.
func (s *billingService) RequestPaymentLink(ctx context.Context, firmID, docID uuid.UUID) (*port.PaymentLinkResult, error) {
	doc, err := s.docRepo.GetByID(ctx, firmID, docID)
	if err != nil {
		return nil, err
	}
	if doc.IsTerminal() {
		return nil, domain.ErrDocumentCancelled
	}

	link := s.requestLink(ctx, doc)
	if !link.Success {
		return link, nil
	}

	_, err = s.updateVersioned(ctx, firmID, docID, doc, func(doc *domain.BillingDocument) error {
		if doc.Status == domain.StatusCancelled {
			return domain.ErrDocumentCancelled
		}
		doc.Gateway = domain.GatewayData{
			LinkID:   link.LinkID,
			OrderID:  link.OrderID,
			ShortURL: link.ShortURL,
			Status:   "created",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// EmitQuoteForObligation creates the quotation for a completed billable
// obligation. At most one live quote may exist per obligation; a second
// emission returns domain.ErrDuplicateQuote.
func (s *billingService) EmitQuoteForObligation(ctx context.Context, ob *domain.Obligation, actorID uuid.UUID) (*domain.BillingDocument, error) {
	existing, err := s.docRepo.GetActiveQuoteByObligation(ctx, ob.FirmID, ob.ID)
	if err != nil && !errors.Is(err, domain.ErrDocumentNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: obligation %s already has quote %s", domain.ErrDuplicateQuote, ob.ID, existing.ID)
	}

	obligationID := ob.ID
	due := ob.DueDate
	return s.CreateDocument(ctx, &CreateDocumentInput{
		FirmID:       ob.FirmID,
		CreatedBy:    actorID,
		Kind:         domain.KindQuotation,
		ClientID:     ob.ClientID,
		ObligationID: &obligationID,
		Items: []domain.LineItem{{
			Description: ob.Title,
			Quantity:    1,
			Rate:        ob.FixedPrice,
			Amount:      ob.FixedPrice,
			Taxable:     true,
		}},
		DueDate: &due,
	})
}

// updateVersioned applies mutate under optimistic versioning, retrying
// exactly once on a version conflict against the reloaded row.
func (s *billingService) updateVersioned(ctx context.Context, firmID, docID uuid.UUID, doc *domain.BillingDocument, mutate func(*domain.BillingDocument) error) (*domain.BillingDocument, error) {
	if err := mutate(doc); err != nil {
		return nil, err
	}
	err := s.docRepo.UpdateVersioned(ctx, doc)
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		log.Printf("billingService.updateVersioned: version conflict on document %s, retrying once", docID)
		doc, err = s.docRepo.GetByID(ctx, firmID, docID)
		if err != nil {
			return nil, err
		}
		if err := mutate(doc); err != nil {
			return nil, err
		}
		err = s.docRepo.UpdateVersioned(ctx, doc)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *billingService) requestLink(ctx context.Context, doc *domain.BillingDocument) *port.PaymentLinkResult {
	amount := doc.BalanceAmount
	if amount <= 0 {
		amount = doc.TotalAmount
	}

	var customerName, customerEmail string
	if client, err := s.directory.GetClient(ctx, doc.FirmID, doc.ClientID); err == nil {
		customerName = client.Name
		customerEmail = client.Email
	}

	result := s.gateway.RequestLink(ctx, &port.PaymentLinkRequest{
		DocumentID:    doc.ID,
		ObligationID:  doc.ObligationID,
		Amount:        amount,
		Currency:      "INR",
		Description:   fmt.Sprintf("%s %s", doc.Kind, doc.ID),
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
	})
	if !result.Success {
		log.Printf("billingService.requestLink: document %s: %s: %s", doc.ID, result.ErrorKind, result.Message)
	}
	return result
}

// emit pushes the notification and broadcast for a document event.
// Delivery failures are logged and never surfaced to the caller.
func (s *billingService) emit(ctx context.Context, kind domain.EventKind, doc *domain.BillingDocument, action string, actorID uuid.UUID, recipient string) {
	payload := map[string]interface{}{
		"document_id":  doc.ID,
		"kind":         doc.Kind,
		"status":       doc.Status,
		"total_amount": doc.TotalAmount,
		"paid_amount":  doc.PaidAmount,
	}
	var recipients []string
	if recipient != "" {
		recipients = []string{recipient}
	}
	if err := s.dispatcher.Notify(ctx, kind, payload, recipients); err != nil {
		log.Printf("billingService.emit: notify %s for document %s failed: %v", kind, doc.ID, err)
	}
	if err := s.dispatcher.Broadcast(ctx, "billing_document", doc, action, actorID); err != nil {
		log.Printf("billingService.emit: broadcast %s for document %s failed: %v", action, doc.ID, err)
	}
}

func (s *billingService) clientEmail(ctx context.Context, firmID, clientID uuid.UUID) string {
	client, err := s.directory.GetClient(ctx, firmID, clientID)
	if err != nil {
		return ""
	}
	return client.Email
}

func transitionErr(from, to domain.DocumentStatus) error {
	return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, from, to)
}
