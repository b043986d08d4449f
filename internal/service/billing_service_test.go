package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
	"filingdesk/internal/service"
	"filingdesk/mocks"
)

func setupBillingService(firm *domain.Firm, client *domain.Client) (
	service.BillingService,
	*mocks.MockBillingDocumentRepo,
	*mocks.MockPaymentGateway,
	*mocks.MockDispatcher,
) {
	docRepo := new(mocks.MockBillingDocumentRepo)
	directory := new(mocks.MockDirectory)
	gateway := new(mocks.MockPaymentGateway)
	dispatcher := new(mocks.MockDispatcher)

	directory.On("GetFirm", mock.Anything, mock.Anything).Return(firm, nil).Maybe()
	directory.On("GetClient", mock.Anything, mock.Anything, mock.Anything).Return(client, nil).Maybe()
	dispatcher.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	dispatcher.On("Broadcast", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := service.NewBillingService(docRepo, directory, gateway, dispatcher)
	return svc, docRepo, gateway, dispatcher
}

func testFirm() *domain.Firm {
	return &domain.Firm{ID: uuid.New(), Name: "Mehta & Associates", Email: "office@mehta.example", StateCode: "27"}
}

func testClient(firmID uuid.UUID, stateCode string) *domain.Client {
	return &domain.Client{ID: uuid.New(), FirmID: firmID, Name: "Acme Traders", Email: "accounts@acme.example", StateCode: stateCode}
}

func sentDocument(firmID, clientID uuid.UUID, total float64) *domain.BillingDocument {
	return &domain.BillingDocument{
		ID:            uuid.New(),
		FirmID:        firmID,
		Kind:          domain.KindInvoice,
		Status:        domain.StatusSent,
		ClientID:      clientID,
		TotalAmount:   total,
		BalanceAmount: total,
		Version:       1,
	}
}

func TestCreateDocument_IntrastateSplit(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27") // same state as firm
	svc, docRepo, _, _ := setupBillingService(firm, client)

	docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	doc, err := svc.CreateDocument(context.Background(), &service.CreateDocumentInput{
		FirmID:   firm.ID,
		Kind:     domain.KindInvoice,
		ClientID: client.ID,
		Items: []domain.LineItem{
			{Description: "GSTR-1 filing", Quantity: 1, Rate: 1000, Taxable: true},
			{Description: "Reconciliation", Quantity: 1, Rate: 500, Taxable: true},
		},
		Discount: domain.Discount{Type: domain.DiscountPercentage, Val: 10},
	})
	require.NoError(t, err)

	assert.InDelta(t, 1500.0, doc.Subtotal, 0.001)
	assert.InDelta(t, 150.0, doc.Discount.Amount, 0.001)
	assert.InDelta(t, 270.0, doc.TaxAmount, 0.001)
	assert.InDelta(t, 1620.0, doc.TotalAmount, 0.001)
	assert.InDelta(t, 1620.0, doc.BalanceAmount, 0.001)
	assert.InDelta(t, 135.0, doc.GST.CGST, 0.001)
	assert.InDelta(t, 135.0, doc.GST.SGST, 0.001)
	assert.Zero(t, doc.GST.IGST)
	assert.Equal(t, domain.StatusDraft, doc.Status)
	assert.Equal(t, 1, doc.Version)
}

func TestCreateDocument_InterstateSplit(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "07") // Delhi vs Maharashtra
	svc, docRepo, _, _ := setupBillingService(firm, client)

	docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	doc, err := svc.CreateDocument(context.Background(), &service.CreateDocumentInput{
		FirmID:   firm.ID,
		Kind:     domain.KindInvoice,
		ClientID: client.ID,
		Items:    []domain.LineItem{{Quantity: 1, Rate: 1000, Taxable: true}},
	})
	require.NoError(t, err)

	assert.Zero(t, doc.GST.CGST)
	assert.Zero(t, doc.GST.SGST)
	assert.InDelta(t, 180.0, doc.GST.IGST, 0.001)
}

func TestCreateDocument_QuotationStartsPendingApproval(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)

	docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	doc, err := svc.CreateDocument(context.Background(), &service.CreateDocumentInput{
		FirmID:   firm.ID,
		Kind:     domain.KindQuotation,
		ClientID: client.ID,
		Items:    []domain.LineItem{{Quantity: 1, Rate: 500, Taxable: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusQuoteDraft, doc.Status)
	assert.Equal(t, domain.ApprovalPending, doc.AdminApproval.Status)
}

func TestCreateDocument_ClientRequired(t *testing.T) {
	firm := testFirm()
	svc, _, _, _ := setupBillingService(firm, nil)

	_, err := svc.CreateDocument(context.Background(), &service.CreateDocumentInput{
		FirmID: firm.ID,
		Kind:   domain.KindInvoice,
	})
	assert.ErrorIs(t, err, domain.ErrClientRequired)
}

func TestCreateDocument_InvalidDiscountRejected(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)

	_, err := svc.CreateDocument(context.Background(), &service.CreateDocumentInput{
		FirmID:   firm.ID,
		Kind:     domain.KindInvoice,
		ClientID: client.ID,
		Items:    []domain.LineItem{{Quantity: 1, Rate: 1000}},
		Discount: domain.Discount{Type: domain.DiscountPercentage, Val: 150},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
	docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordPayment_PartialThenSettled(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)
	doc := sentDocument(firm.ID, client.ID, 1180)

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)
	docRepo.On("AppendPayment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	out, err := svc.RecordPayment(context.Background(), firm.ID, doc.ID, &service.RecordPaymentInput{
		Amount: 500, Method: domain.PaymentUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartiallyPaid, out.Status)
	assert.InDelta(t, 500.0, out.PaidAmount, 0.001)
	assert.InDelta(t, 680.0, out.BalanceAmount, 0.001)

	out, err = svc.RecordPayment(context.Background(), firm.ID, doc.ID, &service.RecordPaymentInput{
		Amount: 680, Method: domain.PaymentBank,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, out.Status)
	assert.InDelta(t, 1180.0, out.PaidAmount, 0.001)
	assert.InDelta(t, 0.0, out.BalanceAmount, 0.001)
}

func TestRecordPayment_EpsilonSettles(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)
	doc := sentDocument(firm.ID, client.ID, 1000)

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)
	docRepo.On("AppendPayment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	out, err := svc.RecordPayment(context.Background(), firm.ID, doc.ID, &service.RecordPaymentInput{
		Amount: 999.995, Method: domain.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, out.Status)
}

func TestRecordPayment_InvalidAmount(t *testing.T) {
	firm := testFirm()
	svc, docRepo, _, _ := setupBillingService(firm, nil)

	_, err := svc.RecordPayment(context.Background(), firm.ID, uuid.New(), &service.RecordPaymentInput{Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.RecordPayment(context.Background(), firm.ID, uuid.New(), &service.RecordPaymentInput{Amount: -50})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	docRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordPayment_CancelledRejected(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)
	doc := sentDocument(firm.ID, client.ID, 1000)
	doc.Status = domain.StatusCancelled

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)

	_, err := svc.RecordPayment(context.Background(), firm.ID, doc.ID, &service.RecordPaymentInput{
		Amount: 100, Method: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrDocumentCancelled)
	docRepo.AssertNotCalled(t, "AppendPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordPayment_DraftRejected(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)
	doc := sentDocument(firm.ID, client.ID, 1000)
	doc.Status = domain.StatusDraft

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)

	_, err := svc.RecordPayment(context.Background(), firm.ID, doc.ID, &service.RecordPaymentInput{
		Amount: 100, Method: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRecordPayment_QuoteReadyAccepted(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)

	doc := sentDocument(firm.ID, client.ID, 5000)
	doc.Kind = domain.KindQuotation
	doc.Status = domain.StatusQuoteReady

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)
	docRepo.On("AppendPayment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// Clients can pay a released quote directly from its payment link,
	// before the firm marks it sent.
	out, err := svc.RecordPayment(context.Background(), firm.ID, doc.ID, &service.RecordPaymentInput{
		Amount: 3000, Method: domain.PaymentUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartiallyPaid, out.Status)
	assert.InDelta(t, 3000.0, out.PaidAmount, 0.001)
	assert.InDelta(t, 2000.0, out.BalanceAmount, 0.001)
}

func TestRecordPayment_ConflictRetriedOnce(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)

	stale := sentDocument(firm.ID, client.ID, 1000)
	fresh := sentDocument(firm.ID, client.ID, 1000)
	fresh.ID = stale.ID
	// A concurrent payment already landed on the fresh row.
	fresh.Status = domain.StatusPartiallyPaid
	fresh.PaidAmount = 300
	fresh.BalanceAmount = 700
	fresh.Version = 2

	docRepo.On("GetByID", mock.Anything, firm.ID, stale.ID).Return(stale, nil).Once()
	docRepo.On("AppendPayment", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrConcurrencyConflict).Once()
	docRepo.On("GetByID", mock.Anything, firm.ID, stale.ID).Return(fresh, nil).Once()
	docRepo.On("AppendPayment", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	out, err := svc.RecordPayment(context.Background(), firm.ID, stale.ID, &service.RecordPaymentInput{
		Amount: 700, Method: domain.PaymentBank,
	})
	require.NoError(t, err)

	// Both payments survive: the retry recomputed on the fresh row.
	assert.Equal(t, domain.StatusPaid, out.Status)
	assert.InDelta(t, 1000.0, out.PaidAmount, 0.001)
	docRepo.AssertExpectations(t)
}

func TestTransition_QuoteReadyRequestsPaymentLink(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, gateway, _ := setupBillingService(firm, client)

	doc := sentDocument(firm.ID, client.ID, 1620)
	doc.Kind = domain.KindQuotation
	doc.Status = domain.StatusQuoteDraft

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)
	gateway.On("RequestLink", mock.Anything, mock.MatchedBy(func(req *port.PaymentLinkRequest) bool {
		return req.DocumentID == doc.ID && req.Amount == 1620
	})).Return(&port.PaymentLinkResult{
		Success: true, LinkID: "plink_123", OrderID: "order_456", ShortURL: "https://rzp.io/l/abc",
	})
	docRepo.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.Transition(context.Background(), firm.ID, doc.ID, domain.StatusQuoteReady, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusQuoteReady, out.Status)
	assert.Equal(t, "plink_123", out.Gateway.LinkID)
	assert.Equal(t, "https://rzp.io/l/abc", out.Gateway.ShortURL)
}

func TestTransition_GatewayTimeoutDoesNotBlockTransition(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, gateway, _ := setupBillingService(firm, client)

	doc := sentDocument(firm.ID, client.ID, 1000)
	doc.Kind = domain.KindQuotation
	doc.Status = domain.StatusQuoteDraft

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)
	gateway.On("RequestLink", mock.Anything, mock.Anything).Return(&port.PaymentLinkResult{
		Success: false, ErrorKind: domain.GatewayErrTimeout, Message: "request timed out after 10s",
	})
	docRepo.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.Transition(context.Background(), firm.ID, doc.ID, domain.StatusQuoteReady, uuid.New())
	require.NoError(t, err)

	// The transition lands without a link; the link can be requested again.
	assert.Equal(t, domain.StatusQuoteReady, out.Status)
	assert.False(t, out.Gateway.HasLink())
}

func TestTransition_QuoteReadyToSentStampsApproval(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)
	actorID := uuid.New()

	doc := sentDocument(firm.ID, client.ID, 1000)
	doc.Kind = domain.KindQuotation
	doc.Status = domain.StatusQuoteReady
	doc.Gateway = domain.GatewayData{LinkID: "plink_123"}
	doc.AdminApproval = domain.AdminApproval{Status: domain.ApprovalPending}

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)
	docRepo.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.Transition(context.Background(), firm.ID, doc.ID, domain.StatusSent, actorID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSent, out.Status)
	assert.Equal(t, domain.ApprovalApproved, out.AdminApproval.Status)
	require.NotNil(t, out.AdminApproval.ReviewedBy)
	assert.Equal(t, actorID, *out.AdminApproval.ReviewedBy)
}

func TestTransition_SentRetriesMissingPaymentLink(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, gateway, _ := setupBillingService(firm, client)
	actorID := uuid.New()

	// The link request failed when the quote was released; sending the
	// quote retries it.
	doc := sentDocument(firm.ID, client.ID, 1620)
	doc.Kind = domain.KindQuotation
	doc.Status = domain.StatusQuoteReady
	doc.AdminApproval = domain.AdminApproval{Status: domain.ApprovalPending}

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)
	gateway.On("RequestLink", mock.Anything, mock.MatchedBy(func(req *port.PaymentLinkRequest) bool {
		return req.DocumentID == doc.ID && req.Amount == 1620
	})).Return(&port.PaymentLinkResult{
		Success: true, LinkID: "plink_789", ShortURL: "https://rzp.io/l/xyz",
	}).Once()
	docRepo.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.Transition(context.Background(), firm.ID, doc.ID, domain.StatusSent, actorID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSent, out.Status)
	assert.Equal(t, "plink_789", out.Gateway.LinkID)
	assert.Equal(t, domain.ApprovalApproved, out.AdminApproval.Status)
	gateway.AssertExpectations(t)
}

func TestTransition_CancelledIsTerminal(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)

	doc := sentDocument(firm.ID, client.ID, 1000)
	doc.Status = domain.StatusCancelled

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)

	_, err := svc.Transition(context.Background(), firm.ID, doc.ID, domain.StatusSent, uuid.New())
	assert.ErrorIs(t, err, domain.ErrDocumentCancelled)
	docRepo.AssertNotCalled(t, "UpdateVersioned", mock.Anything, mock.Anything)
}

func TestTransition_InvalidTargetRejected(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)

	doc := sentDocument(firm.ID, client.ID, 1000)
	doc.Status = domain.StatusDraft

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)

	// Paid is payment-derived and cannot be targeted explicitly.
	_, err := svc.Transition(context.Background(), firm.ID, doc.ID, domain.StatusPaid, uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.Transition(context.Background(), firm.ID, doc.ID, domain.StatusQuoteReady, uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransition_AnyNonTerminalCancellable(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)

	doc := sentDocument(firm.ID, client.ID, 1000)
	doc.Status = domain.StatusPartiallyPaid
	doc.PaidAmount = 400
	doc.BalanceAmount = 600

	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)
	docRepo.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.Transition(context.Background(), firm.ID, doc.ID, domain.StatusCancelled, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, out.Status)
}

func TestTransition_DispatcherFailureSwallowed(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")

	docRepo := new(mocks.MockBillingDocumentRepo)
	directory := new(mocks.MockDirectory)
	gateway := new(mocks.MockPaymentGateway)
	dispatcher := new(mocks.MockDispatcher)
	directory.On("GetFirm", mock.Anything, mock.Anything).Return(firm, nil).Maybe()
	directory.On("GetClient", mock.Anything, mock.Anything, mock.Anything).Return(client, nil).Maybe()
	dispatcher.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	dispatcher.On("Broadcast", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	svc := service.NewBillingService(docRepo, directory, gateway, dispatcher)

	doc := sentDocument(firm.ID, client.ID, 1000)
	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)
	docRepo.On("UpdateVersioned", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.Transition(context.Background(), firm.ID, doc.ID, domain.StatusCancelled, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, out.Status)
}

func TestRequestPaymentLink_FailureReturnedAsData(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, gateway, _ := setupBillingService(firm, client)

	doc := sentDocument(firm.ID, client.ID, 1000)
	docRepo.On("GetByID", mock.Anything, firm.ID, doc.ID).Return(doc, nil)
	gateway.On("RequestLink", mock.Anything, mock.Anything).Return(&port.PaymentLinkResult{
		Success: false, ErrorKind: domain.GatewayErrGateway, Message: "502 from upstream",
	})

	result, err := svc.RequestPaymentLink(context.Background(), firm.ID, doc.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, domain.GatewayErrGateway, result.ErrorKind)
	docRepo.AssertNotCalled(t, "UpdateVersioned", mock.Anything, mock.Anything)
}

func TestEmitQuoteForObligation_DuplicateGuard(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)

	ob := &domain.Obligation{
		ID: uuid.New(), FirmID: firm.ID, Title: "GSTR-3B Filing (2026-08)",
		ClientID: client.ID, Billable: true, FixedPrice: 2500,
		DueDate: time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
	}
	existing := sentDocument(firm.ID, client.ID, 2950)
	existing.Kind = domain.KindQuotation
	existing.Status = domain.StatusQuoteDraft

	docRepo.On("GetActiveQuoteByObligation", mock.Anything, firm.ID, ob.ID).Return(existing, nil)

	_, err := svc.EmitQuoteForObligation(context.Background(), ob, uuid.New())
	assert.ErrorIs(t, err, domain.ErrDuplicateQuote)
	docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEmitQuoteForObligation_CreatesQuote(t *testing.T) {
	firm := testFirm()
	client := testClient(firm.ID, "27")
	svc, docRepo, _, _ := setupBillingService(firm, client)

	ob := &domain.Obligation{
		ID: uuid.New(), FirmID: firm.ID, Title: "GSTR-3B Filing (2026-08)",
		ClientID: client.ID, Billable: true, FixedPrice: 2500,
		DueDate: time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
	}

	docRepo.On("GetActiveQuoteByObligation", mock.Anything, firm.ID, ob.ID).Return(nil, domain.ErrDocumentNotFound)
	docRepo.On("Create", mock.Anything, mock.MatchedBy(func(doc *domain.BillingDocument) bool {
		return doc.Kind == domain.KindQuotation &&
			doc.ObligationID != nil && *doc.ObligationID == ob.ID &&
			doc.Status == domain.StatusQuoteDraft
	})).Return(nil)

	doc, err := svc.EmitQuoteForObligation(context.Background(), ob, uuid.New())
	require.NoError(t, err)

	// 2500 plus 18% GST.
	assert.InDelta(t, 2500.0, doc.Subtotal, 0.001)
	assert.InDelta(t, 450.0, doc.TaxAmount, 0.001)
	assert.InDelta(t, 2950.0, doc.TotalAmount, 0.001)
}
