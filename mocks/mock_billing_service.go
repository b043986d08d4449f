package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
	"filingdesk/internal/service"
)

// MockBillingService is a mock implementation of service.BillingService.
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) CreateDocument(ctx context.Context, input *service.CreateDocumentInput) (*domain.BillingDocument, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingDocument), args.Error(1)
}

func (m *MockBillingService) GetByID(ctx context.Context, firmID, docID uuid.UUID) (*domain.BillingDocument, error) {
	args := m.Called(ctx, firmID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingDocument), args.Error(1)
}

func (m *MockBillingService) List(ctx context.Context, firmID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.BillingDocument, int, error) {
	args := m.Called(ctx, firmID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BillingDocument), args.Int(1), args.Error(2)
}

func (m *MockBillingService) ListPayments(ctx context.Context, firmID, docID uuid.UUID) ([]domain.Payment, error) {
	args := m.Called(ctx, firmID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockBillingService) RecordPayment(ctx context.Context, firmID, docID uuid.UUID, input *service.RecordPaymentInput) (*domain.BillingDocument, error) {
	args := m.Called(ctx, firmID, docID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingDocument), args.Error(1)
}

func (m *MockBillingService) Transition(ctx context.Context, firmID, docID uuid.UUID, target domain.DocumentStatus, actorID uuid.UUID) (*domain.BillingDocument, error) {
	args := m.Called(ctx, firmID, docID, target, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingDocument), args.Error(1)
}

func (m *MockBillingService) RequestPaymentLink(ctx context.Context, firmID, docID uuid.UUID) (*port.PaymentLinkResult, error) {
	args := m.Called(ctx, firmID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.PaymentLinkResult), args.Error(1)
}

func (m *MockBillingService) EmitQuoteForObligation(ctx context.Context, ob *domain.Obligation, actorID uuid.UUID) (*domain.BillingDocument, error) {
	args := m.Called(ctx, ob, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingDocument), args.Error(1)
}
