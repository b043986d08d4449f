package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

// MockBillingDocumentRepo is a mock implementation of port.BillingDocumentRepository.
type MockBillingDocumentRepo struct {
	mock.Mock
}

func (m *MockBillingDocumentRepo) Create(ctx context.Context, doc *domain.BillingDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockBillingDocumentRepo) GetByID(ctx context.Context, firmID, docID uuid.UUID) (*domain.BillingDocument, error) {
	args := m.Called(ctx, firmID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingDocument), args.Error(1)
}

func (m *MockBillingDocumentRepo) GetActiveQuoteByObligation(ctx context.Context, firmID, obligationID uuid.UUID) (*domain.BillingDocument, error) {
	args := m.Called(ctx, firmID, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingDocument), args.Error(1)
}

func (m *MockBillingDocumentRepo) List(ctx context.Context, firmID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.BillingDocument, int, error) {
	args := m.Called(ctx, firmID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BillingDocument), args.Int(1), args.Error(2)
}

func (m *MockBillingDocumentRepo) UpdateVersioned(ctx context.Context, doc *domain.BillingDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockBillingDocumentRepo) AppendPayment(ctx context.Context, payment *domain.Payment, doc *domain.BillingDocument) error {
	args := m.Called(ctx, payment, doc)
	return args.Error(0)
}

func (m *MockBillingDocumentRepo) ListPayments(ctx context.Context, firmID, docID uuid.UUID) ([]domain.Payment, error) {
	args := m.Called(ctx, firmID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
