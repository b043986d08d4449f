package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
)

// MockObligationRepo is a mock implementation of port.ObligationRepository.
type MockObligationRepo struct {
	mock.Mock
}

func (m *MockObligationRepo) Create(ctx context.Context, ob *domain.Obligation) error {
	args := m.Called(ctx, ob)
	return args.Error(0)
}

func (m *MockObligationRepo) GetByID(ctx context.Context, firmID, obligationID uuid.UUID) (*domain.Obligation, error) {
	args := m.Called(ctx, firmID, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationRepo) List(ctx context.Context, firmID uuid.UUID, filter port.ObligationFilter, offset, limit int) ([]domain.Obligation, int, error) {
	args := m.Called(ctx, firmID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Obligation), args.Int(1), args.Error(2)
}

func (m *MockObligationRepo) ExistsForTemplatePeriod(ctx context.Context, firmID, templateID uuid.UUID, periodKey string) (bool, error) {
	args := m.Called(ctx, firmID, templateID, periodKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockObligationRepo) Update(ctx context.Context, ob *domain.Obligation) error {
	args := m.Called(ctx, ob)
	return args.Error(0)
}

func (m *MockObligationRepo) SetArchived(ctx context.Context, firmID, obligationID uuid.UUID, archived bool, actorID uuid.UUID) error {
	args := m.Called(ctx, firmID, obligationID, archived, actorID)
	return args.Error(0)
}
