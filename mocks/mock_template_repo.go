package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"filingdesk/internal/domain"
)

// MockTemplateRepo is a mock implementation of port.TemplateRepository.
type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, tpl *domain.RecurringTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepo) GetByID(ctx context.Context, firmID, templateID uuid.UUID) (*domain.RecurringTemplate, error) {
	args := m.Called(ctx, firmID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTemplate), args.Error(1)
}

func (m *MockTemplateRepo) ListByFirm(ctx context.Context, firmID uuid.UUID, offset, limit int) ([]domain.RecurringTemplate, int, error) {
	args := m.Called(ctx, firmID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RecurringTemplate), args.Int(1), args.Error(2)
}

func (m *MockTemplateRepo) ListActiveRecurring(ctx context.Context, firmID uuid.UUID) ([]domain.RecurringTemplate, error) {
	args := m.Called(ctx, firmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTemplate), args.Error(1)
}

func (m *MockTemplateRepo) Update(ctx context.Context, tpl *domain.RecurringTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepo) SoftDelete(ctx context.Context, firmID, templateID uuid.UUID) error {
	args := m.Called(ctx, firmID, templateID)
	return args.Error(0)
}

func (m *MockTemplateRepo) TouchUsage(ctx context.Context, firmID, templateID uuid.UUID, usedAt time.Time) error {
	args := m.Called(ctx, firmID, templateID, usedAt)
	return args.Error(0)
}
