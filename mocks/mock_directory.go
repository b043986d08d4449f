package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"filingdesk/internal/domain"
)

// MockDirectory is a mock implementation of port.Directory.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetFirm(ctx context.Context, firmID uuid.UUID) (*domain.Firm, error) {
	args := m.Called(ctx, firmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Firm), args.Error(1)
}

func (m *MockDirectory) GetClient(ctx context.Context, firmID, clientID uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, firmID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
