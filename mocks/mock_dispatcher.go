package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"filingdesk/internal/domain"
)

// MockDispatcher is a mock implementation of port.Dispatcher.
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Notify(ctx context.Context, kind domain.EventKind, payload map[string]interface{}, recipients []string) error {
	args := m.Called(ctx, kind, payload, recipients)
	return args.Error(0)
}

func (m *MockDispatcher) Broadcast(ctx context.Context, entityKind string, entity interface{}, action string, actorID uuid.UUID) error {
	args := m.Called(ctx, entityKind, entity, action, actorID)
	return args.Error(0)
}
