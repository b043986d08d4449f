package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"filingdesk/internal/port"
)

// MockPaymentGateway is a mock implementation of port.PaymentGateway.
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) RequestLink(ctx context.Context, req *port.PaymentLinkRequest) *port.PaymentLinkResult {
	args := m.Called(ctx, req)
	return args.Get(0).(*port.PaymentLinkResult)
}
