package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, toEmail, subject, textBody, htmlBody string) error {
	args := m.Called(ctx, toEmail, subject, textBody, htmlBody)
	return args.Error(0)
}
