package notify_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"filingdesk/internal/domain"
	"filingdesk/internal/notify"
	"filingdesk/mocks"
)

type capturingPublisher struct {
	routingKey string
	body       []byte
	err        error
}

func (p *capturingPublisher) Publish(_ context.Context, routingKey string, body []byte) error {
	p.routingKey = routingKey
	p.body = body
	return p.err
}

func TestNotify_SendsToEachRecipient(t *testing.T) {
	email := new(mocks.MockEmailSender)
	email.On("Send", mock.Anything, "a@example.com", "Payment received", mock.Anything, "").Return(nil)
	email.On("Send", mock.Anything, "b@example.com", "Payment received", mock.Anything, "").Return(nil)

	d := notify.NewDispatcher(email, nil)
	err := d.Notify(context.Background(), domain.EventPaymentRecorded,
		map[string]interface{}{"amount": 500}, []string{"a@example.com", "", "b@example.com"})

	require.NoError(t, err)
	email.AssertNumberOfCalls(t, "Send", 2)
}

func TestNotify_FailureDoesNotStopRemainingSends(t *testing.T) {
	email := new(mocks.MockEmailSender)
	email.On("Send", mock.Anything, "a@example.com", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	email.On("Send", mock.Anything, "b@example.com", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	d := notify.NewDispatcher(email, nil)
	err := d.Notify(context.Background(), domain.EventDocumentCreated, nil,
		[]string{"a@example.com", "b@example.com"})

	assert.Error(t, err)
	email.AssertNumberOfCalls(t, "Send", 2)
}

func TestBroadcast_PublishesEnvelope(t *testing.T) {
	pub := &capturingPublisher{}
	d := notify.NewDispatcher(new(mocks.MockEmailSender), pub)
	actorID := uuid.New()

	err := d.Broadcast(context.Background(), "obligation", map[string]string{"id": "x"}, "created", actorID)
	require.NoError(t, err)

	assert.Equal(t, "obligation.created", pub.routingKey)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(pub.body, &envelope))
	assert.Equal(t, "obligation", envelope["entity_kind"])
	assert.Equal(t, "created", envelope["action"])
	assert.Equal(t, actorID.String(), envelope["actor_id"])
}

func TestBroadcast_NilPublisherIsNoop(t *testing.T) {
	d := notify.NewDispatcher(new(mocks.MockEmailSender), nil)
	err := d.Broadcast(context.Background(), "obligation", nil, "created", uuid.New())
	assert.NoError(t, err)
}
