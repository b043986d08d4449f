package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"filingdesk/internal/domain"
	"filingdesk/internal/handler"
	"filingdesk/internal/service"
	"filingdesk/mocks"
)

func newBillingHandler() (*handler.BillingHandler, *mocks.MockBillingService, *mocks.MockDirectory) {
	mockSvc := new(mocks.MockBillingService)
	mockDir := new(mocks.MockDirectory)
	h := handler.NewBillingHandler(mockSvc, mockDir)
	return h, mockSvc, mockDir
}

func firmContext(w *httptest.ResponseRecorder, firmID, actorID uuid.UUID) (*gin.Context, *gin.Engine) {
	c, r := gin.CreateTestContext(w)
	c.Set("firm_id", firmID)
	c.Set("actor_id", actorID)
	return c, r
}

// --- Create ---

func TestBillingHandler_Create_Success(t *testing.T) {
	h, mockSvc, _ := newBillingHandler()
	firmID := uuid.New()
	clientID := uuid.New()

	expected := &domain.BillingDocument{
		ID:       uuid.New(),
		FirmID:   firmID,
		Kind:     domain.KindInvoice,
		Status:   domain.StatusDraft,
		ClientID: clientID,
	}

	mockSvc.On("CreateDocument", mock.Anything, mock.MatchedBy(func(input *service.CreateDocumentInput) bool {
		return input.FirmID == firmID && input.Kind == domain.KindInvoice && input.ClientID == clientID
	})).Return(expected, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"kind":      "invoice",
		"client_id": clientID,
		"items":     []map[string]interface{}{{"description": "Filing", "quantity": 1, "rate": 1000, "taxable": true}},
	})

	w := httptest.NewRecorder()
	c, _ := firmContext(w, firmID, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestBillingHandler_Create_MissingFirmContext(t *testing.T) {
	h, _, _ := newBillingHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader([]byte("{}")))

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillingHandler_Create_ClientRequired(t *testing.T) {
	h, mockSvc, _ := newBillingHandler()

	mockSvc.On("CreateDocument", mock.Anything, mock.Anything).Return(nil, domain.ErrClientRequired)

	body, _ := json.Marshal(map[string]interface{}{
		"kind":      "invoice",
		"client_id": uuid.New(),
	})

	w := httptest.NewRecorder()
	c, _ := firmContext(w, uuid.New(), uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "CLIENT_REQUIRED", resp.Error.Code)
}

// --- RecordPayment ---

func TestBillingHandler_RecordPayment_InvalidTransitionMapsTo409(t *testing.T) {
	h, mockSvc, _ := newBillingHandler()
	docID := uuid.New()

	mockSvc.On("RecordPayment", mock.Anything, mock.Anything, docID, mock.Anything).
		Return(nil, domain.ErrInvalidTransition)

	body, _ := json.Marshal(map[string]interface{}{"amount": 500, "method": "upi"})

	w := httptest.NewRecorder()
	c, _ := firmContext(w, uuid.New(), uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/"+docID.String()+"/payments", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}

	h.RecordPayment(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBillingHandler_RecordPayment_InvalidID(t *testing.T) {
	h, _, _ := newBillingHandler()

	w := httptest.NewRecorder()
	c, _ := firmContext(w, uuid.New(), uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/not-a-uuid/payments", bytes.NewReader([]byte("{}")))
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.RecordPayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Transition ---

func TestBillingHandler_Transition_CancelledMapsTo409(t *testing.T) {
	h, mockSvc, _ := newBillingHandler()
	docID := uuid.New()

	mockSvc.On("Transition", mock.Anything, mock.Anything, docID, domain.StatusSent, mock.Anything).
		Return(nil, domain.ErrDocumentCancelled)

	body, _ := json.Marshal(map[string]string{"status": "sent"})

	w := httptest.NewRecorder()
	c, _ := firmContext(w, uuid.New(), uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/documents/"+docID.String()+"/status", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}

	h.Transition(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DOCUMENT_CANCELLED", resp.Error.Code)
}
