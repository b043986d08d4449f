package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"filingdesk/internal/domain"
	"filingdesk/internal/export"
	"filingdesk/internal/port"
	"filingdesk/internal/service"
)

// BillingHandler handles billing document endpoints.
type BillingHandler struct {
	billingService service.BillingService
	directory      port.Directory
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService service.BillingService, directory port.Directory) *BillingHandler {
	return &BillingHandler{billingService: billingService, directory: directory}
}

// transitionRequest is the body for PATCH /documents/:id/status.
type transitionRequest struct {
	Status domain.DocumentStatus `json:"status" binding:"required"`
}

// documentView decorates a document with its read-time effective status.
type documentView struct {
	*domain.BillingDocument
	EffectiveStatus domain.DocumentStatus `json:"effective_status"`
}

func viewOf(doc *domain.BillingDocument, now time.Time) documentView {
	return documentView{BillingDocument: doc, EffectiveStatus: doc.EffectiveStatus(now)}
}

// Create handles POST /api/v1/documents
// @Summary Create a billing document
// @Description Create a quotation, invoice, or proforma; totals and the GST split are computed server-side
// @Tags billing
// @Accept json
// @Produce json
// @Param request body service.CreateDocumentInput true "Document details"
// @Success 201 {object} APIResponse{data=domain.BillingDocument} "Document created"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Client not found"
// @Router /documents [post]
func (h *BillingHandler) Create(c *gin.Context) {
	firmID, actorID, ok := extractFirmContext(c)
	if !ok {
		return
	}

	var input service.CreateDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.FirmID = firmID
	input.CreatedBy = actorID

	doc, err := h.billingService.CreateDocument(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, viewOf(doc, time.Now().UTC()))
}

// List handles GET /api/v1/documents
// @Summary List billing documents
// @Tags billing
// @Produce json
// @Param kind query string false "Filter by kind (quotation, invoice, proforma)"
// @Param status query string false "Filter by persisted status"
// @Param client_id query string false "Filter by client (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.BillingDocument,meta=PagMeta} "List of documents"
// @Router /documents [get]
func (h *BillingHandler) List(c *gin.Context) {
	firmID, _, ok := extractFirmContext(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var filter port.DocumentFilter
	filter.Kind = domain.DocumentKind(c.Query("kind"))
	filter.Status = domain.DocumentStatus(c.Query("status"))
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid client ID")
			return
		}
		filter.ClientID = &id
	}

	docs, total, err := h.billingService.List(c.Request.Context(), firmID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	now := time.Now().UTC()
	views := make([]documentView, len(docs))
	for i := range docs {
		views[i] = viewOf(&docs[i], now)
	}

	RespondPaginated(c, views, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get billing document by ID
// @Tags billing
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.BillingDocument} "Document details"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id} [get]
func (h *BillingHandler) GetByID(c *gin.Context) {
	firmID, _, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.billingService.GetByID(c.Request.Context(), firmID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, viewOf(doc, time.Now().UTC()))
}

// Transition handles PATCH /api/v1/documents/:id/status
// @Summary Transition a billing document
// @Description Drive the document state machine; releasing a quote requests a payment link first
// @Tags billing
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body transitionRequest true "Target status"
// @Success 200 {object} APIResponse{data=domain.BillingDocument} "Document transitioned"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Document not found"
// @Failure 409 {object} APIResponse "Transition not permitted"
// @Router /documents/{id}/status [patch]
func (h *BillingHandler) Transition(c *gin.Context) {
	firmID, actorID, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.billingService.Transition(c.Request.Context(), firmID, id, req.Status, actorID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, viewOf(doc, time.Now().UTC()))
}

// RecordPayment handles POST /api/v1/documents/:id/payments
// @Summary Record a payment
// @Description Append a payment and rederive the document's paid, balance, and status
// @Tags billing
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body service.RecordPaymentInput true "Payment details"
// @Success 200 {object} APIResponse{data=domain.BillingDocument} "Payment recorded"
// @Failure 400 {object} APIResponse "Invalid amount"
// @Failure 404 {object} APIResponse "Document not found"
// @Failure 409 {object} APIResponse "Document does not accept payments in its current status"
// @Router /documents/{id}/payments [post]
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	firmID, actorID, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var input service.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.RecordedBy = actorID

	doc, err := h.billingService.RecordPayment(c.Request.Context(), firmID, id, &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, viewOf(doc, time.Now().UTC()))
}

// ListPayments handles GET /api/v1/documents/:id/payments
// @Summary List payments for a document
// @Tags billing
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} APIResponse{data=[]domain.Payment} "Payment history, oldest first"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Router /documents/{id}/payments [get]
func (h *BillingHandler) ListPayments(c *gin.Context) {
	firmID, _, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	payments, err := h.billingService.ListPayments(c.Request.Context(), firmID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}

// RequestPaymentLink handles POST /api/v1/documents/:id/payment-link
// @Summary Request a payment link
// @Description Issue or re-issue a payment link; gateway failures come back in the result body
// @Tags billing
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} APIResponse{data=port.PaymentLinkResult} "Link result"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Document not found"
// @Failure 409 {object} APIResponse "Document is cancelled"
// @Router /documents/{id}/payment-link [post]
func (h *BillingHandler) RequestPaymentLink(c *gin.Context) {
	firmID, _, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	result, err := h.billingService.RequestPaymentLink(c.Request.Context(), firmID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ExportRegister handles GET /api/v1/documents/export
// @Summary Export the billing register
// @Description Download all billing documents of the firm as an XLSX workbook
// @Tags billing
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Billing register workbook"
// @Router /documents/export [get]
func (h *BillingHandler) ExportRegister(c *gin.Context) {
	firmID, _, ok := extractFirmContext(c)
	if !ok {
		return
	}

	firm, err := h.directory.GetFirm(c.Request.Context(), firmID)
	if err != nil {
		HandleError(c, err)
		return
	}

	// Page through everything; registers are small enough to buffer.
	var docs []domain.BillingDocument
	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		page, total, err := h.billingService.List(c.Request.Context(), firmID, port.DocumentFilter{}, offset, pageSize)
		if err != nil {
			HandleError(c, err)
			return
		}
		docs = append(docs, page...)
		if offset+pageSize >= total || len(page) == 0 {
			break
		}
	}

	var buf bytes.Buffer
	if err := export.WriteRegister(&buf, docs, time.Now().UTC()); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(firm.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
