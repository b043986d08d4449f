package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"filingdesk/internal/domain"
	"filingdesk/internal/port"
	"filingdesk/internal/service"
)

// ObligationHandler handles obligation workflow endpoints.
type ObligationHandler struct {
	obligationService service.ObligationService
}

// NewObligationHandler creates a new ObligationHandler.
func NewObligationHandler(obligationService service.ObligationService) *ObligationHandler {
	return &ObligationHandler{obligationService: obligationService}
}

// statusUpdateRequest is the body for PATCH /obligations/:id/status.
type statusUpdateRequest struct {
	Status domain.ObligationStatus `json:"status" binding:"required"`
}

// archiveRequest is the body for PATCH /obligations/:id/archive.
type archiveRequest struct {
	Archived bool `json:"archived"`
}

// Create handles POST /api/v1/obligations
// @Summary Create a one-off obligation
// @Tags obligations
// @Accept json
// @Produce json
// @Param request body service.CreateObligationInput true "Obligation details"
// @Success 201 {object} APIResponse{data=domain.Obligation} "Obligation created"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Client not found"
// @Router /obligations [post]
func (h *ObligationHandler) Create(c *gin.Context) {
	firmID, actorID, ok := extractFirmContext(c)
	if !ok {
		return
	}

	var input service.CreateObligationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.FirmID = firmID
	input.CreatedBy = actorID

	ob, err := h.obligationService.Create(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, ob)
}

// List handles GET /api/v1/obligations
// @Summary List obligations
// @Description List obligations with optional status, assignee, template, and archived filters
// @Tags obligations
// @Produce json
// @Param status query string false "Filter by status"
// @Param assignee_id query string false "Filter by assignee (UUID)"
// @Param template_id query string false "Filter by source template (UUID)"
// @Param archived query bool false "Filter by archived flag"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Obligation,meta=PagMeta} "List of obligations"
// @Router /obligations [get]
func (h *ObligationHandler) List(c *gin.Context) {
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

	var filter port.ObligationFilter
	filter.Status = domain.ObligationStatus(c.Query("status"))
	if raw := c.Query("assignee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid assignee ID")
			return
		}
		filter.AssigneeID = &id
	}
	if raw := c.Query("template_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
			return
		}
		filter.TemplateID = &id
	}
	if raw := c.Query("archived"); raw != "" {
		archived := raw == "true"
		filter.Archived = &archived
	}

	obligations, total, err := h.obligationService.List(c.Request.Context(), firmID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, obligations, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/obligations/:id
// @Summary Get obligation by ID
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Obligation} "Obligation details"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Obligation not found"
// @Router /obligations/{id} [get]
func (h *ObligationHandler) GetByID(c *gin.Context) {
	firmID, _, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid obligation ID")
		return
	}

	ob, err := h.obligationService.GetByID(c.Request.Context(), firmID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ob)
}

// UpdateStatus handles PATCH /api/v1/obligations/:id/status
// @Summary Update obligation status
// @Description Move an obligation through its lifecycle; completing a billable obligation emits its quotation
// @Tags obligations
// @Accept json
// @Produce json
// @Param id path string true "Obligation ID (UUID)"
// @Param request body statusUpdateRequest true "Target status"
// @Success 200 {object} APIResponse{data=domain.Obligation} "Obligation updated"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Obligation not found"
// @Failure 409 {object} APIResponse "Transition not permitted"
// @Router /obligations/{id}/status [patch]
func (h *ObligationHandler) UpdateStatus(c *gin.Context) {
	firmID, actorID, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid obligation ID")
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ob, err := h.obligationService.UpdateStatus(c.Request.Context(), firmID, id, req.Status, actorID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ob)
}

// SetArchived handles PATCH /api/v1/obligations/:id/archive
// @Summary Archive or unarchive an obligation
// @Tags obligations
// @Accept json
// @Produce json
// @Param id path string true "Obligation ID (UUID)"
// @Param request body archiveRequest true "Archived flag"
// @Success 200 {object} APIResponse "Obligation archived state updated"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Obligation not found"
// @Router /obligations/{id}/archive [patch]
func (h *ObligationHandler) SetArchived(c *gin.Context) {
	firmID, actorID, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid obligation ID")
		return
	}

	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.obligationService.SetArchived(c.Request.Context(), firmID, id, req.Archived, actorID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"archived": req.Archived})
}
