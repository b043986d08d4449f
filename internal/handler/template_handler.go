package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"filingdesk/internal/service"
)

// TemplateHandler handles recurring template endpoints.
type TemplateHandler struct {
	templateService  service.TemplateService
	schedulerService service.SchedulerService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService, schedulerService service.SchedulerService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, schedulerService: schedulerService}
}

// Create handles POST /api/v1/templates
// @Summary Create a recurring template
// @Description Create a reusable template for recurring compliance work
// @Tags templates
// @Accept json
// @Produce json
// @Param request body service.CreateTemplateInput true "Template details"
// @Success 201 {object} APIResponse{data=domain.RecurringTemplate} "Template created"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Client not found"
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	firmID, actorID, ok := extractFirmContext(c)
	if !ok {
		return
	}

	var input service.CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.FirmID = firmID
	input.CreatedBy = actorID

	tpl, err := h.templateService.Create(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tpl)
}

// List handles GET /api/v1/templates
// @Summary List recurring templates
// @Description List the firm's templates, newest first
// @Tags templates
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.RecurringTemplate,meta=PagMeta} "List of templates"
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
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

	templates, total, err := h.templateService.List(c.Request.Context(), firmID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, templates, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/templates/:id
// @Summary Get template by ID
// @Tags templates
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.RecurringTemplate} "Template details"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Template not found"
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetByID(c *gin.Context) {
	firmID, _, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	tpl, err := h.templateService.GetByID(c.Request.Context(), firmID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tpl)
}

// Update handles PUT /api/v1/templates/:id
// @Summary Update a template
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Param request body service.UpdateTemplateInput true "Fields to update"
// @Success 200 {object} APIResponse{data=domain.RecurringTemplate} "Template updated"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Template not found"
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	firmID, _, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	var input service.UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tpl, err := h.templateService.Update(c.Request.Context(), firmID, id, &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tpl)
}

// Delete handles DELETE /api/v1/templates/:id
// @Summary Delete a template
// @Description Soft-delete a template; generated obligations are unaffected
// @Tags templates
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Success 200 {object} APIResponse "Template deleted"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Template not found"
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	firmID, _, ok := extractFirmContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), firmID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "template deleted"})
}

// Generate handles POST /api/v1/templates/generate
// @Summary Generate obligations from recurring templates
// @Description Run one idempotent scheduler pass for the firm as of the given date
// @Tags templates
// @Accept json
// @Produce json
// @Param as_of query string false "Generation date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} APIResponse{data=service.GenerationSummary} "Generation summary"
// @Router /templates/generate [post]
func (h *TemplateHandler) Generate(c *gin.Context) {
	firmID, actorID, ok := extractFirmContext(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "as_of must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	summary, err := h.schedulerService.GenerateRecurring(c.Request.Context(), firmID, asOf, actorID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}
