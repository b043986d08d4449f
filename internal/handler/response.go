package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"filingdesk/internal/domain"
	"filingdesk/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrFirmNotFound):
		return http.StatusNotFound, "FIRM_NOT_FOUND", "firm not found"
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "CLIENT_NOT_FOUND", "client not found"
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template not found"
	case errors.Is(err, domain.ErrObligationNotFound):
		return http.StatusNotFound, "OBLIGATION_NOT_FOUND", "obligation not found"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "DOCUMENT_NOT_FOUND", "billing document not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrClientRequired):
		return http.StatusBadRequest, "CLIENT_REQUIRED", "a client is required for billing documents"
	case errors.Is(err, domain.ErrInvalidDiscount):
		return http.StatusBadRequest, "INVALID_DISCOUNT", "discount value is out of range for its type"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT", "amount must be positive"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", "transition not permitted from the current status"
	case errors.Is(err, domain.ErrDocumentCancelled):
		return http.StatusConflict, "DOCUMENT_CANCELLED", "cancelled documents accept no further changes"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusConflict, "CONCURRENCY_CONFLICT", "document was modified concurrently; retry"
	case errors.Is(err, domain.ErrDuplicateObligation):
		return http.StatusConflict, "DUPLICATE_OBLIGATION", "an obligation already exists for this template and period"
	case errors.Is(err, domain.ErrDuplicateQuote):
		return http.StatusConflict, "DUPLICATE_QUOTE", "a live quote already exists for this obligation"
	case errors.Is(err, domain.ErrPatternNotSupported):
		return http.StatusUnprocessableEntity, "PATTERN_NOT_SUPPORTED", "recurrence pattern has no generation rule"
	case errors.Is(err, domain.ErrGatewayTimeout):
		return http.StatusGatewayTimeout, "GATEWAY_TIMEOUT", "payment gateway timed out"
	case errors.Is(err, domain.ErrGatewayUnavailable):
		return http.StatusBadGateway, "GATEWAY_UNAVAILABLE", "payment gateway unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractFirmContext extracts the firm and actor IDs from the request
// context. Returns false if firm context is missing (error response
// already written).
func extractFirmContext(c *gin.Context) (firmID, actorID uuid.UUID, ok bool) {
	firmID, err := middleware.GetFirmID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing firm context")
		return uuid.Nil, uuid.Nil, false
	}
	return firmID, middleware.GetActorID(c), true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
