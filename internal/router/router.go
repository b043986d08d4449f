package router

import (
	"github.com/gin-gonic/gin"

	"filingdesk/internal/handler"
	"filingdesk/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	templateH *handler.TemplateHandler,
	obligationH *handler.ObligationHandler,
	billingH *handler.BillingHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.FirmContext())

	// Recurring templates and the scheduler
	templates := v1.Group("/templates")
	templates.POST("", templateH.Create)
	templates.GET("", templateH.List)
	templates.POST("/generate", templateH.Generate)
	templates.GET("/:id", templateH.GetByID)
	templates.PUT("/:id", templateH.Update)
	templates.DELETE("/:id", templateH.Delete)

	// Obligations
	obligations := v1.Group("/obligations")
	obligations.POST("", obligationH.Create)
	obligations.GET("", obligationH.List)
	obligations.GET("/:id", obligationH.GetByID)
	obligations.PATCH("/:id/status", obligationH.UpdateStatus)
	obligations.PATCH("/:id/archive", obligationH.SetArchived)

	// Billing documents
	documents := v1.Group("/documents")
	documents.POST("", billingH.Create)
	documents.GET("", billingH.List)
	documents.GET("/export", billingH.ExportRegister)
	documents.GET("/:id", billingH.GetByID)
	documents.PATCH("/:id/status", billingH.Transition)
	documents.POST("/:id/payments", billingH.RecordPayment)
	documents.GET("/:id/payments", billingH.ListPayments)
	documents.POST("/:id/payment-link", billingH.RequestPaymentLink)

	return r
}
