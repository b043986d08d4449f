package domain

// TemplateCategory classifies the compliance work a template generates.
type TemplateCategory string

const (
	CategoryGST   TemplateCategory = "gst"
	CategoryITR   TemplateCategory = "itr"
	CategoryROC   TemplateCategory = "roc"
	CategoryOther TemplateCategory = "other"
)

// ValidCategories is the set of accepted template categories.
var ValidCategories = map[TemplateCategory]bool{
	CategoryGST:   true,
	CategoryITR:   true,
	CategoryROC:   true,
	CategoryOther: true,
}

// RecurrencePattern defines how often a template emits obligations.
type RecurrencePattern string

const (
	PatternMonthly RecurrencePattern = "monthly"
	PatternYearly  RecurrencePattern = "yearly"
	// PatternCustom has no generation rule yet; the scheduler reports
	// templates carrying it as unsupported instead of silently skipping.
	PatternCustom RecurrencePattern = "custom"
)

// ObligationStatus represents the work-item lifecycle.
type ObligationStatus string

const (
	ObligationTodo       ObligationStatus = "todo"
	ObligationInProgress ObligationStatus = "inprogress"
	ObligationReview     ObligationStatus = "review"
	ObligationCompleted  ObligationStatus = "completed"
	ObligationCancelled  ObligationStatus = "cancelled"
)

// ValidObligationStatuses is the set of accepted obligation statuses.
var ValidObligationStatuses = map[ObligationStatus]bool{
	ObligationTodo:       true,
	ObligationInProgress: true,
	ObligationReview:     true,
	ObligationCompleted:  true,
	ObligationCancelled:  true,
}

// ObligationPriority ranks obligations for triage.
type ObligationPriority string

const (
	PriorityLow    ObligationPriority = "low"
	PriorityMedium ObligationPriority = "medium"
	PriorityHigh   ObligationPriority = "high"
)

// DocumentKind identifies what a billing document is. It is fixed at
// creation and never changes; lifecycle state lives in DocumentStatus.
type DocumentKind string

const (
	KindQuotation DocumentKind = "quotation"
	KindInvoice   DocumentKind = "invoice"
	KindProforma  DocumentKind = "proforma"
)

// DocumentStatus represents the billing document lifecycle.
type DocumentStatus string

const (
	StatusDraft         DocumentStatus = "draft"
	StatusQuoteDraft    DocumentStatus = "quote_draft"
	StatusQuoteReady    DocumentStatus = "quote_ready"
	StatusSent          DocumentStatus = "sent"
	StatusPartiallyPaid DocumentStatus = "partially_paid"
	StatusPaid          DocumentStatus = "paid"
	StatusCancelled     DocumentStatus = "cancelled"
	// StatusOverdue is a derived, read-time view. It is never persisted;
	// see BillingDocument.EffectiveStatus.
	StatusOverdue DocumentStatus = "overdue"
)

// DiscountType selects how a discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

// PaymentMethod records how a payment was received.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentBank    PaymentMethod = "bank_transfer"
	PaymentUPI     PaymentMethod = "upi"
	PaymentCheque  PaymentMethod = "cheque"
	PaymentGateway PaymentMethod = "gateway"
)

// ApprovalStatus gates release of a quote to the client.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// GatewayErrorKind classifies payment gateway failures.
type GatewayErrorKind string

const (
	GatewayErrTimeout GatewayErrorKind = "timeout"
	GatewayErrGateway GatewayErrorKind = "gateway_error"
	GatewayErrNetwork GatewayErrorKind = "network_error"
)

// EventKind names domain events handed to the notification dispatcher.
type EventKind string

const (
	EventObligationCreated   EventKind = "obligation.created"
	EventObligationCompleted EventKind = "obligation.completed"
	EventDocumentCreated     EventKind = "document.created"
	EventDocumentTransition  EventKind = "document.transitioned"
	EventPaymentRecorded     EventKind = "document.payment_recorded"
)
