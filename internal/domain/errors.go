package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrFirmNotFound       = errors.New("firm not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrObligationNotFound = errors.New("obligation not found")
	ErrDocumentNotFound   = errors.New("billing document not found")

	ErrValidation      = errors.New("validation failed")
	ErrClientRequired  = errors.New("billing document requires a client")
	ErrInvalidDiscount = errors.New("discount value out of range for its type")
	ErrInvalidAmount   = errors.New("payment amount must be positive")

	ErrInvalidTransition   = errors.New("invalid document transition")
	ErrDocumentCancelled   = errors.New("document is cancelled and cannot transition")
	ErrConcurrencyConflict = errors.New("document was modified concurrently")

	ErrDuplicateObligation = errors.New("obligation already generated for this template and period")
	ErrDuplicateQuote      = errors.New("an active quote already exists for this obligation")
	ErrPatternNotSupported = errors.New("recurrence pattern has no generation rule")

	ErrGatewayTimeout     = errors.New("payment gateway timed out")
	ErrGatewayUnavailable = errors.New("payment gateway request failed")
)
