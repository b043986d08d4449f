package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Firm represents a professional-services firm using the platform.
type Firm struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	StateCode string    `db:"state_code" json:"state_code"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Client represents a billable client of a firm. The state code drives
// the interstate CGST/SGST vs IGST split.
type Client struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FirmID    uuid.UUID `db:"firm_id" json:"firm_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	StateCode string    `db:"state_code" json:"state_code"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SubtaskSpec is one ordered step a template prescribes for its obligations.
type SubtaskSpec struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

// SubtaskList is a JSONB-backed ordered list of subtask specs.
type SubtaskList []SubtaskSpec

func (s SubtaskList) Value() (driver.Value, error) { return jsonValue(s) }
func (s *SubtaskList) Scan(src interface{}) error  { return jsonScan(s, src) }

// UUIDList is a JSONB-backed list of UUIDs (e.g. obligation collaborators).
type UUIDList []uuid.UUID

func (u UUIDList) Value() (driver.Value, error) { return jsonValue(u) }
func (u *UUIDList) Scan(src interface{}) error  { return jsonScan(u, src) }

// RecurringTemplate is a reusable definition of recurring compliance work.
// Templates are soft-deleted only; the scheduler stamps usage on emission.
type RecurringTemplate struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	FirmID     uuid.UUID         `db:"firm_id" json:"firm_id"`
	Title      string            `db:"title" json:"title"`
	Category   TemplateCategory  `db:"category" json:"category"`
	Pattern    RecurrencePattern `db:"pattern" json:"pattern"`
	AssigneeID *uuid.UUID        `db:"assignee_id" json:"assignee_id"`
	ClientID   uuid.UUID         `db:"client_id" json:"client_id"`
	Price      float64           `db:"price" json:"price"`
	Subtasks   SubtaskList       `db:"subtasks" json:"subtasks"`
	UsageCount int               `db:"usage_count" json:"usage_count"`
	LastUsedAt *time.Time        `db:"last_used_at" json:"last_used_at"`
	IsActive   bool              `db:"is_active" json:"is_active"`
	IsDeleted  bool              `db:"is_deleted" json:"is_deleted"`
	CreatedBy  uuid.UUID         `db:"created_by" json:"created_by"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time         `db:"updated_at" json:"updated_at"`
}

// Obligation is one concrete instance of compliance work, generated from a
// template or created directly. Archived state is orthogonal to status.
type Obligation struct {
	ID            uuid.UUID          `db:"id" json:"id"`
	FirmID        uuid.UUID          `db:"firm_id" json:"firm_id"`
	Title         string             `db:"title" json:"title"`
	Category      TemplateCategory   `db:"category" json:"category"`
	Priority      ObligationPriority `db:"priority" json:"priority"`
	Status        ObligationStatus   `db:"status" json:"status"`
	DueDate       time.Time          `db:"due_date" json:"due_date"`
	Billable      bool               `db:"billable" json:"billable"`
	FixedPrice    float64            `db:"fixed_price" json:"fixed_price"`
	IsRecurring   bool               `db:"is_recurring" json:"is_recurring"`
	TemplateID    *uuid.UUID         `db:"template_id" json:"template_id"`
	PeriodKey     string             `db:"period_key" json:"period_key"`
	ClientID      uuid.UUID          `db:"client_id" json:"client_id"`
	AssigneeID    *uuid.UUID         `db:"assignee_id" json:"assignee_id"`
	Collaborators UUIDList           `db:"collaborators" json:"collaborators"`
	Subtasks      SubtaskList        `db:"subtasks" json:"subtasks"`
	Archived      bool               `db:"archived" json:"archived"`
	ArchivedAt    *time.Time         `db:"archived_at" json:"archived_at"`
	ArchivedBy    *uuid.UUID         `db:"archived_by" json:"archived_by"`
	CreatedBy     uuid.UUID          `db:"created_by" json:"created_by"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `db:"updated_at" json:"updated_at"`
}

// LineItem is one billable line on a document. Amount is the pre-tax,
// pre-discount line value; tax is computed on it when Taxable is set.
type LineItem struct {
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	Rate        float64  `json:"rate"`
	Amount      float64  `json:"amount"`
	Taxable     bool     `json:"taxable"`
	TaxRate     *float64 `json:"tax_rate"`
	HSN         string   `json:"hsn"`
}

// LineItems is a JSONB-backed ordered list of line items.
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) { return jsonValue(l) }
func (l *LineItems) Scan(src interface{}) error  { return jsonScan(l, src) }

// Discount describes a document-level discount. Val is the raw figure
// (percent or flat as Type says); Amount is the resolved money value.
type Discount struct {
	Type   DiscountType `json:"type"`
	Val    float64      `json:"value"`
	Amount float64      `json:"amount"`
}

func (d Discount) Value() (driver.Value, error) { return jsonValue(d) }
func (d *Discount) Scan(src interface{}) error  { return jsonScan(d, src) }

// GSTBreakup carries the tax split. Exactly one of the CGST/SGST pair or
// IGST is non-zero, chosen by the interstate flag at computation time.
type GSTBreakup struct {
	Applicable bool    `json:"applicable"`
	Rate       float64 `json:"rate"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	IGST       float64 `json:"igst"`
}

func (g GSTBreakup) Value() (driver.Value, error) { return jsonValue(g) }
func (g *GSTBreakup) Scan(src interface{}) error  { return jsonScan(g, src) }

// AdminApproval gates the release of a quote to the client.
type AdminApproval struct {
	Status     ApprovalStatus `json:"status"`
	ReviewedBy *uuid.UUID     `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time     `json:"reviewed_at,omitempty"`
}

func (a AdminApproval) Value() (driver.Value, error) { return jsonValue(a) }
func (a *AdminApproval) Scan(src interface{}) error  { return jsonScan(a, src) }

// GatewayData holds payment-link details returned by the gateway.
type GatewayData struct {
	LinkID   string `json:"link_id,omitempty"`
	OrderID  string `json:"order_id,omitempty"`
	ShortURL string `json:"short_url,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (g GatewayData) Value() (driver.Value, error) { return jsonValue(g) }
func (g *GatewayData) Scan(src interface{}) error  { return jsonScan(g, src) }

// HasLink reports whether a payment link has been attached.
func (g GatewayData) HasLink() bool { return g.LinkID != "" }

// BillingDocument is the unified billing entity spanning quotations,
// invoices, and proforma documents. Kind is immutable; Status carries the
// lifecycle. Version backs optimistic locking on every mutation.
type BillingDocument struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	FirmID        uuid.UUID      `db:"firm_id" json:"firm_id"`
	Kind          DocumentKind   `db:"kind" json:"kind"`
	Status        DocumentStatus `db:"status" json:"status"`
	ClientID      uuid.UUID      `db:"client_id" json:"client_id"`
	ObligationID  *uuid.UUID     `db:"obligation_id" json:"obligation_id"`
	Items         LineItems      `db:"items" json:"items"`
	Subtotal      float64        `db:"subtotal" json:"subtotal"`
	Discount      Discount       `db:"discount" json:"discount"`
	TaxAmount     float64        `db:"tax_amount" json:"tax_amount"`
	TotalAmount   float64        `db:"total_amount" json:"total_amount"`
	PaidAmount    float64        `db:"paid_amount" json:"paid_amount"`
	BalanceAmount float64        `db:"balance_amount" json:"balance_amount"`
	GST           GSTBreakup     `db:"gst" json:"gst"`
	AdminApproval AdminApproval  `db:"admin_approval" json:"admin_approval"`
	Gateway       GatewayData    `db:"gateway" json:"gateway"`
	DueDate       *time.Time     `db:"due_date" json:"due_date"`
	Version       int            `db:"version" json:"version"`
	CreatedBy     uuid.UUID      `db:"created_by" json:"created_by"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// EffectiveStatus returns the read-time view of the document status:
// overdue when past due and not yet settled or cancelled. The persisted
// status is never rewritten to overdue.
func (d *BillingDocument) EffectiveStatus(now time.Time) DocumentStatus {
	if d.DueDate != nil && now.After(*d.DueDate) &&
		d.Status != StatusPaid && d.Status != StatusCancelled {
		return StatusOverdue
	}
	return d.Status
}

// IsTerminal reports whether no further transition is permitted.
func (d *BillingDocument) IsTerminal() bool {
	return d.Status == StatusCancelled
}

// Payment is one append-only entry in a document's payment history.
type Payment struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	DocumentID uuid.UUID     `db:"document_id" json:"document_id"`
	FirmID     uuid.UUID     `db:"firm_id" json:"firm_id"`
	Amount     float64       `db:"amount" json:"amount"`
	Method     PaymentMethod `db:"method" json:"method"`
	Reference  string        `db:"reference" json:"reference"`
	RecordedBy uuid.UUID     `db:"recorded_by" json:"recorded_by"`
	RecordedAt time.Time     `db:"recorded_at" json:"recorded_at"`
}

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func jsonScan(dst interface{}, src interface{}) error {
	if src == nil {
		return nil
	}
	switch s := src.(type) {
	case []byte:
		return json.Unmarshal(s, dst)
	case string:
		return json.Unmarshal([]byte(s), dst)
	default:
		return fmt.Errorf("unsupported scan type %T", src)
	}
}
