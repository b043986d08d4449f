// Package billing implements the pure financial computation for billing
// documents: subtotal, discount, tax, totals, and the GST interstate split.
// It performs no I/O.
package billing

import (
	"fmt"

	"filingdesk/internal/domain"
)

// DefaultTaxRate is the GST rate applied to taxable items that do not
// carry their own rate.
const DefaultTaxRate = 18.0

// PaymentEpsilon is the tolerance within which a document counts as
// fully paid.
const PaymentEpsilon = 0.01

// Override distinguishes a caller-supplied amount from a computed one.
// A zero Override means "compute it".
type Override struct {
	Set   bool
	Value float64
}

// Provided returns an Override carrying a caller-supplied value.
func Provided(v float64) Override { return Override{Set: true, Value: v} }

// Overrides lets the caller pin individual totals instead of having them
// derived from the line items.
type Overrides struct {
	Subtotal    Override
	TaxAmount   Override
	TotalAmount Override
}

// Totals is the result of a document computation.
type Totals struct {
	Subtotal       float64
	DiscountAmount float64
	TaxAmount      float64
	TotalAmount    float64
}

// Compute derives the document totals from its line items and discount.
// Overridden fields take precedence over the derived values.
//
// Tax is computed on the pre-discount line amounts. That mirrors the
// established billing behavior and must not change without product
// sign-off.
func Compute(items []domain.LineItem, discount domain.Discount, ov Overrides) (*Totals, error) {
	if err := ValidateDiscount(discount); err != nil {
		return nil, err
	}

	subtotal := ov.Subtotal.Value
	if !ov.Subtotal.Set {
		for i := range items {
			subtotal += lineAmount(&items[i])
		}
	}

	discountAmount := discount.Val
	if discount.Type == domain.DiscountPercentage {
		discountAmount = subtotal * discount.Val / 100
	}

	taxAmount := ov.TaxAmount.Value
	if !ov.TaxAmount.Set {
		for i := range items {
			item := &items[i]
			if !item.Taxable {
				continue
			}
			taxAmount += lineAmount(item) * rateOf(item) / 100
		}
	}

	// Negative results are intentionally not clamped.
	total := ov.TotalAmount.Value
	if !ov.TotalAmount.Set {
		total = subtotal - discountAmount + taxAmount
	}

	return &Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		TotalAmount:    total,
	}, nil
}

// SplitGST apportions the tax amount between the CGST/SGST pair and IGST
// based solely on the interstate flag.
func SplitGST(taxAmount float64, interstate bool) (cgst, sgst, igst float64) {
	if interstate {
		return 0, 0, taxAmount
	}
	return taxAmount / 2, taxAmount / 2, 0
}

// AggregateRate returns the tax rate of the first taxable item, falling
// back to the default when no item carries one.
func AggregateRate(items []domain.LineItem) float64 {
	for i := range items {
		if items[i].Taxable {
			return rateOf(&items[i])
		}
	}
	return DefaultTaxRate
}

// ValidateDiscount checks that a discount value is within the valid range
// for its declared type.
func ValidateDiscount(d domain.Discount) error {
	switch d.Type {
	case "":
		if d.Val != 0 {
			return fmt.Errorf("%w: value without type", domain.ErrInvalidDiscount)
		}
		return nil
	case domain.DiscountPercentage:
		if d.Val < 0 || d.Val > 100 {
			return fmt.Errorf("%w: percentage %.2f", domain.ErrInvalidDiscount, d.Val)
		}
		return nil
	case domain.DiscountFlat:
		if d.Val < 0 {
			return fmt.Errorf("%w: flat %.2f", domain.ErrInvalidDiscount, d.Val)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown type %q", domain.ErrInvalidDiscount, d.Type)
	}
}

// Settled reports whether paid covers total within the payment epsilon.
func Settled(total, paid float64) bool {
	return total-paid <= PaymentEpsilon
}

// NormalizeItems fills in each item's amount from quantity and rate when
// the caller did not supply one.
func NormalizeItems(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i := range items {
		out[i] = items[i]
		out[i].Amount = lineAmount(&items[i])
	}
	return out
}

func lineAmount(item *domain.LineItem) float64 {
	if item.Amount != 0 {
		return item.Amount
	}
	return item.Quantity * item.Rate
}

func rateOf(item *domain.LineItem) float64 {
	if item.TaxRate != nil {
		return *item.TaxRate
	}
	return DefaultTaxRate
}
