package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filingdesk/internal/billing"
	"filingdesk/internal/domain"
)

func taxRate(r float64) *float64 { return &r }

func TestCompute_TwoItemsWithPercentageDiscount(t *testing.T) {
	// Items 1000 + 500, 10% discount, 18% GST on both.
	items := []domain.LineItem{
		{Description: "GSTR-1 filing", Quantity: 1, Rate: 1000, Taxable: true},
		{Description: "Reconciliation", Quantity: 1, Rate: 500, Taxable: true},
	}
	discount := domain.Discount{Type: domain.DiscountPercentage, Val: 10}

	totals, err := billing.Compute(items, discount, billing.Overrides{})
	require.NoError(t, err)

	assert.InDelta(t, 1500.0, totals.Subtotal, 0.001)
	assert.InDelta(t, 150.0, totals.DiscountAmount, 0.001)
	// Tax is computed on the pre-discount amounts: 18% of 1500.
	assert.InDelta(t, 270.0, totals.TaxAmount, 0.001)
	assert.InDelta(t, 1620.0, totals.TotalAmount, 0.001)
}

func TestCompute_FlatDiscount(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: 2, Rate: 250, Taxable: false},
	}
	discount := domain.Discount{Type: domain.DiscountFlat, Val: 100}

	totals, err := billing.Compute(items, discount, billing.Overrides{})
	require.NoError(t, err)

	assert.InDelta(t, 500.0, totals.Subtotal, 0.001)
	assert.InDelta(t, 100.0, totals.DiscountAmount, 0.001)
	assert.Zero(t, totals.TaxAmount)
	assert.InDelta(t, 400.0, totals.TotalAmount, 0.001)
}

func TestCompute_PerItemTaxRate(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: 1, Rate: 1000, Taxable: true, TaxRate: taxRate(12)},
		{Quantity: 1, Rate: 1000, Taxable: true}, // default 18%
	}

	totals, err := billing.Compute(items, domain.Discount{}, billing.Overrides{})
	require.NoError(t, err)

	assert.InDelta(t, 300.0, totals.TaxAmount, 0.001) // 120 + 180
	assert.InDelta(t, 2300.0, totals.TotalAmount, 0.001)
}

func TestCompute_AmountTakesPrecedenceOverQuantityRate(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: 3, Rate: 100, Amount: 250, Taxable: false},
	}

	totals, err := billing.Compute(items, domain.Discount{}, billing.Overrides{})
	require.NoError(t, err)

	assert.InDelta(t, 250.0, totals.Subtotal, 0.001)
}

func TestCompute_Overrides(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: 1, Rate: 1000, Taxable: true},
	}
	ov := billing.Overrides{
		Subtotal:  billing.Provided(900),
		TaxAmount: billing.Provided(100),
	}

	totals, err := billing.Compute(items, domain.Discount{}, ov)
	require.NoError(t, err)

	assert.InDelta(t, 900.0, totals.Subtotal, 0.001)
	assert.InDelta(t, 100.0, totals.TaxAmount, 0.001)
	assert.InDelta(t, 1000.0, totals.TotalAmount, 0.001)

	ov.TotalAmount = billing.Provided(1234)
	totals, err = billing.Compute(items, domain.Discount{}, ov)
	require.NoError(t, err)
	assert.InDelta(t, 1234.0, totals.TotalAmount, 0.001)
}

func TestCompute_ZeroOverrideIsRespected(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: 1, Rate: 1000, Taxable: true},
	}
	ov := billing.Overrides{TaxAmount: billing.Provided(0)}

	totals, err := billing.Compute(items, domain.Discount{}, ov)
	require.NoError(t, err)

	assert.Zero(t, totals.TaxAmount)
	assert.InDelta(t, 1000.0, totals.TotalAmount, 0.001)
}

func TestCompute_NegativeTotalNotClamped(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: 1, Rate: 50, Taxable: false},
	}
	discount := domain.Discount{Type: domain.DiscountFlat, Val: 100}

	totals, err := billing.Compute(items, discount, billing.Overrides{})
	require.NoError(t, err)

	assert.InDelta(t, -50.0, totals.TotalAmount, 0.001)
}

func TestCompute_EmptyItems(t *testing.T) {
	totals, err := billing.Compute(nil, domain.Discount{}, billing.Overrides{})
	require.NoError(t, err)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.TaxAmount)
	assert.Zero(t, totals.TotalAmount)
}

func TestValidateDiscount(t *testing.T) {
	t.Run("percentage_in_range", func(t *testing.T) {
		err := billing.ValidateDiscount(domain.Discount{Type: domain.DiscountPercentage, Val: 50})
		assert.NoError(t, err)
	})

	t.Run("percentage_over_100", func(t *testing.T) {
		err := billing.ValidateDiscount(domain.Discount{Type: domain.DiscountPercentage, Val: 101})
		assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
	})

	t.Run("negative_flat", func(t *testing.T) {
		err := billing.ValidateDiscount(domain.Discount{Type: domain.DiscountFlat, Val: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
	})

	t.Run("value_without_type", func(t *testing.T) {
		err := billing.ValidateDiscount(domain.Discount{Val: 10})
		assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
	})

	t.Run("empty_discount", func(t *testing.T) {
		err := billing.ValidateDiscount(domain.Discount{})
		assert.NoError(t, err)
	})

	t.Run("unknown_type", func(t *testing.T) {
		err := billing.ValidateDiscount(domain.Discount{Type: "bogus", Val: 10})
		assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
	})
}

func TestSplitGST(t *testing.T) {
	t.Run("intrastate", func(t *testing.T) {
		cgst, sgst, igst := billing.SplitGST(270, false)
		assert.InDelta(t, 135.0, cgst, 0.001)
		assert.InDelta(t, 135.0, sgst, 0.001)
		assert.Zero(t, igst)
	})

	t.Run("interstate", func(t *testing.T) {
		cgst, sgst, igst := billing.SplitGST(270, true)
		assert.Zero(t, cgst)
		assert.Zero(t, sgst)
		assert.InDelta(t, 270.0, igst, 0.001)
	})
}

func TestSettled(t *testing.T) {
	assert.True(t, billing.Settled(1000, 1000))
	assert.True(t, billing.Settled(1000, 999.995))
	assert.True(t, billing.Settled(1000, 1000.50))
	assert.False(t, billing.Settled(1000, 999.98))
	assert.False(t, billing.Settled(1000, 500))
}

func TestNormalizeItems(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: 2, Rate: 100},
		{Amount: 300},
	}

	out := billing.NormalizeItems(items)
	require.Len(t, out, 2)
	assert.InDelta(t, 200.0, out[0].Amount, 0.001)
	assert.InDelta(t, 300.0, out[1].Amount, 0.001)
	// The input is not mutated.
	assert.Zero(t, items[0].Amount)
}

func TestAggregateRate(t *testing.T) {
	assert.InDelta(t, billing.DefaultTaxRate, billing.AggregateRate(nil), 0.001)
	assert.InDelta(t, 12.0, billing.AggregateRate([]domain.LineItem{
		{Taxable: false, TaxRate: taxRate(5)},
		{Taxable: true, TaxRate: taxRate(12)},
	}), 0.001)
}
