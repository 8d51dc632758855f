package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/garage-estimates/internal/models"
)

func TestClampLineItemValues(t *testing.T) {
	tests := []struct {
		name string
		in   models.LineItem
		want models.LineItem
	}{
		{
			name: "negative values floor at zero",
			in:   models.LineItem{Qty: -3, Rate: -12, DiscountValue: -1, VatRate: 20},
			want: models.LineItem{Qty: 0, Rate: 0, DiscountType: models.DiscountNone, DiscountValue: 0, VatRate: 20},
		},
		{
			name: "non-finite collapses to zero",
			in:   models.LineItem{Qty: math.NaN(), Rate: math.Inf(1), DiscountValue: math.Inf(-1), VatRate: 20},
			want: models.LineItem{Qty: 0, Rate: 0, DiscountType: models.DiscountNone, DiscountValue: 0, VatRate: 20},
		},
		{
			name: "percent discount clamped to 100",
			in:   models.LineItem{Qty: 1, Rate: 10, DiscountType: models.DiscountPercent, DiscountValue: 120, VatRate: 5},
			want: models.LineItem{Qty: 1, Rate: 10, DiscountType: models.DiscountPercent, DiscountValue: 100, VatRate: 5},
		},
		{
			name: "fixed discount capped at clamped base",
			in:   models.LineItem{Qty: 1, Rate: 40, DiscountType: models.DiscountFixed, DiscountValue: 100, VatRate: 20},
			want: models.LineItem{Qty: 1, Rate: 40, DiscountType: models.DiscountFixed, DiscountValue: 40, VatRate: 20},
		},
		{
			name: "none forces discount value to zero",
			in:   models.LineItem{Qty: 2, Rate: 5, DiscountType: models.DiscountNone, DiscountValue: 3, VatRate: 0},
			want: models.LineItem{Qty: 2, Rate: 5, DiscountType: models.DiscountNone, DiscountValue: 0, VatRate: 0},
		},
		{
			name: "invalid discount type becomes none",
			in:   models.LineItem{Qty: 1, Rate: 1, DiscountType: "buy-one-get-one", DiscountValue: 9, VatRate: 20},
			want: models.LineItem{Qty: 1, Rate: 1, DiscountType: models.DiscountNone, DiscountValue: 0, VatRate: 20},
		},
		{
			name: "invalid vat rate falls back to standard",
			in:   models.LineItem{Qty: 1, Rate: 1, VatRate: 17},
			want: models.LineItem{Qty: 1, Rate: 1, DiscountType: models.DiscountNone, VatRate: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampLineItemValues(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ClampLineItemValues(got), "clamping must be idempotent")
		})
	}
}

func TestCalculateLineItemPercentDiscount(t *testing.T) {
	item := models.LineItem{Qty: 2, Rate: 50, DiscountType: models.DiscountPercent, DiscountValue: 10, VatRate: 20}
	got := CalculateLineItem(item)

	assert.InDelta(t, 100, got.Base, 1e-9)
	assert.InDelta(t, 10, got.Discount, 1e-9)
	assert.InDelta(t, 90, got.Net, 1e-9)
	assert.InDelta(t, 18, got.Vat, 1e-9)
	assert.InDelta(t, 108, got.Gross, 1e-9)
}

func TestCalculateLineItemFixedDiscountClamped(t *testing.T) {
	item := models.LineItem{Qty: 1, Rate: 40, DiscountType: models.DiscountFixed, DiscountValue: 100, VatRate: 20}
	got := CalculateLineItem(item)

	assert.InDelta(t, 40, got.Discount, 1e-9)
	assert.Zero(t, got.Net)
	assert.Zero(t, got.Vat)
	assert.Zero(t, got.Gross)
}

func TestCalculateLineItemNeverNegative(t *testing.T) {
	items := []models.LineItem{
		{Qty: -5, Rate: 10, VatRate: 20},
		{Qty: 1, Rate: 100, DiscountType: models.DiscountPercent, DiscountValue: 500, VatRate: 20},
		{Qty: 3, Rate: 7, DiscountType: models.DiscountFixed, DiscountValue: 9999, VatRate: 5},
		{Qty: math.NaN(), Rate: math.Inf(1), VatRate: -4},
	}
	for _, item := range items {
		got := CalculateLineItem(item)
		assert.GreaterOrEqual(t, got.Net, 0.0)
		assert.GreaterOrEqual(t, got.Vat, 0.0)
		assert.GreaterOrEqual(t, got.Gross, got.Net)
	}
}

func TestCalculateTotals(t *testing.T) {
	items := []models.LineItem{
		{Qty: 1, Rate: 100, VatRate: 20},
		{Qty: 2, Rate: 50, VatRate: 5},
	}
	got := CalculateTotals(items, 10)

	assert.InDelta(t, 200, got.Subtotal, 1e-9)
	assert.InDelta(t, 25, got.VatTotal, 1e-9)
	assert.InDelta(t, 10, got.Shipping, 1e-9)
	assert.InDelta(t, 235, got.Total, 1e-9)
}

func TestCalculateTotalsAdditivity(t *testing.T) {
	items := []models.LineItem{
		{Qty: 3, Rate: 19.99, DiscountType: models.DiscountPercent, DiscountValue: 12.5, VatRate: 20},
		{Qty: 0.5, Rate: 80, DiscountType: models.DiscountFixed, DiscountValue: 5, VatRate: 5},
		{Qty: 1, Rate: 0, VatRate: 0},
	}
	totals := CalculateTotals(items, 0)

	var wantSubtotal float64
	for _, item := range items {
		wantSubtotal += CalculateLineItem(item).Net
	}
	assert.InDelta(t, wantSubtotal, totals.Subtotal, 1e-9)
}

func TestShippingExcludedFromVat(t *testing.T) {
	items := []models.LineItem{{Qty: 4, Rate: 25, VatRate: 20}}

	without := CalculateTotals(items, 0)
	with := CalculateTotals(items, 50)

	assert.Equal(t, without.VatTotal, with.VatTotal, "shipping must never change the VAT total")
	assert.InDelta(t, without.Total+50, with.Total, 1e-9)
}

func TestClampShippingValue(t *testing.T) {
	assert.Equal(t, 0.0, ClampShippingValue(-3))
	assert.Equal(t, 0.0, ClampShippingValue(math.NaN()))
	assert.Equal(t, 0.0, ClampShippingValue(math.Inf(1)))
	assert.Equal(t, 12.5, ClampShippingValue(12.5))
}

func TestValidateLineItem(t *testing.T) {
	v := ValidateLineItem(models.LineItem{Qty: -1, Rate: -2, DiscountValue: -3, VatRate: 20})
	require.Len(t, v, 3)
	assert.Contains(t, v["qty"], "negative")
	assert.Contains(t, v["rate"], "negative")
	assert.Contains(t, v["discountValue"], "negative")

	v = ValidateLineItem(models.LineItem{Qty: 1, Rate: 10, DiscountType: models.DiscountPercent, DiscountValue: 120, VatRate: 20})
	require.Len(t, v, 1)
	assert.Contains(t, v["discountValue"], "between 0 and 100")

	v = ValidateLineItem(models.LineItem{Qty: 1, Rate: 10, DiscountType: models.DiscountFixed, DiscountValue: 11, VatRate: 20})
	require.Len(t, v, 1)
	assert.Contains(t, v["discountValue"], "exceed")

	v = ValidateLineItem(models.LineItem{Qty: 2, Rate: 50, DiscountType: models.DiscountPercent, DiscountValue: 10, VatRate: 20})
	assert.True(t, v.Empty())
}
