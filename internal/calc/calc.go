// Package calc is the pure calculation engine behind the estimate builder.
// Every function tolerates arbitrary mid-edit input: NaN, infinities,
// negatives and out-of-enum values degrade to safe defaults instead of
// propagating, so the caller can recompute on every keystroke.
package calc

import (
	"math"

	"github.com/diewo77/garage-estimates/internal/models"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func toNonNegative(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return math.Max(0, v)
}

func clampRange(v, minVal, maxVal float64) float64 {
	if !isFinite(v) {
		return minVal
	}
	return math.Min(math.Max(v, minVal), maxVal)
}

func toVatRate(v int) int {
	switch v {
	case models.VatRateZero, models.VatRateReduced, models.VatRateStandard:
		return v
	}
	return models.VatRateStandard
}

func toDiscountType(v models.DiscountType) models.DiscountType {
	switch v {
	case models.DiscountNone, models.DiscountPercent, models.DiscountFixed:
		return v
	}
	return models.DiscountNone
}

// ClampLineItemValues forces a line item's numeric fields into their valid
// domain. Fixed discounts are capped at the already-clamped qty*rate so a
// discount can never push a line below zero. Idempotent.
func ClampLineItemValues(item models.LineItem) models.LineItem {
	qty := toNonNegative(item.Qty)
	rate := toNonNegative(item.Rate)
	base := qty * rate
	discountType := toDiscountType(item.DiscountType)

	discountValue := toNonNegative(item.DiscountValue)
	switch discountType {
	case models.DiscountPercent:
		discountValue = clampRange(discountValue, 0, 100)
	case models.DiscountFixed:
		discountValue = clampRange(discountValue, 0, base)
	default:
		discountValue = 0
	}

	item.Qty = qty
	item.Rate = rate
	item.DiscountType = discountType
	item.DiscountValue = discountValue
	item.VatRate = toVatRate(item.VatRate)
	return item
}

// CalculateLineItem computes the monetary breakdown of one line. The item
// is clamped first, so never-clamped input is fine. No rounding here;
// display formatting rounds.
func CalculateLineItem(item models.LineItem) models.LineComputation {
	normalized := ClampLineItemValues(item)
	base := normalized.Qty * normalized.Rate

	var discount float64
	switch normalized.DiscountType {
	case models.DiscountPercent:
		discount = base * (normalized.DiscountValue / 100)
	case models.DiscountFixed:
		discount = normalized.DiscountValue
	}

	net := math.Max(0, base-discount)
	vat := net * (float64(normalized.VatRate) / 100)

	return models.LineComputation{
		Base:     base,
		Discount: discount,
		Net:      net,
		Vat:      vat,
		Gross:    net + vat,
	}
}

// CalculateTotals aggregates the document totals. Shipping is added after
// VAT, never taxed: a deliberate business rule, not an oversight.
func CalculateTotals(lineItems []models.LineItem, shippingRaw float64) models.TotalsComputation {
	shipping := toNonNegative(shippingRaw)

	var subtotal, vatTotal float64
	for _, item := range lineItems {
		computed := CalculateLineItem(item)
		subtotal += computed.Net
		vatTotal += computed.Vat
	}

	return models.TotalsComputation{
		Subtotal: subtotal,
		VatTotal: vatTotal,
		Shipping: shipping,
		Total:    subtotal + vatTotal + shipping,
	}
}

// ClampShippingValue guards the shipping charge with the same
// non-negative-and-finite rule as other monetary fields.
func ClampShippingValue(shipping float64) float64 {
	return toNonNegative(shipping)
}
