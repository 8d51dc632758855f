package calc

import "github.com/diewo77/garage-estimates/internal/models"

// Violations maps a field name to a human-readable message.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// ValidateLineItem reports out-of-range values on an unclamped item so the
// UI can show inline warnings mid-edit. Advisory only: clamping, not
// validation, is what guarantees final output correctness.
func ValidateLineItem(item models.LineItem) Violations {
	v := make(Violations)

	if !isFinite(item.Qty) || item.Qty < 0 {
		v["qty"] = "Quantity cannot be negative."
	}
	if !isFinite(item.Rate) || item.Rate < 0 {
		v["rate"] = "Rate cannot be negative."
	}

	base := toNonNegative(item.Qty) * toNonNegative(item.Rate)

	if !isFinite(item.DiscountValue) || item.DiscountValue < 0 {
		v["discountValue"] = "Discount cannot be negative."
	}
	if item.DiscountType == models.DiscountPercent && (item.DiscountValue < 0 || item.DiscountValue > 100) {
		v["discountValue"] = "Percent discount must be between 0 and 100."
	}
	if item.DiscountType == models.DiscountFixed && (item.DiscountValue < 0 || item.DiscountValue > base) {
		v["discountValue"] = "Fixed discount cannot exceed the line base amount."
	}

	return v
}
