package models

// DiscountType selects how a line item's discount value is interpreted.
type DiscountType string

const (
	DiscountNone    DiscountType = "none"
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// VAT rates supported on a line item, in percentage points.
const (
	VatRateZero     = 0
	VatRateReduced  = 5
	VatRateStandard = 20
)

// LineItem is one billable row of an estimate or invoice.
// The ID is stable across reorders and is what update/remove actions key on.
type LineItem struct {
	ID            string       `json:"id"`
	Description   string       `json:"description"`
	Qty           float64      `json:"qty"`
	Rate          float64      `json:"rate"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
	VatRate       int          `json:"vatRate"`
}

// LineComputation is the monetary breakdown of a single line item.
// Derived, never stored; rounding happens only at display time.
type LineComputation struct {
	Base     float64 `json:"base"`
	Discount float64 `json:"discount"`
	Net      float64 `json:"net"`
	Vat      float64 `json:"vat"`
	Gross    float64 `json:"gross"`
}

// TotalsComputation aggregates a document's line items plus shipping.
type TotalsComputation struct {
	Subtotal float64 `json:"subtotal"`
	VatTotal float64 `json:"vatTotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}
