package draft

import (
	"github.com/diewo77/garage-estimates/internal/calc"
	"github.com/diewo77/garage-estimates/internal/models"
)

// The reducer reframes the original form state handlers as a pure
// (draft, action) -> draft step. Actions never fail: unknown IDs and
// out-of-range moves are no-ops, and destructive actions keep the
// never-empty line item invariant.

// Action is one edit applied to a draft.
type Action interface {
	apply(d models.GarageEstimateDraft) models.GarageEstimateDraft
}

// Apply returns a new draft with the action applied. The input draft is
// never mutated.
func Apply(d models.GarageEstimateDraft, a Action) models.GarageEstimateDraft {
	return a.apply(cloneDraft(d))
}

func cloneDraft(d models.GarageEstimateDraft) models.GarageEstimateDraft {
	items := make([]models.LineItem, len(d.LineItems))
	copy(items, d.LineItems)
	d.LineItems = items
	d.CompanyProfile.AddressLines = append([]string(nil), d.CompanyProfile.AddressLines...)
	d.ClientDetails.AddressLines = append([]string(nil), d.ClientDetails.AddressLines...)
	return d
}

func findLineItem(items []models.LineItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// AddLineItem appends a blank default line.
type AddLineItem struct{}

func (AddLineItem) apply(d models.GarageEstimateDraft) models.GarageEstimateDraft {
	d.LineItems = append(d.LineItems, NewLineItem())
	return d
}

// LineItemPatch is a sparse field update; nil fields are left untouched.
// Values are stored raw so a half-typed number survives mid-edit; a
// CommitLineItem (or PDF generation) clamps them.
type LineItemPatch struct {
	Description   *string
	Qty           *float64
	Rate          *float64
	DiscountType  *models.DiscountType
	DiscountValue *float64
	VatRate       *int
}

// UpdateLineItem patches one line by ID.
type UpdateLineItem struct {
	ID    string
	Patch LineItemPatch
}

func (a UpdateLineItem) apply(d models.GarageEstimateDraft) models.GarageEstimateDraft {
	i := findLineItem(d.LineItems, a.ID)
	if i < 0 {
		return d
	}
	item := d.LineItems[i]
	if a.Patch.Description != nil {
		item.Description = *a.Patch.Description
	}
	if a.Patch.Qty != nil {
		item.Qty = *a.Patch.Qty
	}
	if a.Patch.Rate != nil {
		item.Rate = *a.Patch.Rate
	}
	if a.Patch.DiscountType != nil {
		item.DiscountType = *a.Patch.DiscountType
	}
	if a.Patch.DiscountValue != nil {
		item.DiscountValue = *a.Patch.DiscountValue
	}
	if a.Patch.VatRate != nil {
		item.VatRate = *a.Patch.VatRate
	}
	d.LineItems[i] = item
	return d
}

// CommitLineItem clamps one line's values, the blur-event counterpart of
// UpdateLineItem.
type CommitLineItem struct{ ID string }

func (a CommitLineItem) apply(d models.GarageEstimateDraft) models.GarageEstimateDraft {
	i := findLineItem(d.LineItems, a.ID)
	if i < 0 {
		return d
	}
	d.LineItems[i] = calc.ClampLineItemValues(d.LineItems[i])
	return d
}

// RemoveLineItem deletes one line; removing the last remaining line resets
// it to a blank default instead of leaving the list empty.
type RemoveLineItem struct{ ID string }

func (a RemoveLineItem) apply(d models.GarageEstimateDraft) models.GarageEstimateDraft {
	i := findLineItem(d.LineItems, a.ID)
	if i < 0 {
		return d
	}
	if len(d.LineItems) == 1 {
		d.LineItems = []models.LineItem{NewLineItem()}
		return d
	}
	d.LineItems = append(d.LineItems[:i], d.LineItems[i+1:]...)
	return d
}

// MoveLineItem shifts a line up (negative delta) or down; moves past either
// end are no-ops.
type MoveLineItem struct {
	ID    string
	Delta int
}

func (a MoveLineItem) apply(d models.GarageEstimateDraft) models.GarageEstimateDraft {
	i := findLineItem(d.LineItems, a.ID)
	if i < 0 {
		return d
	}
	j := i + a.Delta
	if j < 0 || j >= len(d.LineItems) {
		return d
	}
	d.LineItems[i], d.LineItems[j] = d.LineItems[j], d.LineItems[i]
	return d
}

// ClearLineItems drops every line and seeds one blank default.
type ClearLineItems struct{}

func (ClearLineItems) apply(d models.GarageEstimateDraft) models.GarageEstimateDraft {
	d.LineItems = []models.LineItem{NewLineItem()}
	return d
}

// SetShipping updates the shipping charge, clamped to non-negative.
type SetShipping struct{ Value float64 }

func (a SetShipping) apply(d models.GarageEstimateDraft) models.GarageEstimateDraft {
	d.Charges.Shipping = calc.ClampShippingValue(a.Value)
	return d
}

// SetNotes replaces the notes/terms text.
type SetNotes struct{ Text string }

func (a SetNotes) apply(d models.GarageEstimateDraft) models.GarageEstimateDraft {
	d.NotesTerms = a.Text
	return d
}

// SetIncludeDocumentMeta toggles the document meta block on the PDF.
type SetIncludeDocumentMeta struct{ Include bool }

func (a SetIncludeDocumentMeta) apply(d models.GarageEstimateDraft) models.GarageEstimateDraft {
	d.IncludeDocumentMeta = a.Include
	return d
}
