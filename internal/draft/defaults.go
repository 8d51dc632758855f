// Package draft owns the GarageEstimateDraft lifecycle outside of
// rendering: defaults, defensive normalization of untrusted JSON, the pure
// edit reducer, and display formatting.
package draft

import (
	"time"

	"github.com/google/uuid"

	"github.com/diewo77/garage-estimates/internal/models"
)

// StorageKey is the slot the browser tool persisted its draft under; the
// store keeps the same key so exported blobs stay interchangeable.
const StorageKey = "garageEstimatesDraft:v1"

// NewLineItemID returns an opaque identifier that stays stable across
// reorders.
func NewLineItemID() string {
	return uuid.NewString()
}

// NewLineItem returns a blank line with the editing defaults: one unit at a
// zero rate, no discount, standard VAT.
func NewLineItem() models.LineItem {
	return models.LineItem{
		ID:           NewLineItemID(),
		Qty:          1,
		Rate:         0,
		DiscountType: models.DiscountNone,
		VatRate:      models.VatRateStandard,
	}
}

// DefaultDraft seeds a fresh document. It doubles as the fallback source
// for every field during normalization.
func DefaultDraft() models.GarageEstimateDraft {
	return models.GarageEstimateDraft{
		CompanyProfile: models.CompanyProfile{
			Name:         "Browns Road Garage",
			AddressLines: []string{"71-75 Browns Road", "Surbiton"},
			Phone:        "020 ...",
			Email:        "service@company.co.uk",
		},
		ClientDetails: models.ClientDetails{
			AddressLines: []string{},
		},
		DocumentMeta: models.DocumentMeta{
			DocType:   models.DocumentEstimate,
			DocNumber: 1001,
			IssueDate: FormatDateToDDMMYYYY(time.Now()),
			Currency:  "GBP",
		},
		IncludeDocumentMeta: true,
		LineItems:           []models.LineItem{NewLineItem()},
		NotesTerms:          "Estimate valid for 14 days. Parts are subject to availability.",
	}
}
