package draft

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/garage-estimates/internal/models"
)

func TestNormalizeGarageDraftGarbageInput(t *testing.T) {
	fallback := DefaultDraft()

	for _, input := range []any{nil, "not a draft", 42.0, []any{"a", "b"}, true} {
		got := NormalizeGarageDraft(input)
		assert.Equal(t, fallback.CompanyProfile.Name, got.CompanyProfile.Name)
		require.Len(t, got.LineItems, 1)
		assert.Equal(t, 1.0, got.LineItems[0].Qty)
	}
}

func TestNormalizeGarageDraftPartialInput(t *testing.T) {
	input := map[string]any{
		"companyProfile": map[string]any{
			"name":         "Smith Motors",
			"addressLines": []any{"1 High Street", 7.0, "Leeds"},
		},
		"documentMeta": map[string]any{
			"docType":   "Invoice",
			"docNumber": "2048",
			"issueDate": "3-4-2025",
		},
		"lineItems": []any{
			map[string]any{"description": "Brake pads", "qty": "2", "rate": 45.5, "vatRate": 20.0},
			"junk entry",
		},
		"charges":    map[string]any{"shipping": -10.0},
		"notesTerms": "Payment due in 30 days.",
	}

	got := NormalizeGarageDraft(input)

	assert.Equal(t, "Smith Motors", got.CompanyProfile.Name)
	assert.Equal(t, []string{"1 High Street", "Leeds"}, got.CompanyProfile.AddressLines, "non-string entries filtered")
	assert.Equal(t, models.DocumentInvoice, got.DocumentMeta.DocType)
	assert.Equal(t, 2048, got.DocumentMeta.DocNumber, "numeric strings parsed")
	assert.Equal(t, "03-04-2025", got.DocumentMeta.IssueDate, "dates zero-padded")
	assert.Equal(t, "GBP", got.DocumentMeta.Currency)

	require.Len(t, got.LineItems, 2)
	assert.Equal(t, "Brake pads", got.LineItems[0].Description)
	assert.Equal(t, 2.0, got.LineItems[0].Qty)
	assert.Equal(t, 45.5, got.LineItems[0].Rate)
	assert.Equal(t, 1.0, got.LineItems[1].Qty, "junk entry became a default line")

	assert.Equal(t, 0.0, got.Charges.Shipping, "negative shipping clamped")
	assert.Equal(t, "Payment due in 30 days.", got.NotesTerms)
}

func TestNormalizeGarageDraftLegacyDateFormat(t *testing.T) {
	input := map[string]any{
		"documentMeta": map[string]any{"issueDate": "2024-12-05"},
	}
	got := NormalizeGarageDraft(input)
	assert.Equal(t, "05-12-2024", got.DocumentMeta.IssueDate)
}

func TestNormalizeGarageDraftUnparseableDate(t *testing.T) {
	fallback := DefaultDraft()
	input := map[string]any{
		"documentMeta": map[string]any{"issueDate": "next tuesday"},
	}
	got := NormalizeGarageDraft(input)
	assert.Equal(t, fallback.DocumentMeta.IssueDate, got.DocumentMeta.IssueDate)
}

func TestNormalizeGarageDraftEmptyLineItemsSeeded(t *testing.T) {
	got := NormalizeGarageDraft(map[string]any{"lineItems": []any{}})
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, models.DiscountNone, got.LineItems[0].DiscountType)
	assert.Equal(t, models.VatRateStandard, got.LineItems[0].VatRate)
}

func TestNormalizeGarageDraftDocNumberFloor(t *testing.T) {
	got := NormalizeGarageDraft(map[string]any{
		"documentMeta": map[string]any{"docNumber": -3.0},
	})
	assert.Equal(t, 1, got.DocumentMeta.DocNumber)

	got = NormalizeGarageDraft(map[string]any{
		"documentMeta": map[string]any{"docNumber": 12.9},
	})
	assert.Equal(t, 12, got.DocumentMeta.DocNumber)
}

func TestParseDraftJSONRoundTrip(t *testing.T) {
	original := DefaultDraft()
	original.ClientDetails.Name = "A. Driver"
	original.ClientDetails.AddressLines = []string{"2 Mill Lane"}
	original.VehicleDetails.Registration = "AB12 CDE"
	original.LineItems = []models.LineItem{
		{ID: "line-1", Description: "MOT", Qty: 1, Rate: 54.85, DiscountType: models.DiscountNone, VatRate: 0},
		{ID: "line-2", Description: "Labour", Qty: 2.5, Rate: 60, DiscountType: models.DiscountPercent, DiscountValue: 10, VatRate: 20},
	}
	original.Charges.Shipping = 4.5

	data, err := json.Marshal(original)
	require.NoError(t, err)

	restored, err := ParseDraftJSON(data)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestParseDraftJSONInvalid(t *testing.T) {
	_, err := ParseDraftJSON([]byte("{not json"))
	require.Error(t, err)
}
