package draft

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/diewo77/garage-estimates/internal/calc"
	"github.com/diewo77/garage-estimates/internal/models"
)

// This file is the trust boundary. Everything downstream (calculation,
// layout) may assume a draft that passed through NormalizeGarageDraft is
// well-typed and range-valid. Shape mismatches never error: every field
// falls back to the default draft's value.

func asRecord(value any) (map[string]any, bool) {
	m, ok := value.(map[string]any)
	return m, ok
}

func toStringValue(value any, fallback string) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fallback
}

func toStringArray(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// toNumberValue accepts a JSON number or a numeric string; anything else,
// including NaN and infinities, falls back.
func toNumberValue(value any, fallback float64) float64 {
	switch v := value.(type) {
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return fallback
		}
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			return parsed
		}
	}
	return fallback
}

func toBoolValue(value any, fallback bool) bool {
	if b, ok := value.(bool); ok {
		return b
	}
	return fallback
}

func toDocumentType(value any) models.DocumentType {
	if value == string(models.DocumentInvoice) {
		return models.DocumentInvoice
	}
	return models.DocumentEstimate
}

func toDiscountType(value any) models.DiscountType {
	switch value {
	case string(models.DiscountPercent):
		return models.DiscountPercent
	case string(models.DiscountFixed):
		return models.DiscountFixed
	}
	return models.DiscountNone
}

func toVatRate(value any) int {
	switch toNumberValue(value, models.VatRateStandard) {
	case models.VatRateZero:
		return models.VatRateZero
	case models.VatRateReduced:
		return models.VatRateReduced
	}
	return models.VatRateStandard
}

var (
	ddmmyyyyRe = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	yyyymmddRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// toIssueDate accepts dd-mm-yyyy (1-2 digit day/month) or the legacy
// yyyy-mm-dd form and normalizes to zero-padded dd-mm-yyyy.
func toIssueDate(value any, fallback string) string {
	s, ok := value.(string)
	if !ok {
		return fallback
	}
	trimmed := strings.TrimSpace(s)
	if m := ddmmyyyyRe.FindStringSubmatch(trimmed); m != nil {
		return padDatePart(m[1]) + "-" + padDatePart(m[2]) + "-" + m[3]
	}
	if m := yyyymmddRe.FindStringSubmatch(trimmed); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	return fallback
}

func padDatePart(part string) string {
	if len(part) == 1 {
		return "0" + part
	}
	return part
}

func normalizeCompanyProfile(value any, fallback models.CompanyProfile) models.CompanyProfile {
	record, ok := asRecord(value)
	if !ok {
		return fallback
	}
	return models.CompanyProfile{
		Name:         toStringValue(record["name"], fallback.Name),
		AddressLines: toStringArray(record["addressLines"]),
		Phone:        toStringValue(record["phone"], fallback.Phone),
		Email:        toStringValue(record["email"], fallback.Email),
		VatNumber:    toStringValue(record["vatNumber"], ""),
		LogoDataURL:  toStringValue(record["logoDataUrl"], ""),
	}
}

func normalizeClientDetails(value any, fallback models.ClientDetails) models.ClientDetails {
	record, ok := asRecord(value)
	if !ok {
		return fallback
	}
	return models.ClientDetails{
		Name:              toStringValue(record["name"], fallback.Name),
		AddressLines:      toStringArray(record["addressLines"]),
		ContactNumber:     toStringValue(record["contactNumber"], fallback.ContactNumber),
		Email:             toStringValue(record["email"], fallback.Email),
		AdditionalDetails: toStringValue(record["additionalDetails"], ""),
	}
}

func normalizeVehicleDetails(value any, fallback models.VehicleDetails) models.VehicleDetails {
	record, ok := asRecord(value)
	if !ok {
		return fallback
	}
	return models.VehicleDetails{
		MakeModel:    toStringValue(record["makeModel"], fallback.MakeModel),
		Registration: toStringValue(record["registration"], fallback.Registration),
		Mileage:      toStringValue(record["mileage"], ""),
	}
}

func normalizeLineItem(value any) models.LineItem {
	defaultLine := NewLineItem()
	record, ok := asRecord(value)
	if !ok {
		return defaultLine
	}
	return calc.ClampLineItemValues(models.LineItem{
		ID:            toStringValue(record["id"], defaultLine.ID),
		Description:   toStringValue(record["description"], defaultLine.Description),
		Qty:           toNumberValue(record["qty"], defaultLine.Qty),
		Rate:          toNumberValue(record["rate"], defaultLine.Rate),
		DiscountType:  toDiscountType(record["discountType"]),
		DiscountValue: toNumberValue(record["discountValue"], defaultLine.DiscountValue),
		VatRate:       toVatRate(record["vatRate"]),
	})
}

func normalizeDocumentMeta(value any, fallback models.DocumentMeta) models.DocumentMeta {
	record, _ := asRecord(value)
	docNumber := int(math.Floor(toNumberValue(record["docNumber"], float64(fallback.DocNumber))))
	if docNumber < 1 {
		docNumber = 1
	}
	return models.DocumentMeta{
		DocType:         toDocumentType(record["docType"]),
		DocNumberPrefix: toStringValue(record["docNumberPrefix"], fallback.DocNumberPrefix),
		DocNumber:       docNumber,
		Reference:       toStringValue(record["reference"], fallback.Reference),
		IssueDate:       toIssueDate(record["issueDate"], fallback.IssueDate),
		Currency:        "GBP",
	}
}

// NormalizeGarageDraft rebuilds a well-formed draft from arbitrary
// untrusted input (imported file, stored blob). It never panics and never
// returns an empty line item list.
func NormalizeGarageDraft(input any) models.GarageEstimateDraft {
	fallback := DefaultDraft()
	record, ok := asRecord(input)
	if !ok {
		return fallback
	}

	lineItems := []models.LineItem{}
	if raw, ok := record["lineItems"].([]any); ok {
		for _, item := range raw {
			lineItems = append(lineItems, normalizeLineItem(item))
		}
	}
	if len(lineItems) == 0 {
		lineItems = []models.LineItem{NewLineItem()}
	}

	shipping := 0.0
	if charges, ok := asRecord(record["charges"]); ok {
		shipping = toNumberValue(charges["shipping"], fallback.Charges.Shipping)
	}

	return models.GarageEstimateDraft{
		CompanyProfile:      normalizeCompanyProfile(record["companyProfile"], fallback.CompanyProfile),
		ClientDetails:       normalizeClientDetails(record["clientDetails"], fallback.ClientDetails),
		VehicleDetails:      normalizeVehicleDetails(record["vehicleDetails"], fallback.VehicleDetails),
		DocumentMeta:        normalizeDocumentMeta(record["documentMeta"], fallback.DocumentMeta),
		IncludeDocumentMeta: toBoolValue(record["includeDocumentMeta"], fallback.IncludeDocumentMeta),
		LineItems:           lineItems,
		Charges:             models.Charges{Shipping: calc.ClampShippingValue(shipping)},
		NotesTerms:          toStringValue(record["notesTerms"], fallback.NotesTerms),
	}
}

// ParseDraftJSON decodes and normalizes a serialized draft. Only malformed
// JSON itself errors; any valid JSON value produces a usable draft.
func ParseDraftJSON(data []byte) (models.GarageEstimateDraft, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return models.GarageEstimateDraft{}, fmt.Errorf("parse draft: %w", err)
	}
	return NormalizeGarageDraft(parsed), nil
}
