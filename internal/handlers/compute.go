package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/diewo77/garage-estimates/internal/calc"
	"github.com/diewo77/garage-estimates/internal/httpx"
	"github.com/diewo77/garage-estimates/internal/models"
)

// ComputeHandler exposes the calculation engine: document totals and
// advisory per-line validation. Stateless.
type ComputeHandler struct{}

func NewComputeHandler() *ComputeHandler {
	return &ComputeHandler{}
}

type totalsResponse struct {
	Lines  []models.LineComputation `json:"lines"`
	Totals models.TotalsComputation `json:"totals"`
}

// Totals normalizes the posted draft and returns its per-line breakdowns
// plus the document totals.
func (h *ComputeHandler) Totals(w http.ResponseWriter, r *http.Request) {
	d, ok := readDraft(w, r)
	if !ok {
		return
	}

	resp := totalsResponse{
		Lines:  make([]models.LineComputation, 0, len(d.LineItems)),
		Totals: calc.CalculateTotals(d.LineItems, d.Charges.Shipping),
	}
	for _, item := range d.LineItems {
		resp.Lines = append(resp.Lines, calc.CalculateLineItem(item))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

type validateResponse struct {
	Valid      bool            `json:"valid"`
	Violations calc.Violations `json:"violations,omitempty"`
}

// ValidateLineItem checks a single raw line item and returns any advisory
// violations. Raw values are validated as posted; nothing is clamped first,
// otherwise every item would look valid.
func (h *ComputeHandler) ValidateLineItem(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDraftBody))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unreadable_body", nil)
		return
	}
	var item models.LineItem
	if err := json.Unmarshal(body, &item); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	violations := calc.ValidateLineItem(item)
	httpx.JSON(w, http.StatusOK, validateResponse{
		Valid:      violations.Empty(),
		Violations: violations,
	})
}
