// Package handlers exposes the draft workflow over HTTP: load/save/clear,
// totals, advisory validation, and PDF download.
package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/diewo77/garage-estimates/internal/draft"
	"github.com/diewo77/garage-estimates/internal/httpx"
	"github.com/diewo77/garage-estimates/internal/models"
	"github.com/diewo77/garage-estimates/internal/storage"
)

// maxDraftBody caps request bodies; logos travel as base64 data URIs so
// drafts can be a few megabytes.
const maxDraftBody = 8 << 20

type DraftHandler struct {
	store *storage.Store
}

func NewDraftHandler(store *storage.Store) *DraftHandler {
	return &DraftHandler{store: store}
}

// Get returns the stored draft, or the default draft when nothing usable
// is stored.
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.store.Load(draft.StorageKey)
	if !ok {
		d = draft.DefaultDraft()
	}
	httpx.JSON(w, http.StatusOK, d)
}

// Save normalizes the posted draft and stores it, echoing the normalized
// form so the client sees exactly what was kept.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	d, ok := readDraft(w, r)
	if !ok {
		return
	}
	if err := h.store.Save(draft.StorageKey, d); err != nil {
		log.Printf("save draft: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "storage_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

// Clear deletes the stored draft.
func (h *DraftHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(draft.StorageKey); err != nil {
		log.Printf("clear draft: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "storage_error", nil)
		return
	}
	httpx.NoContent(w)
}

// readDraft reads and normalizes a draft body. Only byte-level problems
// (unreadable body, invalid JSON) reject the request; odd shapes and bad
// numbers are absorbed by normalization.
func readDraft(w http.ResponseWriter, r *http.Request) (models.GarageEstimateDraft, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDraftBody))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unreadable_body", nil)
		return models.GarageEstimateDraft{}, false
	}
	parsed, err := draft.ParseDraftJSON(body)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return models.GarageEstimateDraft{}, false
	}
	return parsed, true
}
