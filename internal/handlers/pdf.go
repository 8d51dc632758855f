package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/diewo77/garage-estimates/internal/draft"
	"github.com/diewo77/garage-estimates/internal/httpx"
	"github.com/diewo77/garage-estimates/internal/models"
	"github.com/diewo77/garage-estimates/internal/pdf"
	"github.com/diewo77/garage-estimates/internal/storage"
)

// PDFHandler renders drafts to PDF, either from the request body or from
// the stored draft.
type PDFHandler struct {
	store *storage.Store
}

func NewPDFHandler(store *storage.Store) *PDFHandler {
	return &PDFHandler{store: store}
}

// Render generates a PDF from the posted draft.
func (h *PDFHandler) Render(w http.ResponseWriter, r *http.Request) {
	d, ok := readDraft(w, r)
	if !ok {
		return
	}
	h.writePDF(w, d)
}

// RenderStored generates a PDF from the stored draft, falling back to the
// default draft when nothing is stored.
func (h *PDFHandler) RenderStored(w http.ResponseWriter, r *http.Request) {
	d, ok := h.store.Load(draft.StorageKey)
	if !ok {
		d = draft.DefaultDraft()
	}
	h.writePDF(w, d)
}

func (h *PDFHandler) writePDF(w http.ResponseWriter, d models.GarageEstimateDraft) {
	out, err := pdf.Generate(d)
	if err != nil {
		log.Printf("render pdf: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "render_error", nil)
		return
	}

	filename := draft.BuildPDFFilename(d)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
