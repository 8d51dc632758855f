// Package pdf renders a GarageEstimateDraft as a paginated A4 document.
// Layout code draws through the Canvas interface; the production
// implementation wraps github.com/go-pdf/fpdf in point units.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-pdf/fpdf"
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B int
}

// ImageRef identifies a registered image plus its intrinsic pixel size,
// used for aspect-preserving scaling.
type ImageRef struct {
	name string
	w, h float64
}

// Canvas is the drawing surface the layout engine writes to. Coordinates
// are points with the origin top-left; text y positions are baselines.
type Canvas interface {
	AddPage()
	SetPage(n int)
	PageCount() int
	// TextWidth measures text in the given font style ("" regular, "B"
	// bold) at the given size.
	TextWidth(text, style string, size float64) float64
	DrawText(text string, x, y float64, style string, size float64, color RGB)
	// DrawRect draws a rectangle from its top-left corner; nil fill or
	// border skips that part.
	DrawRect(x, y, w, h float64, fill, border *RGB)
	DrawLine(x1, y1, x2, y2 float64, color RGB)
	RegisterImage(name, imageType string, data []byte) (*ImageRef, error)
	DrawImage(img *ImageRef, x, y, w, h float64)
	Output() ([]byte, error)
}

const fontFamily = "Helvetica"

type fpdfCanvas struct {
	pdf *fpdf.Fpdf
	// The core fonts are cp1252, not UTF-8; every string must pass through
	// this translator or "£" arrives as the two raw bytes 0xC2 0xA3 and
	// renders "Â£".
	tr func(string) string
}

func newFpdfCanvas() *fpdfCanvas {
	p := fpdf.New("P", "pt", "A4", "")
	p.SetAutoPageBreak(false, 0)
	p.SetMargins(0, 0, 0)
	p.SetLineWidth(1)
	return &fpdfCanvas{pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

func (c *fpdfCanvas) AddPage()       { c.pdf.AddPage() }
func (c *fpdfCanvas) SetPage(n int)  { c.pdf.SetPage(n) }
func (c *fpdfCanvas) PageCount() int { return c.pdf.PageCount() }

func (c *fpdfCanvas) TextWidth(text, style string, size float64) float64 {
	c.pdf.SetFont(fontFamily, style, size)
	return c.pdf.GetStringWidth(c.tr(text))
}

func (c *fpdfCanvas) DrawText(text string, x, y float64, style string, size float64, color RGB) {
	c.pdf.SetFont(fontFamily, style, size)
	c.pdf.SetTextColor(color.R, color.G, color.B)
	c.pdf.Text(x, y, c.tr(text))
}

func (c *fpdfCanvas) DrawRect(x, y, w, h float64, fill, border *RGB) {
	if fill != nil {
		c.pdf.SetFillColor(fill.R, fill.G, fill.B)
		c.pdf.Rect(x, y, w, h, "F")
	}
	if border != nil {
		c.pdf.SetDrawColor(border.R, border.G, border.B)
		c.pdf.Rect(x, y, w, h, "D")
	}
}

func (c *fpdfCanvas) DrawLine(x1, y1, x2, y2 float64, color RGB) {
	c.pdf.SetDrawColor(color.R, color.G, color.B)
	c.pdf.Line(x1, y1, x2, y2)
}

// RegisterImage validates the image bytes before handing them to fpdf so a
// corrupt logo cannot poison the document's error state.
func (c *fpdfCanvas) RegisterImage(name, imageType string, data []byte) (*ImageRef, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	info := c.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if info == nil || c.pdf.Err() {
		return nil, fmt.Errorf("register image: %w", c.pdf.Error())
	}
	return &ImageRef{name: name, w: float64(cfg.Width), h: float64(cfg.Height)}, nil
}

func (c *fpdfCanvas) DrawImage(img *ImageRef, x, y, w, h float64) {
	c.pdf.ImageOptions(img.name, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
}

func (c *fpdfCanvas) Output() ([]byte, error) {
	if c.pdf.Err() {
		return nil, c.pdf.Error()
	}
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
