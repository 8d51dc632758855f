package pdf

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/diewo77/garage-estimates/internal/calc"
	"github.com/diewo77/garage-estimates/internal/draft"
	"github.com/diewo77/garage-estimates/internal/models"
)

const (
	pageWidth  = 595.28
	pageHeight = 841.89
	pageMargin = 36

	tableHeaderHeight = 22
	rowMinHeight      = 24
	rowLineHeight     = 11
	notesLineHeight   = 12
)

type tableColumn struct {
	key   string
	label string
	width float64
}

var tableColumns = []tableColumn{
	{"description", "Description", 220},
	{"qty", "Qty", 38},
	{"rate", "Rate", 70},
	{"discount", "Disc", 64},
	{"vat", "VAT", 44},
	{"amount", "Amount", 87},
}

var (
	textColor     = RGB{31, 31, 36}
	mutedText     = RGB{89, 92, 102}
	tableBorder   = RGB{199, 204, 217}
	tableHeaderBG = RGB{237, 242, 250}
	altRowBG      = RGB{251, 252, 254}
)

// Generate lays out the draft onto A4 pages and returns the finished PDF
// bytes. The draft is expected to have been clamped/normalized upstream;
// per-line amounts still clamp internally so a stray raw value cannot
// produce negative money.
func Generate(d models.GarageEstimateDraft) ([]byte, error) {
	c := newFpdfCanvas()
	if err := render(c, d); err != nil {
		return nil, fmt.Errorf("garage pdf: %w", err)
	}
	out, err := c.Output()
	if err != nil {
		return nil, fmt.Errorf("garage pdf: %w", err)
	}
	return out, nil
}

// render drives the whole layout against a canvas. Split from Generate so
// tests can inspect pagination on a recording canvas.
func render(c Canvas, d models.GarageEstimateDraft) error {
	g := &generator{c: c, draft: d}
	g.logo = maybeEmbedLogo(c, d.CompanyProfile.LogoDataURL)

	c.AddPage()
	y := g.drawDocumentHeader()

	const columnGap = 12
	blockWidth := (pageWidth - pageMargin*2 - columnGap) / 2

	billToLines := append([]string{d.ClientDetails.Name}, d.ClientDetails.AddressLines...)
	billToLines = append(billToLines, d.ClientDetails.ContactNumber, d.ClientDetails.Email, d.ClientDetails.AdditionalDetails)
	billToLines = filterBlank(billToLines)

	vehicleLines := []string{
		"Make / Model: " + orDash(d.VehicleDetails.MakeModel),
		"Registration: " + orDash(d.VehicleDetails.Registration),
		"Mileage: " + orDash(d.VehicleDetails.Mileage),
	}
	if d.IncludeDocumentMeta {
		vehicleLines = append(vehicleLines,
			"Reference: "+orDash(d.DocumentMeta.Reference),
			"Date: "+d.DocumentMeta.IssueDate,
		)
	}

	leftBottom := g.drawSectionBlock("Bill To", billToLines, pageMargin, y, blockWidth)
	rightBottom := g.drawSectionBlock("Vehicle", vehicleLines, pageMargin+blockWidth+columnGap, y, blockWidth)

	y = math.Max(leftBottom, rightBottom) + 18
	y = g.drawTableHeader(y)

	for i, item := range d.LineItems {
		descLines := g.wrapDescription(item.Description)
		rowHeight := math.Max(rowMinHeight, float64(len(descLines))*rowLineHeight+8)

		if y+rowHeight > pageHeight-pageMargin-150 {
			y = g.startContinuationPage()
			y = g.drawTableHeader(y)
		}
		y = g.drawLineItemRow(y, item, i, descLines, rowHeight)
	}

	totals := calc.CalculateTotals(d.LineItems, d.Charges.Shipping)

	if y+120 > pageHeight-pageMargin-100 {
		y = g.startContinuationPage()
	}
	y = g.drawTotalsBox(y+8, totals) + 14

	if strings.TrimSpace(d.NotesTerms) != "" {
		g.drawNotes(y, d.NotesTerms)
	}

	g.drawPageFooters()
	return nil
}

type generator struct {
	c     Canvas
	draft models.GarageEstimateDraft
	logo  *ImageRef
}

func (g *generator) measure(style string, size float64) func(string) float64 {
	return func(s string) float64 { return g.c.TextWidth(s, style, size) }
}

func (g *generator) wrapDescription(description string) []string {
	text := strings.TrimSpace(description)
	if text == "" {
		text = "-"
	}
	return wrapText(g.measure("", 9), text, 210)
}

func (g *generator) drawRightAlignedText(text string, rightX, y float64, style string, size float64, color RGB) {
	w := g.c.TextWidth(text, style, size)
	g.c.DrawText(text, rightX-w, y, style, size, color)
}

func (g *generator) buildDocNumber() string {
	return g.draft.DocumentMeta.DocNumberPrefix + strconv.Itoa(g.draft.DocumentMeta.DocNumber)
}

// drawDocumentHeader renders the company block (with optional logo) on the
// left and, when enabled, the document meta block on the right. Returns the
// cursor below the taller of the two columns.
func (g *generator) drawDocumentHeader() float64 {
	d := g.draft
	leftX := float64(pageMargin)

	contactLines := filterBlank(append(
		displayLines(d.CompanyProfile.AddressLines),
		d.CompanyProfile.Phone,
		d.CompanyProfile.Email,
		vatLine(d.CompanyProfile.VatNumber),
	))

	const nameLineHeight = 30.0
	const contactLineHeight = 11.0
	textBlockHeight := nameLineHeight + float64(len(contactLines))*contactLineHeight

	if g.logo != nil {
		logoSize := textBlockHeight
		scale := math.Min(math.Min(logoSize/g.logo.w, logoSize/g.logo.h), 1)
		drawW := g.logo.w * scale
		drawH := g.logo.h * scale
		g.c.DrawImage(g.logo, pageMargin+(logoSize-drawW)/2, pageMargin+(logoSize-drawH)/2, drawW, drawH)
		leftX += logoSize + 10
	}

	companyName := d.CompanyProfile.Name
	if companyName == "" {
		companyName = "Garage Company"
	}
	g.c.DrawText(companyName, leftX, pageMargin+14, "B", 16, textColor)

	leftY := pageMargin + nameLineHeight
	for _, line := range contactLines {
		g.c.DrawText(line, leftX, leftY, "", 9, mutedText)
		leftY += contactLineHeight
	}

	bottomY := leftY

	if d.IncludeDocumentMeta {
		rightX := float64(pageWidth - pageMargin)

		g.drawRightAlignedText(string(d.DocumentMeta.DocType), rightX, pageMargin+12, "B", 16, textColor)
		rightY := pageMargin + 34.0

		g.drawRightAlignedText("No: "+g.buildDocNumber(), rightX, rightY, "B", 12, textColor)
		rightY += 16

		g.drawRightAlignedText("Date: "+d.DocumentMeta.IssueDate, rightX, rightY, "", 10, mutedText)
		rightY += 12

		if d.DocumentMeta.Reference != "" {
			g.drawRightAlignedText("Ref: "+d.DocumentMeta.Reference, rightX, rightY, "", 10, mutedText)
			rightY += 12
		}

		bottomY = math.Max(leftY, rightY)
	}

	return bottomY + 16
}

// drawSectionBlock draws a bordered titled box whose height grows with its
// content, with an 88pt floor. Returns the box's bottom edge.
func (g *generator) drawSectionBlock(title string, lines []string, x, yTop, width float64) float64 {
	visible := displayLines(lines)
	height := math.Max(88, 30+float64(len(visible))*12)

	g.c.DrawRect(x, yTop, width, height, nil, &tableBorder)
	g.c.DrawText(title, x+10, yTop+16, "B", 10, mutedText)

	y := yTop + 30.0
	for _, line := range visible {
		g.c.DrawText(line, x+10, y, "", 10, textColor)
		y += 12
	}

	return yTop + height
}

func (g *generator) drawTableHeader(yTop float64) float64 {
	g.c.DrawRect(pageMargin, yTop, tableWidth(), tableHeaderHeight, &tableHeaderBG, &tableBorder)

	x := float64(pageMargin)
	for i, column := range tableColumns {
		g.c.DrawText(column.label, x+6, yTop+15, "B", 9, mutedText)
		x += column.width
		if i < len(tableColumns)-1 {
			g.c.DrawLine(x, yTop, x, yTop+tableHeaderHeight, tableBorder)
		}
	}
	g.c.DrawLine(pageMargin, yTop+tableHeaderHeight, pageMargin+tableWidth(), yTop+tableHeaderHeight, tableBorder)

	return yTop + tableHeaderHeight
}

func (g *generator) drawLineItemRow(yTop float64, item models.LineItem, index int, descLines []string, rowHeight float64) float64 {
	computed := calc.CalculateLineItem(item)

	if index%2 == 1 {
		g.c.DrawRect(pageMargin, yTop, tableWidth(), rowHeight, &altRowBG, nil)
	}
	g.c.DrawRect(pageMargin, yTop, tableWidth(), rowHeight, nil, &tableBorder)

	x := float64(pageMargin)
	for i, column := range tableColumns {
		cellRight := x + column.width - 6
		cellTop := yTop + 10

		switch column.key {
		case "description":
			textY := cellTop
			for _, line := range descLines {
				g.c.DrawText(line, x+6, textY, "", 9, textColor)
				textY += rowLineHeight
			}
		case "qty":
			g.drawRightAlignedText(formatQuantity(item.Qty), cellRight, cellTop, "", 9, textColor)
		case "rate":
			g.drawRightAlignedText(draft.FormatCurrency(item.Rate), cellRight, cellTop, "", 9, textColor)
		case "discount":
			g.drawRightAlignedText(formatDiscount(item), cellRight, cellTop, "", 9, textColor)
		case "vat":
			g.drawRightAlignedText(strconv.Itoa(item.VatRate)+"%", cellRight, cellTop, "", 9, textColor)
		case "amount":
			g.drawRightAlignedText(draft.FormatCurrency(computed.Net), cellRight, cellTop, "", 9, textColor)
		}

		x += column.width
		if i < len(tableColumns)-1 {
			g.c.DrawLine(x, yTop, x, yTop+rowHeight, tableBorder)
		}
	}

	return yTop + rowHeight
}

// startContinuationPage opens a fresh page with a lightweight banner and
// returns the new cursor position.
func (g *generator) startContinuationPage() float64 {
	g.c.AddPage()

	title := "Continued"
	if g.draft.IncludeDocumentMeta {
		title = string(g.draft.DocumentMeta.DocType) + " " + g.buildDocNumber() + " (continued)"
	}
	g.c.DrawText(title, pageMargin, pageMargin+12, "B", 12, textColor)

	if g.draft.IncludeDocumentMeta {
		g.drawRightAlignedText(g.draft.DocumentMeta.IssueDate, pageWidth-pageMargin, pageMargin+12, "", 10, mutedText)
	}

	return pageMargin + 28
}

func (g *generator) drawTotalsBox(yTop float64, totals models.TotalsComputation) float64 {
	const boxWidth = 220.0
	const rowHeight = 18.0

	labels := []string{"Subtotal", "VAT total", "Shipping", "Grand total"}
	values := []string{
		draft.FormatCurrency(totals.Subtotal),
		draft.FormatCurrency(totals.VatTotal),
		draft.FormatCurrency(totals.Shipping),
		draft.FormatCurrency(totals.Total),
	}

	boxHeight := rowHeight*float64(len(labels)) + 20
	x := pageWidth - pageMargin - boxWidth

	g.c.DrawRect(x, yTop, boxWidth, boxHeight, nil, &tableBorder)

	y := yTop + 16.0
	for i, label := range labels {
		isTotal := i == len(labels)-1
		style, labelColor := "", mutedText
		if isTotal {
			style, labelColor = "B", textColor
		}

		g.c.DrawText(label, x+10, y, style, 10, labelColor)
		g.drawRightAlignedText(values[i], x+boxWidth-10, y, style, 10, textColor)

		// rule line separating the grand total
		if i == len(labels)-2 {
			g.c.DrawLine(x+10, y+5, x+boxWidth-10, y+5, tableBorder)
		}
		y += rowHeight
	}

	return yTop + boxHeight
}

// drawNotes word-wraps the notes text into a bordered block, splitting it
// across as many continuation pages as needed.
func (g *generator) drawNotes(y float64, notes string) {
	text := strings.TrimSpace(notes)
	if text == "" {
		text = "Estimate valid for 14 days."
	}
	lines := wrapText(g.measure("", 10), text, pageWidth-pageMargin*2-14)

	startIndex := 0
	for startIndex < len(lines) {
		available := pageHeight - pageMargin - 24 - y
		maxLinesPerPage := int(math.Floor((available - 26) / notesLineHeight))

		if maxLinesPerPage <= 0 {
			y = g.startContinuationPage()
			continue
		}

		end := startIndex + maxLinesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		slice := lines[startIndex:end]
		blockHeight := 26 + float64(len(slice))*notesLineHeight

		g.c.DrawRect(pageMargin, y, pageWidth-pageMargin*2, blockHeight, nil, &tableBorder)

		title := "Notes / Terms"
		if startIndex > 0 {
			title = "Notes / Terms (cont.)"
		}
		g.c.DrawText(title, pageMargin+8, y+16, "B", 10, mutedText)

		textY := y + 30.0
		for _, line := range slice {
			g.c.DrawText(line, pageMargin+8, textY, "", 10, textColor)
			textY += notesLineHeight
		}

		y += blockHeight + 12
		startIndex = end

		if startIndex < len(lines) {
			y = g.startContinuationPage()
		}
	}
}

// drawPageFooters stamps "Page X of N" on every page once the total count
// is known. Single-page documents get no footer.
func (g *generator) drawPageFooters() {
	total := g.c.PageCount()
	if total <= 1 {
		return
	}
	for i := 1; i <= total; i++ {
		g.c.SetPage(i)
		label := "Page " + strconv.Itoa(i) + " of " + strconv.Itoa(total)
		g.drawRightAlignedText(label, pageWidth-pageMargin, pageHeight-pageMargin-4, "", 8, mutedText)
	}
}

func tableWidth() float64 {
	var w float64
	for _, column := range tableColumns {
		w += column.width
	}
	return w
}

func formatQuantity(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0"
	}
	if value == math.Trunc(value) {
		return strconv.FormatFloat(value, 'f', 0, 64)
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatDiscount(item models.LineItem) string {
	switch item.DiscountType {
	case models.DiscountPercent:
		return strconv.FormatFloat(item.DiscountValue, 'f', 2, 64) + "%"
	case models.DiscountFixed:
		return draft.FormatCurrency(item.DiscountValue)
	}
	return "-"
}

func vatLine(vatNumber string) string {
	if vatNumber == "" {
		return ""
	}
	return "VAT No: " + vatNumber
}

// displayLines trims and drops blank entries, falling back to a single
// dash so boxes never render empty.
func displayLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"-"}
	}
	return out
}

func filterBlank(lines []string) []string {
	var out []string
	for _, line := range lines {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

// maybeEmbedLogo decodes a data URI logo and registers it with the canvas.
// Best effort: any failure (wrong scheme, bad base64, unsupported format)
// just omits the logo.
func maybeEmbedLogo(c Canvas, dataURL string) *ImageRef {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil
	}

	var imageType string
	switch {
	case strings.HasPrefix(dataURL, "data:image/png"):
		imageType = "PNG"
	case strings.HasPrefix(dataURL, "data:image/jpeg"), strings.HasPrefix(dataURL, "data:image/jpg"):
		imageType = "JPEG"
	default:
		return nil
	}

	idx := strings.Index(dataURL, ";base64,")
	if idx < 0 {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return nil
	}

	img, err := c.RegisterImage("company-logo", imageType, data)
	if err != nil {
		return nil
	}
	return img
}
