package draft

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/diewo77/garage-estimates/internal/models"
)

var gbpPrinter = message.NewPrinter(language.BritishEnglish)

// FormatCurrency renders a monetary amount as pound sterling with two
// decimals and thousands grouping. Non-finite input renders as zero.
func FormatCurrency(value float64) string {
	safe := value
	if math.IsNaN(safe) || math.IsInf(safe, 0) {
		safe = 0
	}
	return gbpPrinter.Sprintf("£%.2f", safe)
}

// FormatDateToDDMMYYYY renders the canonical zero-padded issue date form.
func FormatDateToDDMMYYYY(t time.Time) string {
	return t.Format("02-01-2006")
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	invalidPartRe = regexp.MustCompile(`[^a-zA-Z0-9-_]`)
	dashRunRe     = regexp.MustCompile(`-+`)
)

func sanitizeFilenamePart(value string) string {
	s := strings.TrimSpace(value)
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = invalidPartRe.ReplaceAllString(s, "")
	s = dashRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return strings.ToLower(s)
}

// BuildPDFFilename derives the download filename from draft fields:
// {docType}-{prefix}{number}-{clientNameOrRegistrationOrFallback}.pdf,
// lowercased and sanitized to [a-z0-9-_].
func BuildPDFFilename(d models.GarageEstimateDraft) string {
	docType := sanitizeFilenamePart(string(d.DocumentMeta.DocType))
	if docType == "" {
		docType = "estimate"
	}
	prefix := sanitizeFilenamePart(d.DocumentMeta.DocNumberPrefix)
	if prefix == "" {
		prefix = "doc"
	}
	number := d.DocumentMeta.DocNumber
	if number < 1 {
		number = 1
	}

	clientOrReg := sanitizeFilenamePart(d.ClientDetails.Name)
	if clientOrReg == "" {
		clientOrReg = sanitizeFilenamePart(d.VehicleDetails.Registration)
	}
	if clientOrReg == "" {
		clientOrReg = "customer"
	}

	return docType + "-" + prefix + strconv.Itoa(number) + "-" + clientOrReg + ".pdf"
}

// ToAddressLines splits a textarea value into address lines.
func ToAddressLines(value string) []string {
	lines := strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}

// FromAddressLines joins address lines back into a textarea value.
func FromAddressLines(addressLines []string) string {
	return strings.Join(addressLines, "\n")
}
