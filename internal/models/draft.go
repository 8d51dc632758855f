package models

// DocumentType distinguishes estimates from invoices on the rendered PDF.
type DocumentType string

const (
	DocumentEstimate DocumentType = "Estimate"
	DocumentInvoice  DocumentType = "Invoice"
)

type CompanyProfile struct {
	Name         string   `json:"name"`
	AddressLines []string `json:"addressLines"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	VatNumber    string   `json:"vatNumber,omitempty"`
	LogoDataURL  string   `json:"logoDataUrl,omitempty"`
}

type ClientDetails struct {
	Name              string   `json:"name"`
	AddressLines      []string `json:"addressLines"`
	ContactNumber     string   `json:"contactNumber"`
	Email             string   `json:"email"`
	AdditionalDetails string   `json:"additionalDetails,omitempty"`
}

type VehicleDetails struct {
	MakeModel    string `json:"makeModel"`
	Registration string `json:"registration"`
	Mileage      string `json:"mileage,omitempty"`
}

// DocumentMeta holds the numbering block rendered top-right of the PDF.
// IssueDate is textual, zero-padded dd-mm-yyyy. Currency is fixed to GBP.
type DocumentMeta struct {
	DocType         DocumentType `json:"docType"`
	DocNumberPrefix string       `json:"docNumberPrefix"`
	DocNumber       int          `json:"docNumber"`
	Reference       string       `json:"reference"`
	IssueDate       string       `json:"issueDate"`
	Currency        string       `json:"currency"`
}

type Charges struct {
	Shipping float64 `json:"shipping"`
}

// GarageEstimateDraft is the whole document being edited. LineItems is
// never empty: clearing or removing the last row leaves one blank default.
type GarageEstimateDraft struct {
	CompanyProfile CompanyProfile `json:"companyProfile"`
	ClientDetails  ClientDetails  `json:"clientDetails"`
	VehicleDetails VehicleDetails `json:"vehicleDetails"`
	DocumentMeta   DocumentMeta   `json:"documentMeta"`
	// When false, the document meta block is omitted from the rendered PDF.
	IncludeDocumentMeta bool       `json:"includeDocumentMeta"`
	LineItems           []LineItem `json:"lineItems"`
	Charges             Charges    `json:"charges"`
	NotesTerms          string     `json:"notesTerms"`
}
