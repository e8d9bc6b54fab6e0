package model

type InvoiceStatus int

const (
	InvoiceStatusWaiting  InvoiceStatus = 1
	InvoiceStatusApproved InvoiceStatus = 2
	InvoiceStatusPaid     InvoiceStatus = 3
	InvoiceStatusDenied   InvoiceStatus = 4
)

// Rates are the parameters applied on top of the line-item subtotal.
type Rates struct {
	VATPct            float64 `json:"vatPct"`
	AdminSurchargePct float64 `json:"adminSurchargePct"`
	TravelSurcharge   float64 `json:"travelSurcharge"`
	SelfRisk          float64 `json:"selfRisk"`
}

// TotalsBreakdown is derived from a line-item list plus rates. Total may be
// negative when the self-risk exceeds the billable amount.
type TotalsBreakdown struct {
	SubTotal       float64 `json:"subTotal"`
	AdminSurcharge float64 `json:"adminSurcharge"`
	Surcharge      float64 `json:"surcharge"`
	BeforeVAT      float64 `json:"beforeVat"`
	VAT            float64 `json:"vat"`
	Total          float64 `json:"total"`
}

// Invoice is a persisted invoice record. The line items, rates and totals
// are captured at save time and never recomputed afterwards.
type Invoice struct {
	TenderID       int64         `json:"tenderId"`
	InvoicingPart  string        `json:"invoicingPart"`
	InvoiceNumber  int64         `json:"invoiceNumber"`
	InvoiceDate    string        `json:"invoiceDate"`
	InvoiceDueDate string        `json:"invoiceDueDate"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency"`
	File           string        `json:"file,omitempty"`
	ActionTaken    *string       `json:"actionTaken,omitempty"`
	Status         InvoiceStatus `json:"status"`
	Items          []LineItem    `json:"items,omitempty"`

	VATPct            float64 `json:"vatPct,omitempty"`
	AdminSurchargePct float64 `json:"adminSurchargePct,omitempty"`
	TravelSurcharge   float64 `json:"travelSurcharge,omitempty"`
	SelfRisk          float64 `json:"selfRisk,omitempty"`
	SubTotal          float64 `json:"subTotal,omitempty"`
	BeforeVAT         float64 `json:"beforeVat,omitempty"`
	VAT               float64 `json:"vat,omitempty"`
	Total             float64 `json:"total,omitempty"`
}

// InvoiceDocument bundles everything the PDF generator needs to render one
// invoice.
type InvoiceDocument struct {
	Invoice Invoice
	Tender  *Tender
}
