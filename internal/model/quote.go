package model

// RoomItem is a quote line with optional age deduction applied per line.
type RoomItem struct {
	Code            string  `json:"code,omitempty"`
	Title           string  `json:"title"`
	Category        string  `json:"category,omitempty"`
	Unit            string  `json:"unit"`
	Qty             float64 `json:"qty"`
	UnitPrice       float64 `json:"unitPrice"`
	Year            int     `json:"year,omitempty"`
	AgeDeductionPct float64 `json:"ageDeductionPct,omitempty"`
}

type Room struct {
	Name  string     `json:"name"`
	Items []RoomItem `json:"items"`
}

// QuoteTotals is the quote summary. Unlike invoices, the base is clamped at
// zero before VAT when the self-risk exceeds it.
type QuoteTotals struct {
	Base          float64 `json:"base"`
	AfterSelfRisk float64 `json:"afterSelfRisk"`
	VAT           float64 `json:"vat"`
	TotalWithVAT  float64 `json:"totalWithVat"`
}

// Quote is a persisted repair-cost quote, grouped by room.
type Quote struct {
	ID         int64         `json:"id"`
	ClaimID    string        `json:"claimId"`
	Insurer    string        `json:"insurer"`
	Contractor string        `json:"contractor"`
	Customer   string        `json:"customer"`
	QuoteDate  string        `json:"quoteDate"`
	SelfRisk   float64       `json:"selfRisk"`
	VATPct     float64       `json:"vatPct"`
	Status     InvoiceStatus `json:"status"`
	Rooms      []Room        `json:"rooms"`
	TenderID   int64         `json:"tenderId,omitempty"`
}
