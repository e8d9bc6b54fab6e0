package model

// LineItem is one billable row ("moment") of an invoice or quote in progress.
// Amount is always derived as Qty * UnitPrice and never stored.
type LineItem struct {
	Code      string  `json:"code,omitempty"`
	Title     string  `json:"title"`
	Unit      string  `json:"unit"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
	Category  string  `json:"category,omitempty"`
}

// Amount returns the line amount.
func (li LineItem) Amount() float64 {
	return li.Qty * li.UnitPrice
}
