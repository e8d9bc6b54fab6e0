package model

type QtyMode string

const (
	QtyModePerKvm QtyMode = "perKvm"
	QtyModeFixed  QtyMode = "fixed"
)

type TemplateGroup string

const (
	TemplateGroupMEPS   TemplateGroup = "MEPS"
	TemplateGroupCustom TemplateGroup = "Custom"
)

// MomentTemplateItem is a line-item pattern inside a moment template.
// Exactly one of FixedQty/QtyPerKvm is authoritative, selected by QtyMode.
type MomentTemplateItem struct {
	Code      string  `json:"code,omitempty"`
	Title     string  `json:"title"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unitPrice"`
	QtyPerKvm float64 `json:"qtyPerKvm,omitempty"`
	FixedQty  float64 `json:"fixedQty,omitempty"`
	QtyMode   QtyMode `json:"qtyMode,omitempty"`
}

// MomentTemplate is a reusable set of line-item patterns. MEPS templates are
// built in and immutable; Custom templates are user-authored and persisted
// per user.
type MomentTemplate struct {
	ID    string               `json:"id"`
	Name  string               `json:"name"`
	Group TemplateGroup        `json:"group"`
	Items []MomentTemplateItem `json:"items"`
}
