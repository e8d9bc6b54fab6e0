package template

import (
	"github.com/techtify/ensured-billing/internal/calc"
	"github.com/techtify/ensured-billing/internal/model"
)

// Expand turns a template into concrete line items for the given area in m².
// Fixed-quantity items ignore the area; per-kvm items multiply their factor
// by it. A non-finite or negative area counts as no area entered. Quantities
// are rounded to two decimals, everything else is copied verbatim, and the
// result keeps no reference back to the template.
func Expand(tpl model.MomentTemplate, areaKvm float64) []model.LineItem {
	area := calc.Sanitize(areaKvm)
	if area < 0 {
		area = 0
	}

	items := make([]model.LineItem, 0, len(tpl.Items))
	for _, it := range tpl.Items {
		var qty float64
		if it.QtyMode == model.QtyModeFixed {
			qty = calc.Round2(calc.Sanitize(it.FixedQty))
		} else {
			factor := calc.Sanitize(it.QtyPerKvm)
			if factor == 0 {
				factor = 1
			}
			qty = calc.Round2(factor * area)
		}
		items = append(items, model.LineItem{
			Code:      it.Code,
			Title:     it.Title,
			Unit:      it.Unit,
			Qty:       qty,
			UnitPrice: it.UnitPrice,
		})
	}
	return items
}
