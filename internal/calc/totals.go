// Package calc holds the pure totals arithmetic for invoices and quotes.
package calc

import (
	"math"

	"github.com/techtify/ensured-billing/internal/model"
)

// Round rounds to whole currency units, half away from zero.
func Round(v float64) float64 {
	return math.Round(v)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Sanitize coerces non-finite values to 0. User-entered numbers are never
// rejected, only neutralized.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SubTotal sums the line amounts without any rounding.
func SubTotal(items []model.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Qty * it.UnitPrice
	}
	return sum
}

// InvoiceTotals computes the breakdown for an invoice ledger. The admin
// surcharge and VAT are rounded to whole units; the total is not clamped and
// goes negative when the self-risk exceeds the rest.
func InvoiceTotals(items []model.LineItem, rates model.Rates) model.TotalsBreakdown {
	subTotal := SubTotal(items)
	adminSurcharge := Round(subTotal * rates.AdminSurchargePct)
	surcharge := adminSurcharge + rates.TravelSurcharge
	beforeVAT := subTotal + surcharge
	vat := Round(beforeVAT * rates.VATPct)
	return model.TotalsBreakdown{
		SubTotal:       subTotal,
		AdminSurcharge: adminSurcharge,
		Surcharge:      surcharge,
		BeforeVAT:      beforeVAT,
		VAT:            vat,
		Total:          beforeVAT + vat - rates.SelfRisk,
	}
}

// QuoteTotals computes the room-based quote summary. Each line is reduced by
// its age deduction, the self-risk is subtracted from the base with a floor
// of zero, and VAT applies to what remains.
func QuoteTotals(rooms []model.Room, selfRisk, vatPct float64) model.QuoteTotals {
	var base float64
	for _, room := range rooms {
		for _, it := range room.Items {
			line := it.UnitPrice * it.Qty
			base += line - line*it.AgeDeductionPct
		}
	}
	afterSelfRisk := math.Max(0, base-selfRisk)
	vat := afterSelfRisk * vatPct
	return model.QuoteTotals{
		Base:          base,
		AfterSelfRisk: afterSelfRisk,
		VAT:           vat,
		TotalWithVAT:  afterSelfRisk + vat,
	}
}
