// Package ledger holds the mutable line-item list of one invoice or quote
// being built. Rows are addressed by position only; there is no row identity
// and no reordering.
package ledger

import (
	"errors"

	"github.com/techtify/ensured-billing/internal/calc"
	"github.com/techtify/ensured-billing/internal/model"
)

var ErrIndexOutOfRange = errors.New("line item index out of range")

// Update is one typed field change. The closed set of implementations
// replaces the field-keyed switch of a dynamic update call.
type Update interface {
	apply(*model.LineItem)
}

type SetCode string
type SetTitle string
type SetUnit string
type SetCategory string
type SetQty float64
type SetUnitPrice float64

func (u SetCode) apply(it *model.LineItem)     { it.Code = string(u) }
func (u SetTitle) apply(it *model.LineItem)    { it.Title = string(u) }
func (u SetUnit) apply(it *model.LineItem)     { it.Unit = string(u) }
func (u SetCategory) apply(it *model.LineItem) { it.Category = string(u) }
func (u SetQty) apply(it *model.LineItem)      { it.Qty = calc.Sanitize(float64(u)) }
func (u SetUnitPrice) apply(it *model.LineItem) {
	it.UnitPrice = calc.Sanitize(float64(u))
}

// Ledger is a single editing session's row list. One session owns it
// exclusively, so it is not safe for concurrent use.
type Ledger struct {
	items []model.LineItem
}

func New(seed []model.LineItem) *Ledger {
	l := &Ledger{items: make([]model.LineItem, 0, len(seed))}
	for _, it := range seed {
		l.Add(it)
	}
	return l
}

// Add appends one row, coercing non-finite numbers to 0.
func (l *Ledger) Add(item model.LineItem) {
	item.Qty = calc.Sanitize(item.Qty)
	item.UnitPrice = calc.Sanitize(item.UnitPrice)
	l.items = append(l.items, item)
}

// AddAll appends the rows in order.
func (l *Ledger) AddAll(items []model.LineItem) {
	for _, it := range items {
		l.Add(it)
	}
}

// Update applies one field change to the row at index.
func (l *Ledger) Update(index int, update Update) error {
	if index < 0 || index >= len(l.items) {
		return ErrIndexOutOfRange
	}
	update.apply(&l.items[index])
	return nil
}

// Remove deletes the row at index, shifting later rows down.
func (l *Ledger) Remove(index int) error {
	if index < 0 || index >= len(l.items) {
		return ErrIndexOutOfRange
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return nil
}

// Item returns a copy of the row at index.
func (l *Ledger) Item(index int) (model.LineItem, error) {
	if index < 0 || index >= len(l.items) {
		return model.LineItem{}, ErrIndexOutOfRange
	}
	return l.items[index], nil
}

// Items returns a copy of all rows.
func (l *Ledger) Items() []model.LineItem {
	out := make([]model.LineItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Len() int {
	return len(l.items)
}

// Totals computes the invoice breakdown for the current rows.
func (l *Ledger) Totals(rates model.Rates) model.TotalsBreakdown {
	return calc.InvoiceTotals(l.items, rates)
}
