// Package store is the shared in-memory record store for tenders, invoices
// and quotes. Every mutation swaps in a fresh copy of the affected list, so
// readers always observe a consistent snapshot.
package store

import (
	"sync"
	"time"

	"github.com/techtify/ensured-billing/internal/model"
)

// Numbering seeds used when a list is empty.
const (
	firstInvoiceNumber = 1000
	firstQuoteID       = 10000
	firstTenderID      = 451152200000
)

type Store struct {
	mu       sync.RWMutex
	tenders  []model.Tender
	invoices []model.Invoice
	quotes   []model.Quote
	users    []model.User

	now func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// Tenders returns a snapshot copy of the tender list.
func (s *Store) Tenders() []model.Tender {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Tender, len(s.tenders))
	copy(out, s.tenders)
	return out
}

func (s *Store) TenderByID(id int64) (model.Tender, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tenders {
		if t.ID == id {
			return t, true
		}
	}
	return model.Tender{}, false
}

// Invoices returns a snapshot copy of the invoice list.
func (s *Store) Invoices() []model.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

func (s *Store) InvoiceByNumber(number int64) (model.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.invoices {
		if inv.InvoiceNumber == number {
			return inv, true
		}
	}
	return model.Invoice{}, false
}

// Quotes returns a snapshot copy of the quote list.
func (s *Store) Quotes() []model.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

func (s *Store) QuoteByID(id int64) (model.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.quotes {
		if q.ID == id {
			return q, true
		}
	}
	return model.Quote{}, false
}

func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) UserByType(t model.UserType) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Type == t {
			return u, true
		}
	}
	return model.User{}, false
}

// AddInvoice assigns the next invoice number, defaults the status to
// waiting and prepends the record. The caller's cross-references are
// trusted as given.
func (s *Store) AddInvoice(inv model.Invoice) model.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv.InvoiceNumber = nextNumber(s.invoices, firstInvoiceNumber, func(i model.Invoice) int64 { return i.InvoiceNumber })
	if inv.Status == 0 {
		inv.Status = model.InvoiceStatusWaiting
	}
	s.invoices = prepend(s.invoices, inv)
	return inv
}

// AddQuote assigns the next quote ID, defaults the date and status and
// prepends the record.
func (s *Store) AddQuote(q model.Quote) model.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.ID = nextNumber(s.quotes, firstQuoteID, func(q model.Quote) int64 { return q.ID })
	if q.QuoteDate == "" {
		q.QuoteDate = s.now().Format(time.RFC3339)
	}
	if q.Status == 0 {
		q.Status = model.InvoiceStatusWaiting
	}
	s.quotes = prepend(s.quotes, q)
	return q
}

// AddTender assigns the next tender ID, defaults the status and prepends
// the record.
func (s *Store) AddTender(t model.Tender) model.Tender {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = nextNumber(s.tenders, firstTenderID, func(t model.Tender) int64 { return t.ID })
	if t.Status == 0 {
		t.Status = 1
	}
	s.tenders = prepend(s.tenders, t)
	return t
}

// ReplaceTender swaps one tender record wholesale by ID.
func (s *Store) ReplaceTender(t model.Tender) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tenders {
		if s.tenders[i].ID == t.ID {
			next := make([]model.Tender, len(s.tenders))
			copy(next, s.tenders)
			next[i] = t
			s.tenders = next
			return true
		}
	}
	return false
}

// ReplaceInvoice swaps one invoice record wholesale by invoice number.
func (s *Store) ReplaceInvoice(inv model.Invoice) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].InvoiceNumber == inv.InvoiceNumber {
			next := make([]model.Invoice, len(s.invoices))
			copy(next, s.invoices)
			next[i] = inv
			s.invoices = next
			return true
		}
	}
	return false
}

// nextNumber is max(existing)+1, or the seed when the list is empty.
func nextNumber[T any](list []T, seed int64, id func(T) int64) int64 {
	if len(list) == 0 {
		return seed
	}
	max := id(list[0])
	for _, item := range list[1:] {
		if id(item) > max {
			max = id(item)
		}
	}
	return max + 1
}

func prepend[T any](list []T, item T) []T {
	next := make([]T, 0, len(list)+1)
	next = append(next, item)
	return append(next, list...)
}
