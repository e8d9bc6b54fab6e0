package service

import (
	"context"
	"fmt"
	"time"

	"github.com/techtify/ensured-billing/internal/calc"
	"github.com/techtify/ensured-billing/internal/config"
	"github.com/techtify/ensured-billing/internal/ledger"
	"github.com/techtify/ensured-billing/internal/model"
	"github.com/techtify/ensured-billing/internal/store"
	"github.com/techtify/ensured-billing/internal/template"
)

// PDFGenerator renders one invoice as a PDF document.
type PDFGenerator interface {
	Generate(doc model.InvoiceDocument) ([]byte, error)
}

// ExcelGenerator renders one quote as an Excel workbook.
type ExcelGenerator interface {
	Generate(quote model.Quote, totals model.QuoteTotals) ([]byte, error)
}

type BillingService struct {
	store     *store.Store
	templates *template.Store
	pdf       PDFGenerator
	excel     ExcelGenerator
	billing   config.BillingConfig
	now       func() time.Time
}

func NewBillingService(records *store.Store, templates *template.Store, pdf PDFGenerator, excel ExcelGenerator, cfg *config.Config) *BillingService {
	return &BillingService{
		store:     records,
		templates: templates,
		pdf:       pdf,
		excel:     excel,
		billing:   cfg.Billing,
		now:       time.Now,
	}
}

// DefaultRates returns the configured draft rates.
func (s *BillingService) DefaultRates() model.Rates {
	return model.Rates{
		VATPct:            s.billing.VATPct,
		AdminSurchargePct: s.billing.AdminSurchargePct,
		TravelSurcharge:   s.billing.TravelSurcharge,
		SelfRisk:          s.billing.SelfRisk,
	}
}

// InvoiceDraft is the starting state of the invoice builder for a tender.
type InvoiceDraft struct {
	Tender model.Tender          `json:"tender"`
	Items  []model.LineItem      `json:"items"`
	Rates  model.Rates           `json:"rates"`
	Totals model.TotalsBreakdown `json:"totals"`
}

func defaultDraftItems() []model.LineItem {
	return []model.LineItem{
		{Code: "MWU-101", Title: "Riv gipsvägg", Unit: "m²", Qty: 10, UnitPrice: 220},
		{Code: "MWU-205", Title: "Torka konstruktion", Unit: "dygn", Qty: 5, UnitPrice: 450},
		{Code: "MAT-301", Title: "Nytt parkettgolv", Unit: "m²", Qty: 15, UnitPrice: 380},
		{Code: "ARB-010", Title: "Arbete snickare", Unit: "tim", Qty: 24, UnitPrice: 520},
	}
}

// StartInvoiceDraft seeds the invoice builder for a tender with the default
// line items and rates.
func (s *BillingService) StartInvoiceDraft(ctx context.Context, principal model.Principal, tenderID int64) (*InvoiceDraft, error) {
	if !principal.IsContractor() {
		return nil, ErrPermissionDenied
	}
	tender, ok := s.store.TenderByID(tenderID)
	if !ok {
		return nil, ErrNotFound
	}
	items := defaultDraftItems()
	rates := s.DefaultRates()
	return &InvoiceDraft{
		Tender: tender,
		Items:  items,
		Rates:  rates,
		Totals: calc.InvoiceTotals(items, rates),
	}, nil
}

type SaveInvoiceInput struct {
	TenderID int64
	Items    []model.LineItem
	Rates    model.Rates
}

func (s *BillingService) buildInvoice(tender model.Tender, input SaveInvoiceInput) model.Invoice {
	rows := ledger.New(input.Items)
	items := rows.Items()
	totals := rows.Totals(input.Rates)

	invoicingPart := "Entreprenör AB"
	currency := "SEK"
	if tender.WinningTender != nil {
		if tender.WinningTender.Name != "" {
			invoicingPart = tender.WinningTender.Name
		}
		if tender.WinningTender.Currency != "" {
			currency = tender.WinningTender.Currency
		}
	}

	today := s.now()
	due := today.Add(time.Duration(s.billing.DueDays) * 24 * time.Hour)

	return model.Invoice{
		TenderID:       tender.ID,
		InvoicingPart:  invoicingPart,
		InvoiceDate:    today.Format("2006-01-02"),
		InvoiceDueDate: due.Format("2006-01-02"),
		Amount:         totals.Total,
		Currency:       currency,
		File:           "/file.svg",
		Status:         model.InvoiceStatusWaiting,
		Items:          items,

		VATPct:            input.Rates.VATPct,
		AdminSurchargePct: input.Rates.AdminSurchargePct,
		TravelSurcharge:   input.Rates.TravelSurcharge,
		SelfRisk:          input.Rates.SelfRisk,
		SubTotal:          totals.SubTotal,
		BeforeVAT:         totals.BeforeVAT,
		VAT:               totals.VAT,
		Total:             totals.Total,
	}
}

func (s *BillingService) appendMessage(tender *model.Tender, principal model.Principal, title, message string) {
	tender.Messages = append(tender.Messages, model.TenderMessage{
		Author: model.MessageAuthor{
			Name: principal.Name,
			ID:   principal.UserID,
		},
		CreatedAt: s.now(),
		Title:     title,
		Message:   message,
	})
}

// SaveInvoiceDraft stores the builder state as a waiting invoice and logs a
// draft message on the tender. The tender phase is left untouched.
func (s *BillingService) SaveInvoiceDraft(ctx context.Context, principal model.Principal, input SaveInvoiceInput) (model.Invoice, error) {
	if !principal.IsContractor() {
		return model.Invoice{}, ErrPermissionDenied
	}
	if len(input.Items) == 0 {
		return model.Invoice{}, fmt.Errorf("%w: at least one line item is required", ErrInvalidInput)
	}
	tender, ok := s.store.TenderByID(input.TenderID)
	if !ok {
		return model.Invoice{}, ErrNotFound
	}

	saved := s.store.AddInvoice(s.buildInvoice(tender, input))

	s.appendMessage(&tender, principal, "Faktura sparad som utkast",
		fmt.Sprintf("Utkast #%d sparad.", saved.InvoiceNumber))
	s.store.ReplaceTender(tender)

	return saved, nil
}

// SendInvoice stores the invoice and moves the tender into the
// awaiting-response phase: status is raised to 3 when below, and the
// awaitingResponse date is stamped once.
func (s *BillingService) SendInvoice(ctx context.Context, principal model.Principal, input SaveInvoiceInput) (model.Invoice, error) {
	if !principal.IsContractor() {
		return model.Invoice{}, ErrPermissionDenied
	}
	if len(input.Items) == 0 {
		return model.Invoice{}, fmt.Errorf("%w: at least one line item is required", ErrInvalidInput)
	}
	tender, ok := s.store.TenderByID(input.TenderID)
	if !ok {
		return model.Invoice{}, ErrNotFound
	}

	sent := s.store.AddInvoice(s.buildInvoice(tender, input))

	if tender.Status < 3 {
		tender.Status = 3
	}
	if tender.PhaseDates.AwaitingResponse == "" {
		tender.PhaseDates.AwaitingResponse = s.now().Format(time.RFC3339)
	}
	s.appendMessage(&tender, principal, "Ny faktura inskickad",
		fmt.Sprintf("Faktura #%d har skickats in för granskning", sent.InvoiceNumber))
	s.store.ReplaceTender(tender)

	return sent, nil
}

// SetInvoiceStatus records an approval decision on an invoice. The status is
// stored verbatim.
func (s *BillingService) SetInvoiceStatus(ctx context.Context, principal model.Principal, invoiceNumber int64, status model.InvoiceStatus, actionTaken *string) (model.Invoice, error) {
	if !(principal.IsInsurer() || principal.IsPropertyOwner()) {
		return model.Invoice{}, ErrPermissionDenied
	}
	if status < model.InvoiceStatusWaiting || status > model.InvoiceStatusDenied {
		return model.Invoice{}, fmt.Errorf("%w: invalid invoice status", ErrInvalidInput)
	}
	invoice, ok := s.store.InvoiceByNumber(invoiceNumber)
	if !ok {
		return model.Invoice{}, ErrNotFound
	}
	invoice.Status = status
	if actionTaken != nil {
		invoice.ActionTaken = actionTaken
	}
	s.store.ReplaceInvoice(invoice)
	return invoice, nil
}

// InvoiceGroups buckets invoices by status for the overview page.
type InvoiceGroups struct {
	Waiting  []model.Invoice `json:"waiting"`
	Approved []model.Invoice `json:"approved"`
	Paid     []model.Invoice `json:"paid"`
	Denied   []model.Invoice `json:"denied"`
}

func (s *BillingService) ListInvoices(ctx context.Context) InvoiceGroups {
	groups := InvoiceGroups{
		Waiting:  []model.Invoice{},
		Approved: []model.Invoice{},
		Paid:     []model.Invoice{},
		Denied:   []model.Invoice{},
	}
	for _, inv := range s.store.Invoices() {
		switch inv.Status {
		case model.InvoiceStatusWaiting:
			groups.Waiting = append(groups.Waiting, inv)
		case model.InvoiceStatusApproved:
			groups.Approved = append(groups.Approved, inv)
		case model.InvoiceStatusPaid:
			groups.Paid = append(groups.Paid, inv)
		case model.InvoiceStatusDenied:
			groups.Denied = append(groups.Denied, inv)
		}
	}
	return groups
}

func (s *BillingService) GetInvoice(ctx context.Context, invoiceNumber int64) (model.Invoice, error) {
	invoice, ok := s.store.InvoiceByNumber(invoiceNumber)
	if !ok {
		return model.Invoice{}, ErrNotFound
	}
	return invoice, nil
}

func (s *BillingService) ListTenders(ctx context.Context) []model.Tender {
	return s.store.Tenders()
}

func (s *BillingService) GetTender(ctx context.Context, id int64) (model.Tender, error) {
	tender, ok := s.store.TenderByID(id)
	if !ok {
		return model.Tender{}, ErrNotFound
	}
	return tender, nil
}

type CreateQuoteInput struct {
	ClaimID    string
	Insurer    string
	Contractor string
	Customer   string
	SelfRisk   float64
	VATPct     float64
	Rooms      []model.Room
	TenderID   int64
}

// CreateQuote stores a new quote record and returns it with its totals.
func (s *BillingService) CreateQuote(ctx context.Context, principal model.Principal, input CreateQuoteInput) (model.Quote, model.QuoteTotals, error) {
	if !principal.IsContractor() {
		return model.Quote{}, model.QuoteTotals{}, ErrPermissionDenied
	}
	quote := s.store.AddQuote(model.Quote{
		ClaimID:    input.ClaimID,
		Insurer:    input.Insurer,
		Contractor: input.Contractor,
		Customer:   input.Customer,
		SelfRisk:   calc.Sanitize(input.SelfRisk),
		VATPct:     calc.Sanitize(input.VATPct),
		Rooms:      input.Rooms,
		TenderID:   input.TenderID,
	})
	return quote, calc.QuoteTotals(quote.Rooms, quote.SelfRisk, quote.VATPct), nil
}

func (s *BillingService) ListQuotes(ctx context.Context) []model.Quote {
	return s.store.Quotes()
}

func (s *BillingService) GetQuote(ctx context.Context, id int64) (model.Quote, error) {
	quote, ok := s.store.QuoteByID(id)
	if !ok {
		return model.Quote{}, ErrNotFound
	}
	return quote, nil
}

// ProtocolGroups buckets tenders by the approval status of their completion
// protocol. Tenders without one are omitted.
type ProtocolGroups struct {
	Waiting  []model.Tender `json:"waiting"`
	Approved []model.Tender `json:"approved"`
	Denied   []model.Tender `json:"denied"`
}

func (s *BillingService) ListProtocols(ctx context.Context) ProtocolGroups {
	groups := ProtocolGroups{
		Waiting:  []model.Tender{},
		Approved: []model.Tender{},
		Denied:   []model.Tender{},
	}
	for _, tender := range s.store.Tenders() {
		doc := tender.Protocol()
		if doc == nil || doc.ApprovalStatus == nil {
			continue
		}
		switch *doc.ApprovalStatus {
		case model.ApprovalStatusWaiting:
			groups.Waiting = append(groups.Waiting, tender)
		case model.ApprovalStatusApproved:
			groups.Approved = append(groups.Approved, tender)
		case model.ApprovalStatusDenied:
			groups.Denied = append(groups.Denied, tender)
		}
	}
	return groups
}

// SetProtocolStatus updates the approval status on a tender's named document.
func (s *BillingService) SetProtocolStatus(ctx context.Context, principal model.Principal, tenderID int64, title string, status model.ApprovalStatus) (model.Tender, error) {
	if !(principal.IsInsurer() || principal.IsPropertyOwner()) {
		return model.Tender{}, ErrPermissionDenied
	}
	if status < model.ApprovalStatusWaiting || status > model.ApprovalStatusDenied {
		return model.Tender{}, fmt.Errorf("%w: invalid approval status", ErrInvalidInput)
	}
	tender, ok := s.store.TenderByID(tenderID)
	if !ok {
		return model.Tender{}, ErrNotFound
	}
	updated := false
	for i := range tender.Documents {
		if tender.Documents[i].Title == title {
			st := status
			tender.Documents[i].ApprovalStatus = &st
			updated = true
		}
	}
	if !updated {
		return model.Tender{}, ErrNotFound
	}
	s.store.ReplaceTender(tender)
	return tender, nil
}

// ListTemplates returns the merged template catalog for the caller.
func (s *BillingService) ListTemplates(ctx context.Context, principal model.Principal) []model.MomentTemplate {
	return s.templates.Load(ctx, principal.UserID)
}

func (s *BillingService) CreateTemplate(ctx context.Context, principal model.Principal, name string, items []model.MomentTemplateItem) (model.MomentTemplate, error) {
	if !principal.IsContractor() {
		return model.MomentTemplate{}, ErrPermissionDenied
	}
	tpl, err := s.templates.Create(ctx, principal.UserID, name, items)
	if err != nil {
		return model.MomentTemplate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return tpl, nil
}

func (s *BillingService) CreateTemplateFromRow(ctx context.Context, principal model.Principal, name string, row model.LineItem) (model.MomentTemplate, error) {
	if !principal.IsContractor() {
		return model.MomentTemplate{}, ErrPermissionDenied
	}
	tpl, err := s.templates.CreateFromRow(ctx, principal.UserID, name, row)
	if err != nil {
		return model.MomentTemplate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return tpl, nil
}

func (s *BillingService) DeleteTemplate(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsContractor() {
		return ErrPermissionDenied
	}
	switch err := s.templates.Delete(ctx, principal.UserID, id); err {
	case nil:
		return nil
	case template.ErrTemplateNotFound:
		return ErrNotFound
	case template.ErrBuiltInTemplate:
		return fmt.Errorf("%w: built-in templates cannot be deleted", ErrInvalidInput)
	default:
		return err
	}
}

// ExpandTemplate previews the line items a template produces for an area.
func (s *BillingService) ExpandTemplate(ctx context.Context, principal model.Principal, templateID string, areaKvm float64) ([]model.LineItem, error) {
	for _, tpl := range s.templates.Load(ctx, principal.UserID) {
		if tpl.ID == templateID {
			return template.Expand(tpl, areaKvm), nil
		}
	}
	return nil, ErrNotFound
}

// ComputeTotals previews the invoice breakdown for arbitrary builder state.
// Rows pass through a ledger so non-finite numbers are coerced the same way
// the save path does it.
func (s *BillingService) ComputeTotals(items []model.LineItem, rates model.Rates) model.TotalsBreakdown {
	return ledger.New(items).Totals(rates)
}

// FileResult is a generated download.
type FileResult struct {
	FileName string
	Content  []byte
}

// InvoicePDF renders an invoice for download.
func (s *BillingService) InvoicePDF(ctx context.Context, invoiceNumber int64) (*FileResult, error) {
	invoice, ok := s.store.InvoiceByNumber(invoiceNumber)
	if !ok {
		return nil, ErrNotFound
	}
	doc := model.InvoiceDocument{Invoice: invoice}
	if tender, ok := s.store.TenderByID(invoice.TenderID); ok {
		doc.Tender = &tender
	}
	content, err := s.pdf.Generate(doc)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		FileName: fmt.Sprintf("faktura-%d.pdf", invoice.InvoiceNumber),
		Content:  content,
	}, nil
}

// QuoteExcel renders a quote workbook for download.
func (s *BillingService) QuoteExcel(ctx context.Context, quoteID int64) (*FileResult, error) {
	quote, ok := s.store.QuoteByID(quoteID)
	if !ok {
		return nil, ErrNotFound
	}
	totals := calc.QuoteTotals(quote.Rooms, quote.SelfRisk, quote.VATPct)
	content, err := s.excel.Generate(quote, totals)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		FileName: fmt.Sprintf("offert-%d.xlsx", quote.ID),
		Content:  content,
	}, nil
}
