package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtify/ensured-billing/internal/config"
	"github.com/techtify/ensured-billing/internal/model"
	"github.com/techtify/ensured-billing/internal/store"
	"github.com/techtify/ensured-billing/internal/template"
)

type memoryTemplateRepo struct {
	payloads map[int64][]byte
}

func (r *memoryTemplateRepo) LoadPayload(_ context.Context, userID int64) ([]byte, error) {
	return r.payloads[userID], nil
}

func (r *memoryTemplateRepo) SavePayload(_ context.Context, userID int64, payload []byte) error {
	if r.payloads == nil {
		r.payloads = map[int64][]byte{}
	}
	r.payloads[userID] = payload
	return nil
}

type stubPDF struct{}

func (stubPDF) Generate(model.InvoiceDocument) ([]byte, error) { return []byte("%PDF-stub"), nil }

type stubExcel struct{}

func (stubExcel) Generate(model.Quote, model.QuoteTotals) ([]byte, error) {
	return []byte("xlsx-stub"), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Billing: config.BillingConfig{
			VATPct:            0.25,
			AdminSurchargePct: 0.06,
			TravelSurcharge:   750,
			SelfRisk:          3000,
			Currency:          "SEK",
			DueDays:           14,
		},
	}
}

func newTestService(t *testing.T) *BillingService {
	t.Helper()
	records := store.New()
	store.Seed(records)
	templates := template.NewStore(&memoryTemplateRepo{}, zerolog.Nop())
	svc := NewBillingService(records, templates, stubPDF{}, stubExcel{}, testConfig())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

var (
	contractor = model.Principal{UserID: 103, Name: "Dante Rohlin", Type: model.UserTypeContractor}
	insurer    = model.Principal{UserID: 101, Name: "Eric Andrén", Type: model.UserTypeInsurer}
)

func TestStartInvoiceDraftDefaults(t *testing.T) {
	svc := newTestService(t)

	draft, err := svc.StartInvoiceDraft(context.Background(), contractor, 451152231155)
	require.NoError(t, err)

	require.Len(t, draft.Items, 4)
	assert.Equal(t, "MWU-101", draft.Items[0].Code)
	assert.Equal(t, 0.25, draft.Rates.VATPct)
	assert.Equal(t, float64(10*220+5*450+15*380+24*520), draft.Totals.SubTotal)
}

func TestStartInvoiceDraftUnknownTender(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.StartInvoiceDraft(context.Background(), contractor, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartInvoiceDraftRequiresContractor(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.StartInvoiceDraft(context.Background(), insurer, 451152231155)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSaveInvoiceDraft(t *testing.T) {
	svc := newTestService(t)

	items := []model.LineItem{
		{Code: "MWU-101", Title: "Riv gipsvägg", Unit: "m²", Qty: 10, UnitPrice: 220},
		{Code: "MWU-205", Title: "Torka konstruktion", Unit: "dygn", Qty: 5, UnitPrice: 450},
	}
	saved, err := svc.SaveInvoiceDraft(context.Background(), contractor, SaveInvoiceInput{
		TenderID: 451152231155,
		Items:    items,
		Rates:    svc.DefaultRates(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1006), saved.InvoiceNumber)
	assert.Equal(t, model.InvoiceStatusWaiting, saved.Status)
	assert.Equal(t, "2025-06-02", saved.InvoiceDate)
	assert.Equal(t, "2025-06-16", saved.InvoiceDueDate)
	assert.Equal(t, "Entreprenör AB", saved.InvoicingPart)
	assert.Equal(t, "SEK", saved.Currency)
	assert.Equal(t, 4450.0, saved.SubTotal)
	assert.Equal(t, 3834.0, saved.Total)
	assert.Equal(t, saved.Total, saved.Amount)

	tender, err := svc.GetTender(context.Background(), 451152231155)
	require.NoError(t, err)
	require.NotEmpty(t, tender.Messages)
	last := tender.Messages[len(tender.Messages)-1]
	assert.Equal(t, "Faktura sparad som utkast", last.Title)
	assert.Equal(t, "Utkast #1006 sparad.", last.Message)
	assert.Equal(t, 1, tender.Status)
}

func TestSaveInvoiceDraftUsesWinningTenderName(t *testing.T) {
	svc := newTestService(t)

	saved, err := svc.SaveInvoiceDraft(context.Background(), contractor, SaveInvoiceInput{
		TenderID: 451152231151,
		Items:    defaultDraftItems(),
		Rates:    svc.DefaultRates(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hans Bygg AB", saved.InvoicingPart)
}

func TestSendInvoiceAdvancesTenderPhase(t *testing.T) {
	svc := newTestService(t)

	sent, err := svc.SendInvoice(context.Background(), contractor, SaveInvoiceInput{
		TenderID: 451152231155,
		Items:    defaultDraftItems(),
		Rates:    svc.DefaultRates(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1006), sent.InvoiceNumber)

	tender, err := svc.GetTender(context.Background(), 451152231155)
	require.NoError(t, err)
	assert.Equal(t, 3, tender.Status)
	assert.Equal(t, "2025-06-02T10:00:00Z", tender.PhaseDates.AwaitingResponse)

	last := tender.Messages[len(tender.Messages)-1]
	assert.Equal(t, "Ny faktura inskickad", last.Title)
	assert.Contains(t, last.Message, "Faktura #1006")
	assert.Equal(t, int64(103), last.Author.ID)
}

func TestSendInvoiceKeepsLaterPhase(t *testing.T) {
	svc := newTestService(t)

	// tender 451152231151 is already past phase 3
	_, err := svc.SendInvoice(context.Background(), contractor, SaveInvoiceInput{
		TenderID: 451152231151,
		Items:    defaultDraftItems(),
		Rates:    svc.DefaultRates(),
	})
	require.NoError(t, err)

	tender, err := svc.GetTender(context.Background(), 451152231151)
	require.NoError(t, err)
	assert.Equal(t, 4, tender.Status)
	assert.Equal(t, "2025-05-02T12:00", tender.PhaseDates.AwaitingResponse)
}

func TestSendInvoiceRequiresItems(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SendInvoice(context.Background(), contractor, SaveInvoiceInput{TenderID: 451152231155})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetInvoiceStatus(t *testing.T) {
	svc := newTestService(t)

	action := "Godkänd av försäkringsbolag"
	updated, err := svc.SetInvoiceStatus(context.Background(), insurer, 1000, model.InvoiceStatusApproved, &action)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusApproved, updated.Status)
	require.NotNil(t, updated.ActionTaken)
	assert.Equal(t, action, *updated.ActionTaken)

	stored, err := svc.GetInvoice(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusApproved, stored.Status)
}

func TestSetInvoiceStatusPermissions(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SetInvoiceStatus(context.Background(), contractor, 1000, model.InvoiceStatusApproved, nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.SetInvoiceStatus(context.Background(), insurer, 1000, model.InvoiceStatus(7), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetInvoiceStatus(context.Background(), insurer, 42, model.InvoiceStatusApproved, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListInvoicesGrouping(t *testing.T) {
	svc := newTestService(t)

	groups := svc.ListInvoices(context.Background())
	assert.Len(t, groups.Waiting, 2)
	assert.Len(t, groups.Approved, 2)
	assert.Len(t, groups.Denied, 2)
	assert.Empty(t, groups.Paid)
}

func TestCreateQuote(t *testing.T) {
	svc := newTestService(t)

	quote, totals, err := svc.CreateQuote(context.Background(), contractor, CreateQuoteInput{
		ClaimID:    "SKD-2025-001",
		Insurer:    "If Skadeförsäkring AB",
		Contractor: "Dante Bygg AB",
		Customer:   "PB Fastigheter",
		SelfRisk:   2000,
		VATPct:     0.25,
		Rooms: []model.Room{
			{Name: "Kök", Items: []model.RoomItem{
				{Title: "Nytt parkettgolv", Unit: "m²", Qty: 10, UnitPrice: 380, AgeDeductionPct: 0.5},
			}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10000), quote.ID)
	assert.Equal(t, model.InvoiceStatusWaiting, quote.Status)
	assert.NotEmpty(t, quote.QuoteDate)
	assert.Equal(t, 1900.0, totals.Base)
	assert.Equal(t, 0.0, totals.AfterSelfRisk)
	assert.Equal(t, 0.0, totals.TotalWithVAT)
}

func TestCreateQuoteRequiresContractor(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.CreateQuote(context.Background(), insurer, CreateQuoteInput{})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListProtocols(t *testing.T) {
	svc := newTestService(t)

	groups := svc.ListProtocols(context.Background())
	require.Len(t, groups.Waiting, 1)
	assert.Equal(t, int64(451152231151), groups.Waiting[0].ID)
	require.Len(t, groups.Approved, 1)
	assert.Equal(t, int64(451152231154), groups.Approved[0].ID)
	assert.Empty(t, groups.Denied)
}

func TestSetProtocolStatus(t *testing.T) {
	svc := newTestService(t)

	tender, err := svc.SetProtocolStatus(context.Background(), insurer, 451152231151, model.DocumentTitleProtocol, model.ApprovalStatusApproved)
	require.NoError(t, err)

	doc := tender.Protocol()
	require.NotNil(t, doc)
	require.NotNil(t, doc.ApprovalStatus)
	assert.Equal(t, model.ApprovalStatusApproved, *doc.ApprovalStatus)

	groups := svc.ListProtocols(context.Background())
	assert.Empty(t, groups.Waiting)
	assert.Len(t, groups.Approved, 2)
}

func TestSetProtocolStatusErrors(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SetProtocolStatus(context.Background(), contractor, 451152231151, model.DocumentTitleProtocol, model.ApprovalStatusApproved)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.SetProtocolStatus(context.Background(), insurer, 451152231151, "Okänt dokument", model.ApprovalStatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetProtocolStatus(context.Background(), insurer, 451152231151, model.DocumentTitleProtocol, model.ApprovalStatus(9))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTemplateLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	initial := svc.ListTemplates(ctx, contractor)
	require.Len(t, initial, 3)

	tpl, err := svc.CreateTemplate(ctx, contractor, "Badrum standard", []model.MomentTemplateItem{
		{Title: "Tätskikt", Unit: "m²", UnitPrice: 900, QtyPerKvm: 1, QtyMode: model.QtyModePerKvm},
	})
	require.NoError(t, err)

	items, err := svc.ExpandTemplate(ctx, contractor, tpl.ID, 4)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4.0, items[0].Qty)

	require.NoError(t, svc.DeleteTemplate(ctx, contractor, tpl.ID))
	assert.Len(t, svc.ListTemplates(ctx, contractor), 3)

	_, err = svc.ExpandTemplate(ctx, contractor, tpl.ID, 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBuiltInTemplate(t *testing.T) {
	svc := newTestService(t)

	err := svc.DeleteTemplate(context.Background(), contractor, "mep-parkett")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTemplateOperationsRequireContractor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTemplate(ctx, insurer, "X", []model.MomentTemplateItem{{Title: "X", Unit: "st", UnitPrice: 1}})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.DeleteTemplate(ctx, insurer, "custom-x")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestInvoicePDF(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.InvoicePDF(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, "faktura-1000.pdf", result.FileName)
	assert.NotEmpty(t, result.Content)

	_, err = svc.InvoicePDF(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuoteExcel(t *testing.T) {
	svc := newTestService(t)

	quote, _, err := svc.CreateQuote(context.Background(), contractor, CreateQuoteInput{
		ClaimID: "SKD-2025-002",
		Rooms:   []model.Room{{Name: "Vardagsrum", Items: []model.RoomItem{}}},
	})
	require.NoError(t, err)

	result, err := svc.QuoteExcel(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, "offert-10000.xlsx", result.FileName)
	assert.NotEmpty(t, result.Content)
}
