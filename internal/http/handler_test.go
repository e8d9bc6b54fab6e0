package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtify/ensured-billing/internal/auth"
	"github.com/techtify/ensured-billing/internal/config"
	"github.com/techtify/ensured-billing/internal/http/middleware"
	"github.com/techtify/ensured-billing/internal/model"
	"github.com/techtify/ensured-billing/internal/service"
	"github.com/techtify/ensured-billing/internal/store"
	"github.com/techtify/ensured-billing/internal/template"
)

const testSecret = "test-secret"

type nullTemplateRepo struct{}

func (nullTemplateRepo) LoadPayload(_ context.Context, _ int64) ([]byte, error) { return nil, nil }
func (nullTemplateRepo) SavePayload(_ context.Context, _ int64, _ []byte) error { return nil }

type stubPDFGenerator struct{}

func (stubPDFGenerator) Generate(model.InvoiceDocument) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

type stubExcelGenerator struct{}

func (stubExcelGenerator) Generate(model.Quote, model.QuoteTotals) ([]byte, error) {
	return []byte("xlsx-stub"), nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	records := store.New()
	store.Seed(records)
	templates := template.NewStore(nullTemplateRepo{}, zerolog.Nop())

	cfg := &config.Config{
		Environment: "test",
		Auth:        config.AuthConfig{AccessSecret: testSecret},
		Billing: config.BillingConfig{
			VATPct:            0.25,
			AdminSurchargePct: 0.06,
			TravelSurcharge:   750,
			SelfRisk:          3000,
			Currency:          "SEK",
			DueDays:           14,
		},
	}

	svc := service.NewBillingService(records, templates, stubPDFGenerator{}, stubExcelGenerator{}, cfg)

	handler := NewHandler(svc, zerolog.Nop())
	parser := auth.NewParser(testSecret)
	return NewRouter(handler, middleware.Auth(parser), "test")
}

func bearerToken(t *testing.T, userID string, name string, userType model.UserType) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      userID,
		"name":     name,
		"userType": int(userType),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, router *gin.Engine, method, path, authorization string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	res := doRequest(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestListTendersRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	res := doRequest(t, router, http.MethodGet, "/tenders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestListTenders(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "103", "Dante Rohlin", model.UserTypeContractor)

	res := doRequest(t, router, http.MethodGet, "/tenders", token, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var tenders []model.Tender
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &tenders))
	assert.Len(t, tenders, 5)
}

func TestSendInvoiceEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "103", "Dante Rohlin", model.UserTypeContractor)

	body := gin.H{
		"items": []gin.H{
			{"code": "MWU-101", "title": "Riv gipsvägg", "unit": "m²", "qty": 10, "unitPrice": 220},
			{"code": "MWU-205", "title": "Torka konstruktion", "unit": "dygn", "qty": 5, "unitPrice": 450},
		},
		"rates": gin.H{
			"vatPct":            0.25,
			"adminSurchargePct": 0.06,
			"travelSurcharge":   750,
			"selfRisk":          3000,
		},
	}
	res := doRequest(t, router, http.MethodPost, "/tenders/451152231155/invoice", token, body)
	require.Equal(t, http.StatusCreated, res.Code)

	var invoice model.Invoice
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &invoice))
	assert.Equal(t, int64(1006), invoice.InvoiceNumber)
	assert.Equal(t, 3834.0, invoice.Total)
}

func TestSendInvoiceForbiddenForInsurer(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "101", "Eric Andrén", model.UserTypeInsurer)

	body := gin.H{"items": []gin.H{{"title": "X", "unit": "st", "qty": 1, "unitPrice": 1}}}
	res := doRequest(t, router, http.MethodPost, "/tenders/451152231155/invoice", token, body)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestGetInvoiceNotFound(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "103", "Dante Rohlin", model.UserTypeContractor)

	res := doRequest(t, router, http.MethodGet, "/invoices/4242", token, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestComputeTotalsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "103", "Dante Rohlin", model.UserTypeContractor)

	body := gin.H{
		"items": []gin.H{
			{"title": "Riv gipsvägg", "unit": "m²", "qty": 10, "unitPrice": 220},
			{"title": "Torka konstruktion", "unit": "dygn", "qty": 5, "unitPrice": 450},
		},
		"rates": gin.H{
			"vatPct":            0.25,
			"adminSurchargePct": 0.06,
			"travelSurcharge":   750,
			"selfRisk":          3000,
		},
	}
	res := doRequest(t, router, http.MethodPost, "/totals", token, body)
	require.Equal(t, http.StatusOK, res.Code)

	var totals model.TotalsBreakdown
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &totals))
	assert.Equal(t, 4450.0, totals.SubTotal)
	assert.Equal(t, 5467.0, totals.BeforeVAT)
	assert.Equal(t, 1367.0, totals.VAT)
	assert.Equal(t, 3834.0, totals.Total)
}

func TestInvoicePDFDownload(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "103", "Dante Rohlin", model.UserTypeContractor)

	res := doRequest(t, router, http.MethodGet, "/invoices/1000/pdf", token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/pdf", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Header().Get("Content-Disposition"), "faktura-1000.pdf")
}

func TestSetInvoiceStatusEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "101", "Eric Andrén", model.UserTypeInsurer)

	body := gin.H{"status": 2, "actionTaken": "Godkänd"}
	res := doRequest(t, router, http.MethodPost, "/invoices/1000/status", token, body)
	require.Equal(t, http.StatusOK, res.Code)

	var invoice model.Invoice
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &invoice))
	assert.Equal(t, model.InvoiceStatusApproved, invoice.Status)
}

func TestListTemplatesEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := bearerToken(t, "103", "Dante Rohlin", model.UserTypeContractor)

	res := doRequest(t, router, http.MethodGet, "/templates", token, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var templates []model.MomentTemplate
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &templates))
	assert.Len(t, templates, 3)
}
