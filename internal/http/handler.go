package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techtify/ensured-billing/internal/http/middleware"
	"github.com/techtify/ensured-billing/internal/model"
	"github.com/techtify/ensured-billing/internal/service"
)

type Handler struct {
	billing *service.BillingService
	log     zerolog.Logger
}

func NewHandler(billing *service.BillingService, log zerolog.Logger) *Handler {
	return &Handler{billing: billing, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/tenders", h.listTenders)
	protected.GET("/tenders/:id", h.getTender)

	protected.GET("/invoices", h.listInvoices)
	protected.GET("/invoices/:number", h.getInvoice)
	protected.GET("/invoices/:number/pdf", h.invoicePDF)
	protected.POST("/invoices/:number/status", h.setInvoiceStatus)
	protected.GET("/tenders/:id/invoice-draft", h.startInvoiceDraft)
	protected.POST("/tenders/:id/invoice-draft", h.saveInvoiceDraft)
	protected.POST("/tenders/:id/invoice", h.sendInvoice)

	protected.GET("/quotes", h.listQuotes)
	protected.POST("/quotes", h.createQuote)
	protected.GET("/quotes/:id", h.getQuote)
	protected.GET("/quotes/:id/excel", h.quoteExcel)

	protected.GET("/protocols", h.listProtocols)
	protected.POST("/tenders/:id/documents/status", h.setProtocolStatus)

	protected.GET("/templates", h.listTemplates)
	protected.POST("/templates", h.createTemplate)
	protected.POST("/templates/from-row", h.createTemplateFromRow)
	protected.DELETE("/templates/:id", h.deleteTemplate)
	protected.POST("/templates/:id/expand", h.expandTemplate)

	protected.POST("/totals", h.computeTotals)
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *Handler) listTenders(c *gin.Context) {
	c.JSON(http.StatusOK, h.billing.ListTenders(c.Request.Context()))
}

func (h *Handler) getTender(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tender, err := h.billing.GetTender(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tender)
}

func (h *Handler) listInvoices(c *gin.Context) {
	c.JSON(http.StatusOK, h.billing.ListInvoices(c.Request.Context()))
}

func (h *Handler) getInvoice(c *gin.Context) {
	number, ok := pathID(c, "number")
	if !ok {
		return
	}
	invoice, err := h.billing.GetInvoice(c.Request.Context(), number)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) startInvoiceDraft(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	draft, err := h.billing.StartInvoiceDraft(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

type saveInvoiceRequest struct {
	Items []model.LineItem `json:"items" binding:"required"`
	Rates model.Rates      `json:"rates"`
}

func (h *Handler) saveInvoiceDraft(c *gin.Context) {
	h.storeInvoice(c, h.billing.SaveInvoiceDraft)
}

func (h *Handler) sendInvoice(c *gin.Context) {
	h.storeInvoice(c, h.billing.SendInvoice)
}

func (h *Handler) storeInvoice(c *gin.Context, op func(ctx context.Context, principal model.Principal, input service.SaveInvoiceInput) (model.Invoice, error)) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req saveInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	invoice, err := op(c.Request.Context(), principal, service.SaveInvoiceInput{
		TenderID: id,
		Items:    req.Items,
		Rates:    req.Rates,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

type invoiceStatusRequest struct {
	Status      int     `json:"status" binding:"required"`
	ActionTaken *string `json:"actionTaken"`
}

func (h *Handler) setInvoiceStatus(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	number, ok := pathID(c, "number")
	if !ok {
		return
	}
	var req invoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	invoice, err := h.billing.SetInvoiceStatus(c.Request.Context(), principal, number, model.InvoiceStatus(req.Status), req.ActionTaken)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) invoicePDF(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	number, ok := pathID(c, "number")
	if !ok {
		return
	}
	result, err := h.billing.InvoicePDF(c.Request.Context(), number)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) listQuotes(c *gin.Context) {
	c.JSON(http.StatusOK, h.billing.ListQuotes(c.Request.Context()))
}

type createQuoteRequest struct {
	ClaimID    string       `json:"claimId"`
	Insurer    string       `json:"insurer"`
	Contractor string       `json:"contractor"`
	Customer   string       `json:"customer"`
	SelfRisk   float64      `json:"selfRisk"`
	VATPct     float64      `json:"vatPct"`
	Rooms      []model.Room `json:"rooms" binding:"required"`
	TenderID   int64        `json:"tenderId"`
}

func (h *Handler) createQuote(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req createQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quote, totals, err := h.billing.CreateQuote(c.Request.Context(), principal, service.CreateQuoteInput{
		ClaimID:    req.ClaimID,
		Insurer:    req.Insurer,
		Contractor: req.Contractor,
		Customer:   req.Customer,
		SelfRisk:   req.SelfRisk,
		VATPct:     req.VATPct,
		Rooms:      req.Rooms,
		TenderID:   req.TenderID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"quote": quote, "totals": totals})
}

func (h *Handler) getQuote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	quote, err := h.billing.GetQuote(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *Handler) quoteExcel(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.billing.QuoteExcel(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) listProtocols(c *gin.Context) {
	c.JSON(http.StatusOK, h.billing.ListProtocols(c.Request.Context()))
}

type protocolStatusRequest struct {
	Title  string `json:"title"`
	Status int    `json:"status" binding:"required"`
}

func (h *Handler) setProtocolStatus(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req protocolStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	title := req.Title
	if title == "" {
		title = model.DocumentTitleProtocol
	}
	tender, err := h.billing.SetProtocolStatus(c.Request.Context(), principal, id, title, model.ApprovalStatus(req.Status))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tender)
}

func (h *Handler) listTemplates(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.billing.ListTemplates(c.Request.Context(), principal))
}

type createTemplateRequest struct {
	Name  string                     `json:"name" binding:"required"`
	Items []model.MomentTemplateItem `json:"items" binding:"required"`
}

func (h *Handler) createTemplate(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl, err := h.billing.CreateTemplate(c.Request.Context(), principal, req.Name, req.Items)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

type createTemplateFromRowRequest struct {
	Name string         `json:"name" binding:"required"`
	Row  model.LineItem `json:"row" binding:"required"`
}

func (h *Handler) createTemplateFromRow(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req createTemplateFromRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl, err := h.billing.CreateTemplateFromRow(c.Request.Context(), principal, req.Name, req.Row)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *Handler) deleteTemplate(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.billing.DeleteTemplate(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type expandTemplateRequest struct {
	AreaKvm float64 `json:"areaKvm"`
}

func (h *Handler) expandTemplate(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req expandTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := h.billing.ExpandTemplate(c.Request.Context(), principal, c.Param("id"), req.AreaKvm)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type computeTotalsRequest struct {
	Items []model.LineItem `json:"items" binding:"required"`
	Rates model.Rates      `json:"rates"`
}

func (h *Handler) computeTotals(c *gin.Context) {
	var req computeTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.billing.ComputeTotals(req.Items, req.Rates))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
