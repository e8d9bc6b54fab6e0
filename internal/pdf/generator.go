package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/techtify/ensured-billing/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

// Generate renders the invoice with its line items and breakdown. Swedish
// text fits in cp1252, so the built-in core fonts are used via the
// descriptor translator.
func (g *Generator) Generate(doc model.InvoiceDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	inv := doc.Invoice

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Faktura #%d", inv.InvoiceNumber)), "", 1, "L", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Fakturadatum: %s", safeValue(inv.InvoiceDate))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Förfallodatum: %s", safeValue(inv.InvoiceDueDate))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Fakturerande part: %s", safeValue(inv.InvoicingPart))), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if doc.Tender != nil {
		addTenderBlock(pdf, g.fontName, tr, doc.Tender)
		pdf.Ln(2)
	}

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Specifikation"), "", 1, "L", false, 0, "")

	headers := []string{"Kod", "Moment", "Enhet", "Antal", "À-pris", "Belopp"}
	colWidths := []float64{22, 73, 18, 20, 23, 24}
	drawTableRow(pdf, g.fontName, tr, headers, colWidths, true)

	for _, item := range inv.Items {
		row := []string{
			item.Code,
			item.Title,
			item.Unit,
			formatAmount(item.Qty, 2),
			formatAmount(item.UnitPrice, 2),
			formatAmount(item.Amount(), 2),
		}
		drawTableRow(pdf, g.fontName, tr, row, colWidths, false)
	}
	pdf.Ln(3)

	adminSurcharge := inv.BeforeVAT - inv.SubTotal - inv.TravelSurcharge
	summary := []struct {
		label string
		value float64
	}{
		{"Delsumma", inv.SubTotal},
		{fmt.Sprintf("Påslag adm (%.0f%%)", inv.AdminSurchargePct*100), adminSurcharge},
		{"Resor mm", inv.TravelSurcharge},
		{"Summa före moms", inv.BeforeVAT},
		{fmt.Sprintf("Moms (%.0f%%)", inv.VATPct*100), inv.VAT},
		{"Självrisk", -inv.SelfRisk},
	}
	pdf.SetFont(g.fontName, "", 11)
	for _, row := range summary {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s: %s %s", row.label, formatAmount(row.value, 2), inv.Currency)), "", 1, "R", false, 0, "")
	}
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Att betala: %s %s", formatAmount(inv.Total, 2), inv.Currency)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addTenderBlock(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, tender *model.Tender) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Ärende #%d", tender.ID)), "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		fmt.Sprintf("Fastighetsägare: %s", safeValue(tender.PropertyOwner.Name)),
		fmt.Sprintf("Fastighet: %s, %s %s", safeValue(tender.Property.Address), tender.Property.Zip, tender.Property.Town),
		fmt.Sprintf("Skadetyp: %s", safeValue(tender.DamageType.Label)),
		fmt.Sprintf("Försäkringsbolag: %s", safeValue(tender.InsurerName)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func formatAmount(value float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	return fmt.Sprintf(format, value)
}
