package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/techtify/ensured-billing/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds a quote workbook: one summary sheet followed by one sheet
// per room.
func (g *Generator) Generate(quote model.Quote, totals model.QuoteTotals) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Sammanställning"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, quote, totals); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for i, room := range quote.Rooms {
		sheetName := buildSheetName(room.Name, i, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeRoom(file, sheetName, room); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, quote model.Quote, totals model.QuoteTotals) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Offert")
	set("B1", quote.ID)
	set("A2", "Skadenummer")
	set("B2", quote.ClaimID)
	set("A3", "Försäkringsbolag")
	set("B3", quote.Insurer)
	set("A4", "Entreprenör")
	set("B4", quote.Contractor)
	set("A5", "Kund")
	set("B5", quote.Customer)
	set("A6", "Offertdatum")
	set("B6", quote.QuoteDate)

	tableRow := 8
	set(fmt.Sprintf("A%d", tableRow), "Utrymme")
	set(fmt.Sprintf("B%d", tableRow), "Antal moment")
	set(fmt.Sprintf("C%d", tableRow), "Belopp efter åldersavdrag")

	for i, room := range quote.Rooms {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), room.Name)
		set(fmt.Sprintf("B%d", row), len(room.Items))
		set(fmt.Sprintf("C%d", row), formatAmount(roomBase(room)))
	}

	summaryRow := tableRow + len(quote.Rooms) + 2
	set(fmt.Sprintf("A%d", summaryRow), "Summa")
	set(fmt.Sprintf("B%d", summaryRow), formatAmount(totals.Base))
	set(fmt.Sprintf("A%d", summaryRow+1), "Efter självrisk")
	set(fmt.Sprintf("B%d", summaryRow+1), formatAmount(totals.AfterSelfRisk))
	set(fmt.Sprintf("A%d", summaryRow+2), fmt.Sprintf("Moms (%.0f%%)", quote.VATPct*100))
	set(fmt.Sprintf("B%d", summaryRow+2), formatAmount(totals.VAT))
	set(fmt.Sprintf("A%d", summaryRow+3), "Totalt inkl moms")
	set(fmt.Sprintf("B%d", summaryRow+3), formatAmount(totals.TotalWithVAT))

	_ = file.SetColWidth(sheet, "A", "A", 32)
	_ = file.SetColWidth(sheet, "B", "B", 20)
	_ = file.SetColWidth(sheet, "C", "C", 26)
	return nil
}

func (g *Generator) writeRoom(file *excelize.File, sheet string, room model.Room) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Utrymme")
	set("B1", room.Name)

	tableRow := 3
	headers := []string{
		"Kod",
		"Moment",
		"Enhet",
		"Antal",
		"À-pris",
		"Åldersavdrag %",
		"Belopp",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, item := range room.Items {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), item.Code)
		set(fmt.Sprintf("B%d", row), item.Title)
		set(fmt.Sprintf("C%d", row), item.Unit)
		set(fmt.Sprintf("D%d", row), item.Qty)
		set(fmt.Sprintf("E%d", row), formatAmount(item.UnitPrice))
		set(fmt.Sprintf("F%d", row), formatAmount(item.AgeDeductionPct*100))
		set(fmt.Sprintf("G%d", row), formatAmount(lineNet(item)))
	}

	summaryRow := tableRow + len(room.Items) + 2
	set(fmt.Sprintf("A%d", summaryRow), "Summa utrymme")
	set(fmt.Sprintf("B%d", summaryRow), formatAmount(roomBase(room)))

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "F", 14)
	_ = file.SetColWidth(sheet, "G", "G", 16)
	return nil
}

func buildSheetName(name string, index int, used map[string]struct{}) string {
	base := sanitizeSheetName(name)
	if base == "" {
		base = fmt.Sprintf("Utrymme %d", index+1)
	}
	if len(base) > 31 {
		base = base[:31]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	return strings.TrimSpace(replacer.Replace(value))
}

func lineNet(item model.RoomItem) float64 {
	line := item.UnitPrice * item.Qty
	return line - line*item.AgeDeductionPct
}

func roomBase(room model.Room) float64 {
	total := 0.0
	for _, item := range room.Items {
		total += lineNet(item)
	}
	return total
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
