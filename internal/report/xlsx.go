package report

import (
	"fmt"

	"oficina-api/pkg/money"

	"github.com/xuri/excelize/v2"
)

const (
	transactionsSheet = "Transações"
	summarySheet      = "Resumo"
)

var currencyFormat = `"R$" #,##0.00;-"R$" #,##0.00`

// RenderXLSX writes the report as a workbook with a transactions sheet and
// a summary sheet. Amounts are numeric cells in reais.
func RenderXLSX(s Summary, h Header) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00008B"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFormat})
	if err != nil {
		return nil, err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}

	if err := writeTransactions(f, s, headStyle, moneyStyle); err != nil {
		return nil, err
	}
	if err := writeSummary(f, s, h, headStyle, moneyStyle, titleStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTransactions(f *excelize.File, s Summary, headStyle, moneyStyle int) error {
	sheet := transactionsSheet
	for i, col := range transactionColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col.title); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headStyle); err != nil {
		return err
	}

	for i, t := range s.Transactions {
		row := i + 2
		values := []interface{}{
			t.Date.UTC().Format(dateLayout),
			nameOrDash(t.Name),
			t.Type.Label(),
			categoryName(t),
			money.CentsToReais(t.Amount).InexactFloat64(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if len(s.Transactions) > 0 {
		last := fmt.Sprintf("E%d", len(s.Transactions)+1)
		if err := f.SetCellStyle(sheet, "E2", last, moneyStyle); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 12, "B": 40, "C": 10, "D": 20, "E": 16}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, s Summary, h Header, headStyle, moneyStyle, titleStyle int) error {
	sheet := summarySheet
	rows := [][]interface{}{
		{Title(h)},
		{generatedLine(h)},
		{categoriesLine(h)},
		{},
		summaryHead(),
		{
			s.TotalTransactions,
			money.CentsToReais(s.TotalIncome).InexactFloat64(),
			money.CentsToReais(s.TotalExpense).InexactFloat64(),
			money.CentsToReais(s.NetAmount).InexactFloat64(),
		},
	}

	for i, values := range rows {
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A5", "D5", headStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "B6", "D6", moneyStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "D", 18)
}

func summaryHead() []interface{} {
	head := make([]interface{}, len(summaryColumns))
	for i, c := range summaryColumns {
		head[i] = c
	}
	return head
}
