package report

import (
	"bytes"
	"fmt"

	"oficina-api/pkg/money"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin  = 10.0
	tableWidth  = 190.0
	rowHeight   = 7.0
	headerTop   = 10.0
	headerBoxH  = 40.0
	bottomLimit = 280.0
)

var (
	transactionColumns = []struct {
		title string
		width float64
		align string
	}{
		{"Data", 28, "C"},
		{"Nome", 75, "L"},
		{"Tipo", 25, "C"},
		{"Categoria", 35, "L"},
		{"Valor", 27, "R"},
	}
	summaryColumns = []string{"Transações", "Entradas", "Saídas", "Saldo Líquido"}
)

// RenderPDF draws the report as an A4 PDF: a framed header, the transaction
// grid and a summary grid.
func RenderPDF(s Summary, h Header) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetCreationDate(h.GeneratedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(Title(h), true)
	pdf.AddPage()

	drawHeader(pdf, tr, h)

	pdf.SetY(headerTop + headerBoxH + 10)
	drawTransactionHead(pdf, tr)

	pdf.SetFont("Helvetica", "", 9)
	for i, t := range s.Transactions {
		if pdf.GetY()+rowHeight > bottomLimit {
			pdf.AddPage()
			drawTransactionHead(pdf, tr)
			pdf.SetFont("Helvetica", "", 9)
		}

		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		cells := []string{
			t.Date.UTC().Format(dateLayout),
			nameOrDash(t.Name),
			t.Type.Label(),
			categoryName(t),
			money.FormatBRL(t.Amount),
		}
		for j, col := range transactionColumns {
			pdf.CellFormat(col.width, rowHeight, truncate(pdf, tr(cells[j]), col.width-2), "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.GetY()+4*rowHeight+20 > bottomLimit {
		pdf.AddPage()
	}
	drawSummary(pdf, tr, s)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *fpdf.Fpdf, tr func(string) string, h Header) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.Rect(pageMargin, headerTop, tableWidth, headerBoxH, "D")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(15, 20, truncate(pdf, tr(h.Company), 42))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(60, 20, truncate(pdf, tr(Title(h)), 138))

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(60, 28, tr(generatedLine(h)))
	pdf.Text(60, 36, truncate(pdf, tr(categoriesLine(h)), 135))
}

func drawTransactionHead(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(0, 0, 139)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range transactionColumns {
		pdf.CellFormat(col.width, rowHeight, tr(col.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func drawSummary(pdf *fpdf.Fpdf, tr func(string) string, s Summary) {
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(tableWidth, 8, tr("Resumo Financeiro"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	width := tableWidth / float64(len(summaryColumns))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(0, 0, 139)
	pdf.SetTextColor(255, 255, 255)
	for _, title := range summaryColumns {
		pdf.CellFormat(width, rowHeight, tr(title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(width, rowHeight, fmt.Sprintf("%d", s.TotalTransactions), "1", 0, "C", false, 0, "")

	pdf.SetTextColor(0, 128, 0)
	pdf.CellFormat(width, rowHeight, tr(money.FormatBRL(s.TotalIncome)), "1", 0, "C", false, 0, "")

	pdf.SetTextColor(200, 0, 0)
	pdf.CellFormat(width, rowHeight, tr(money.FormatBRL(s.TotalExpense)), "1", 0, "C", false, 0, "")

	if s.NetAmount >= 0 {
		pdf.SetTextColor(0, 128, 0)
	} else {
		pdf.SetTextColor(200, 0, 0)
	}
	pdf.CellFormat(width, rowHeight, tr(money.FormatBRL(s.NetAmount)), "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

// truncate shortens s with an ellipsis so it fits in width millimetres at
// the current font. s is measured byte by byte, so pass it already
// translated to the single-byte font encoding.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > width {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}
