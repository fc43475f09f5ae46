package report

import (
	"bytes"
	"fmt"
	"strings"

	"oficina-api/internal/models"
	"oficina-api/pkg/money"

	"github.com/go-pdf/fpdf"
)

const (
	letterheadH = 30.0
	quoteBodyY  = 50.0
	authBlockH  = 55.0
)

// RenderQuotePDF draws the customer copy of a quote: the shop letterhead on
// every page, customer and vehicle data, the services grid, observations,
// totals and the work order authorization block.
func RenderQuotePDF(q *models.Quote, h Header) ([]byte, error) {
	if q == nil {
		return nil, fmt.Errorf("failed to render quote pdf: nil quote")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, quoteBodyY, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetCreationDate(h.GeneratedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(QuoteTitle(q), true)
	pdf.SetHeaderFunc(func() {
		drawLetterhead(pdf, tr, h, q)
	})
	pdf.AddPage()

	drawParties(pdf, tr, q)

	pdf.SetY(90)
	drawServices(pdf, tr, q.Services)

	if obs := strings.TrimSpace(q.Observations); len(obs) > 1 {
		drawObservations(pdf, tr, obs)
	}

	drawQuoteTotals(pdf, tr, q)
	drawAuthorization(pdf, tr, h)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// QuoteTitle builds "Orçamento - Maria (01/03/2025)".
func QuoteTitle(q *models.Quote) string {
	return fmt.Sprintf("Orçamento - %s (%s)", nameOrDash(q.ClientName), q.CreatedAt.Format(dateLayout))
}

func drawLetterhead(pdf *fpdf.Fpdf, tr func(string) string, h Header, q *models.Quote) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.1)
	pdf.Rect(pageMargin, headerTop, tableWidth, letterheadH, "D")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(15, 17, truncate(pdf, tr(h.Company), 180))

	pdf.SetFont("Helvetica", "", 10)
	y := 22.0
	for _, line := range []string{h.Address, h.CNPJ, h.Phone} {
		if line == "" {
			continue
		}
		pdf.Text(15, y, truncate(pdf, tr(line), 180))
		y += 5
	}
	pdf.Text(15, y, "Data: "+q.CreatedAt.Format(dateLayout))
}

func drawParties(pdf *fpdf.Fpdf, tr func(string) string, q *models.Quote) {
	pdf.Rect(pageMargin, 45, tableWidth, 36, "D")
	pdf.SetFillColor(204, 204, 204)
	pdf.Rect(pageMargin, 45, tableWidth, 8, "FD")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(11.5, 50, tr("Dados do cliente:"))
	pdf.Text(100, 50, tr("Dados do veículo:"))

	pdf.SetFont("Helvetica", "", 10)
	customer := []string{
		"Nome: " + q.ClientName,
		"Telefone: " + q.ClientPhone,
		"CPF: " + q.ClientCPF,
		"Endereço: " + q.ClientAddress,
	}
	y := 58.0
	for _, line := range customer {
		pdf.Text(11.5, y, truncate(pdf, tr(line), 86))
		y += 7
	}

	vehicle := [][2]string{
		{"Marca: " + q.VehicleBrand, "Cor: " + q.VehicleColor},
		{"Modelo: " + q.VehicleModel, "Chassi: " + q.VehicleChassi},
		{"Ano: " + q.VehicleYear, ""},
		{"Placa: " + q.VehicleLicensePlate, ""},
	}
	y = 58.0
	for _, pair := range vehicle {
		pdf.Text(100, y, truncate(pdf, tr(pair[0]), 48))
		if pair[1] != "" {
			pdf.Text(150, y, truncate(pdf, tr(pair[1]), 48))
		}
		y += 7
	}
}

func drawGrayHead(pdf *fpdf.Fpdf, tr func(string) string, titles []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(204, 204, 204)
	for i, title := range titles {
		pdf.CellFormat(widths[i], rowHeight, tr(title), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
}

func drawServices(pdf *fpdf.Fpdf, tr func(string) string, services []models.Service) {
	widths := []float64{150, 40}
	drawGrayHead(pdf, tr, []string{"Serviço", "Valor"}, widths)

	for _, s := range services {
		if pdf.GetY()+rowHeight > bottomLimit {
			pdf.AddPage()
			drawGrayHead(pdf, tr, []string{"Serviço", "Valor"}, widths)
		}
		pdf.CellFormat(widths[0], rowHeight, truncate(pdf, tr(nameOrDash(s.Name)), widths[0]-2), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], rowHeight, tr(money.FormatBRL(s.Price)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}

func drawObservations(pdf *fpdf.Fpdf, tr func(string) string, obs string) {
	lines := pdf.SplitText(tr(obs), tableWidth-2)
	if pdf.GetY()+10+rowHeight*float64(len(lines)+1) > bottomLimit {
		pdf.AddPage()
	} else {
		pdf.Ln(10)
	}

	drawGrayHead(pdf, tr, []string{"Observações"}, []float64{tableWidth})
	pdf.MultiCell(tableWidth, rowHeight, tr(obs), "1", "L", false)
}

func drawQuoteTotals(pdf *fpdf.Fpdf, tr func(string) string, q *models.Quote) {
	if pdf.GetY()+10+2*rowHeight > bottomLimit {
		pdf.AddPage()
	} else {
		pdf.Ln(10)
	}

	subtotal := q.ServicesTotal()
	var discount, surcharge int64
	if q.TotalPrice < subtotal {
		discount = subtotal - q.TotalPrice
	} else {
		surcharge = q.TotalPrice - subtotal
	}

	width := tableWidth / 4
	widths := []float64{width, width, width, width}
	drawGrayHead(pdf, tr, []string{"Subtotal", "Desconto", "Acréscimo", "Total"}, widths)
	for _, v := range []int64{subtotal, discount, surcharge, q.TotalPrice} {
		pdf.CellFormat(width, rowHeight, tr(money.FormatBRL(v)), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func drawAuthorization(pdf *fpdf.Fpdf, tr func(string) string, h Header) {
	y := pdf.GetY() + 10
	if y+authBlockH > bottomLimit {
		pdf.AddPage()
		y = quoteBodyY
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageMargin, y+10, tr("Autorização para execução da Ordem de Serviço"))

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageMargin, y+20, tr("Autorizo a execução dos serviços descritos acima conforme orçamento apresentado."))
	pdf.Text(pageMargin, y+30, tr("Assinatura do cliente: ______________________________________"))
	pdf.Text(pageMargin, y+40, tr(nameOrDash(h.Company)+": ______________________________________"))
	pdf.Text(pageMargin, y+50, "Data: "+h.GeneratedAt.Format(dateLayout))
}
