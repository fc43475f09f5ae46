// Package report renders financial reports over a set of transactions.
package report

import (
	"strings"
	"time"

	"oficina-api/internal/models"
)

const dateLayout = "02/01/2006"

// Header describes how a report was filtered. Empty fields mean the filter
// was not applied.
type Header struct {
	Company string
	// Address, CNPJ and Phone are printed on the quote letterhead only.
	Address     string
	CNPJ        string
	Phone       string
	From        *time.Time
	To          *time.Time
	Type        models.TransactionType
	Categories  []string
	GeneratedAt time.Time
}

// Summary holds the report rows and their totals in cents.
type Summary struct {
	TotalTransactions int
	TotalIncome       int64
	TotalExpense      int64
	NetAmount         int64
	Transactions      []*models.Transaction
}

// Summarize totals transactions by type.
func Summarize(transactions []*models.Transaction) Summary {
	s := Summary{
		TotalTransactions: len(transactions),
		Transactions:      transactions,
	}
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			s.TotalIncome += t.Amount
		case models.TransactionTypeExpense:
			s.TotalExpense += t.Amount
		}
	}
	s.NetAmount = s.TotalIncome - s.TotalExpense
	return s
}

// Title builds "Relatório Financeiro de 01/01/2025 a 31/01/2025 - Entradas".
// An open bound prints as "Início" or "Hoje".
func Title(h Header) string {
	var b strings.Builder
	b.WriteString("Relatório Financeiro")

	if h.From != nil || h.To != nil {
		from, to := "Início", "Hoje"
		if h.From != nil {
			from = h.From.Format(dateLayout)
		}
		if h.To != nil {
			to = h.To.Format(dateLayout)
		}
		b.WriteString(" de " + from + " a " + to)
	}

	switch h.Type {
	case models.TransactionTypeIncome:
		b.WriteString(" - Entradas")
	case models.TransactionTypeExpense:
		b.WriteString(" - Saídas")
	}

	return b.String()
}

func categoriesLine(h Header) string {
	if len(h.Categories) == 0 {
		return "Categorias aplicadas: Nenhum"
	}
	return "Categorias aplicadas: " + strings.Join(h.Categories, ", ")
}

func generatedLine(h Header) string {
	return "Gerado em: " + h.GeneratedAt.Format(dateLayout) + " às " + h.GeneratedAt.Format("15:04:05")
}

func categoryName(t *models.Transaction) string {
	if t.Category == nil || t.Category.Name == "" {
		return "Sem categoria"
	}
	return t.Category.Name
}

func nameOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
