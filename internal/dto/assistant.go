package dto

import (
	"oficina-api/internal/period"
	"oficina-api/pkg/money"
)

// QuoteSearchRequest mirrors the arguments of the quote search tool. Values
// are in reais; a nil Limit means the default.
type QuoteSearchRequest struct {
	ClientName    string        `json:"client_name,omitempty"`
	VehicleFilter string        `json:"vehicle_filter,omitempty"`
	Period        string        `json:"period,omitempty"`
	MinValue      *money.Amount `json:"min_value,omitempty"`
	MaxValue      *money.Amount `json:"max_value,omitempty"`
	Limit         *int          `json:"limit,omitempty"`
}

type AssistantQuote struct {
	QuoteResponse
	ServicesCount int     `json:"services_count"`
	ServicesTotal float64 `json:"services_total"`
}

type QuoteSearchSummary struct {
	TotalValue     float64            `json:"total_value"`
	FiltersApplied QuoteSearchRequest `json:"filters_applied"`
}

type QuoteSearchResponse struct {
	Count            int                `json:"count"`
	Quotes           []AssistantQuote   `json:"quotes"`
	Message          string             `json:"message,omitempty"`
	Period           period.Range       `json:"period"`
	PeriodRecognized *bool              `json:"period_recognized,omitempty"`
	Summary          QuoteSearchSummary `json:"summary"`
}

// TransactionSearchRequest mirrors the arguments of the transaction search tool.
type TransactionSearchRequest struct {
	TransactionName     string        `json:"transaction_name,omitempty"`
	TransactionCategory string        `json:"transaction_category,omitempty"`
	TransactionType     string        `json:"transaction_type,omitempty"`
	Period              string        `json:"period,omitempty"`
	MinValue            *money.Amount `json:"min_value,omitempty"`
	MaxValue            *money.Amount `json:"max_value,omitempty"`
	Limit               *int          `json:"limit,omitempty"`
}

type TransactionSearchResponse struct {
	Count            int                   `json:"count"`
	Data             []TransactionResponse `json:"data"`
	Message          string                `json:"message,omitempty"`
	Period           period.Range          `json:"period"`
	PeriodRecognized *bool                 `json:"period_recognized,omitempty"`
	TotalIncome      float64               `json:"total_income"`
	TotalExpense     float64               `json:"total_expense"`
}

type PeriodResponse struct {
	Text       string       `json:"text"`
	Period     period.Range `json:"period"`
	Recognized bool         `json:"recognized"`
}

type ChatRequest struct {
	Question string `json:"question" validate:"required"`
}

type ChatResponse struct {
	Response      string `json:"response"`
	ExecutionTime int64  `json:"execution_time"`
}
