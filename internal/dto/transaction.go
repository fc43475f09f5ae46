package dto

import "oficina-api/pkg/money"

// SaveTransactionRequest creates or edits a transaction. Amount is in reais,
// as a number or a string like "R$ 1.234,56". Date is YYYY-MM-DD and
// CategoryID is optional.
type SaveTransactionRequest struct {
	Name       string       `json:"name" validate:"required"`
	Type       string       `json:"type" validate:"required,oneof=income expense"`
	Amount     money.Amount `json:"amount" validate:"gte=0"`
	Date       string       `json:"transaction_date" validate:"required"`
	CategoryID string       `json:"transaction_category_id,omitempty"`
}

type TransactionResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	Amount          float64           `json:"amount"`
	AmountFormatted string            `json:"amount_formatted"`
	Date            string            `json:"transaction_date"`
	Category        *CategoryResponse `json:"category"`
	CreatedAt       string            `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"total_pages"`
	Total        int                   `json:"total"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// TransactionListQuery is bound from the query string of the listing endpoint.
type TransactionListQuery struct {
	Page     int    `query:"page"`
	Type     string `query:"type"`
	Category string `query:"category"`
	From     string `query:"from"`
	To       string `query:"to"`
}
