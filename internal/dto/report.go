package dto

// ReportRequest selects the transactions of a financial report. From and To
// are YYYY-MM-DD; when both are empty Period is resolved as free text.
type ReportRequest struct {
	Type        string   `json:"type" validate:"omitempty,oneof=all income expense"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	From        string   `json:"from,omitempty"`
	To          string   `json:"to,omitempty"`
	Period      string   `json:"period,omitempty"`
}

type ReportResponse struct {
	From              string                `json:"from,omitempty"`
	To                string                `json:"to,omitempty"`
	Type              string                `json:"type"`
	Categories        []string              `json:"categories"`
	TotalTransactions int                   `json:"total_transactions"`
	TotalIncome       float64               `json:"total_income"`
	TotalExpense      float64               `json:"total_expense"`
	NetAmount         float64               `json:"net_amount"`
	Transactions      []TransactionResponse `json:"transactions"`
}
