package dto

type QuotesStats struct {
	CurrentMonthCount  int `json:"current_month_count"`
	PreviousMonthCount int `json:"previous_month_count"`
	PercentageChange   int `json:"percentage_change"`
}

// RevenueStats amounts are in reais.
type RevenueStats struct {
	CurrentMonthRevenue  float64 `json:"current_month_revenue"`
	PreviousMonthRevenue float64 `json:"previous_month_revenue"`
	PercentageChange     int     `json:"percentage_change"`
}

type DashboardStatsResponse struct {
	Quotes  QuotesStats  `json:"quotes"`
	Revenue RevenueStats `json:"revenue"`
}

type ActivityResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Time        string  `json:"time"`
	Amount      float64 `json:"amount"`
	ClientName  string  `json:"client_name,omitempty"`
}

type RecentActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}
