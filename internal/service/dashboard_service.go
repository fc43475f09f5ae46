package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/internal/period"

	"go.uber.org/zap"
)

const (
	recentPerSource = 3
	maxActivities   = 5
)

type DashboardService struct {
	quotes       QuoteStore
	transactions TransactionStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewDashboardService(quotes QuoteStore, transactions TransactionStore, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		quotes:       quotes,
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
}

// Stats compares quote volume and revenue of the current UTC month with the
// previous one.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := s.now().UTC()
	curStart, curEnd := period.MonthBounds(now.Year(), now.Month())
	prevStart, prevEnd := period.MonthBounds(now.Year(), now.Month()-1)

	curCount, curRevenue, err := s.quotes.CountAndSumBetween(ctx, curStart, curEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load current month quotes: %w", err)
	}
	prevCount, prevRevenue, err := s.quotes.CountAndSumBetween(ctx, prevStart, prevEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous month quotes: %w", err)
	}

	return &dto.DashboardStatsResponse{
		Quotes: dto.QuotesStats{
			CurrentMonthCount:  curCount,
			PreviousMonthCount: prevCount,
			PercentageChange:   percentageChange(int64(curCount), int64(prevCount)),
		},
		Revenue: dto.RevenueStats{
			CurrentMonthRevenue:  reais(curRevenue),
			PreviousMonthRevenue: reais(prevRevenue),
			PercentageChange:     percentageChange(curRevenue, prevRevenue),
		},
	}, nil
}

// percentageChange rounds half up. A zero baseline yields 100 when anything
// happened in the current period and 0 otherwise.
func percentageChange(current, previous int64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	change := float64(current-previous) / float64(previous) * 100
	return int(math.Floor(change + 0.5))
}

type activity struct {
	dto.ActivityResponse
	createdAt time.Time
}

// RecentActivities merges the latest quotes and transactions, newest first.
// A failing source is logged and skipped.
func (s *DashboardService) RecentActivities(ctx context.Context) (*dto.RecentActivitiesResponse, error) {
	now := s.now()
	var items []activity

	quotes, err := s.quotes.Recent(ctx, recentPerSource)
	if err != nil {
		s.logger.Error("Failed to load recent quotes", zap.Error(err))
	}
	for _, q := range quotes {
		items = append(items, activity{
			ActivityResponse: dto.ActivityResponse{
				ID:          "quote-" + q.ID.String(),
				Type:        "quote",
				Description: "Novo orçamento criado para " + q.ClientName,
				Time:        relativeTime(now, q.CreatedAt),
				Amount:      reais(q.TotalPrice),
				ClientName:  q.ClientName,
			},
			createdAt: q.CreatedAt,
		})
	}

	transactions, txErr := s.transactions.Recent(ctx, recentPerSource)
	if txErr != nil {
		s.logger.Error("Failed to load recent transactions", zap.Error(txErr))
		if err != nil {
			return nil, fmt.Errorf("failed to load recent activities: %w", txErr)
		}
	}
	for _, t := range transactions {
		description := "Despesa registrada - " + t.Name
		if t.Type == models.TransactionTypeIncome {
			description = "Receita recebida - " + t.Name
		}
		items = append(items, activity{
			ActivityResponse: dto.ActivityResponse{
				ID:          "transaction-" + t.ID.String(),
				Type:        "transaction",
				Description: description,
				Time:        relativeTime(now, t.CreatedAt),
				Amount:      reais(t.Amount),
			},
			createdAt: t.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].createdAt.After(items[j].createdAt)
	})
	if len(items) > maxActivities {
		items = items[:maxActivities]
	}

	resp := &dto.RecentActivitiesResponse{Activities: make([]dto.ActivityResponse, 0, len(items))}
	for _, it := range items {
		resp.Activities = append(resp.Activities, it.ActivityResponse)
	}
	return resp, nil
}

// relativeTime renders the distance from t to now in Portuguese.
func relativeTime(now, t time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 60:
		if minutes <= 1 {
			return "agora"
		}
		return fmt.Sprintf("%d minutos atrás", minutes)
	case hours < 24:
		if hours == 1 {
			return "1 hora atrás"
		}
		return fmt.Sprintf("%d horas atrás", hours)
	case days == 1:
		return "1 dia atrás"
	default:
		return fmt.Sprintf("%d dias atrás", days)
	}
}
