package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/internal/period"
	"oficina-api/internal/report"
	"oficina-api/internal/repository"

	"go.uber.org/zap"
)

var ErrInvalidReportType = errors.New("report type must be all, income or expense")

type ReportService struct {
	transactions TransactionStore
	categories   CategoryStore
	resolver     *period.Resolver
	company      string
	location     *time.Location
	logger       *zap.Logger
	now          func() time.Time
}

// NewReportService builds the report service. location only affects the
// "generated at" stamp printed on documents.
func NewReportService(transactions TransactionStore, categories CategoryStore, resolver *period.Resolver, company string, location *time.Location, logger *zap.Logger) *ReportService {
	if location == nil {
		location = time.UTC
	}
	return &ReportService{
		transactions: transactions,
		categories:   categories,
		resolver:     resolver,
		company:      company,
		location:     location,
		logger:       logger,
		now:          time.Now,
	}
}

// Build loads the transactions selected by req and totals them.
func (s *ReportService) Build(ctx context.Context, req *dto.ReportRequest) (report.Summary, report.Header, error) {
	header := report.Header{
		Company:     s.company,
		GeneratedAt: s.now().In(s.location),
	}

	filter, err := s.filter(req)
	if err != nil {
		return report.Summary{}, header, err
	}
	header.From = filter.Period.Start
	header.To = filter.Period.End
	header.Type = filter.Type

	if len(filter.CategoryIDs) > 0 {
		names, err := s.categoryNames(ctx, filter)
		if err != nil {
			return report.Summary{}, header, err
		}
		header.Categories = names
	}

	transactions, err := s.transactions.Search(ctx, filter)
	if err != nil {
		return report.Summary{}, header, fmt.Errorf("failed to load report transactions: %w", err)
	}

	summary := report.Summarize(transactions)
	s.logger.Info("Report built",
		zap.Int("transactions", summary.TotalTransactions),
		zap.String("from", filter.Period.StartDate()),
		zap.String("to", filter.Period.EndDate()),
		zap.String("type", string(filter.Type)),
	)

	return summary, header, nil
}

func (s *ReportService) filter(req *dto.ReportRequest) (repository.TransactionFilter, error) {
	var filter repository.TransactionFilter

	switch t := strings.ToLower(strings.TrimSpace(req.Type)); t {
	case "", "all":
	case string(models.TransactionTypeIncome), string(models.TransactionTypeExpense):
		filter.Type = models.TransactionType(t)
	default:
		return filter, ErrInvalidReportType
	}

	if len(req.CategoryIDs) > 0 {
		ids, err := parseUUIDs(req.CategoryIDs)
		if err != nil {
			return filter, ErrInvalidCategory
		}
		filter.CategoryIDs = ids
	}

	from, err := period.ParseDate(strings.TrimSpace(req.From))
	if err != nil {
		return filter, ErrInvalidDate
	}
	to, err := period.ParseDate(strings.TrimSpace(req.To))
	if err != nil {
		return filter, ErrInvalidDate
	}

	switch {
	case from != nil || to != nil:
		if from != nil && to != nil && from.After(*to) {
			return filter, ErrInvalidDateRange
		}
		filter.Period = period.Range{Start: from, End: to}
	case strings.TrimSpace(req.Period) != "":
		filter.Period, _ = s.resolver.Resolve(req.Period)
	}

	return filter, nil
}

func (s *ReportService) categoryNames(ctx context.Context, filter repository.TransactionFilter) ([]string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	byID := make(map[string]string, len(categories))
	for _, c := range categories {
		byID[c.ID.String()] = c.Name
	}

	names := make([]string, 0, len(filter.CategoryIDs))
	for _, id := range filter.CategoryIDs {
		if name, ok := byID[id.String()]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *ReportService) Summary(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	summary, header, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReportResponse{
		Type:              "all",
		Categories:        header.Categories,
		TotalTransactions: summary.TotalTransactions,
		TotalIncome:       reais(summary.TotalIncome),
		TotalExpense:      reais(summary.TotalExpense),
		NetAmount:         reais(summary.NetAmount),
		Transactions:      make([]dto.TransactionResponse, 0, len(summary.Transactions)),
	}
	if header.Type != "" {
		resp.Type = string(header.Type)
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	if header.From != nil {
		resp.From = header.From.Format(period.DateLayout)
	}
	if header.To != nil {
		resp.To = header.To.Format(period.DateLayout)
	}
	for _, t := range summary.Transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(t))
	}

	return resp, nil
}

func (s *ReportService) PDF(ctx context.Context, req *dto.ReportRequest) ([]byte, error) {
	summary, header, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return report.RenderPDF(summary, header)
}

func (s *ReportService) XLSX(ctx context.Context, req *dto.ReportRequest) ([]byte, error) {
	summary, header, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return report.RenderXLSX(summary, header)
}
