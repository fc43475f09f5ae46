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
	"oficina-api/internal/repository"
	"oficina-api/pkg/money"

	"go.uber.org/zap"
)

var (
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")
	ErrEmptyQuestion          = errors.New("question must not be empty")
	ErrAssistantUnavailable   = errors.New("assistant is not configured")
)

const (
	defaultQuoteSearchLimit       = 20
	maxQuoteSearchLimit           = 100
	defaultTransactionSearchLimit = 50
	maxTransactionSearchLimit     = 50

	noQuotesMessage       = "Nenhum orçamento encontrado com os filtros fornecidos."
	noTransactionsMessage = "Nenhuma transação encontrada com os filtros fornecidos."
)

// AssistantService backs the natural-language query tools: it turns loosely
// specified arguments, including free-text periods, into repository filters.
type AssistantService struct {
	quotes       QuoteStore
	transactions TransactionStore
	resolver     *period.Resolver
	chat         ChatModel
	logger       *zap.Logger
}

// NewAssistantService wires the assistant. chat may be nil, in which case
// Chat reports ErrAssistantUnavailable.
func NewAssistantService(quotes QuoteStore, transactions TransactionStore, resolver *period.Resolver, chat ChatModel, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		quotes:       quotes,
		transactions: transactions,
		resolver:     resolver,
		chat:         chat,
		logger:       logger,
	}
}

// ResolvePeriod exposes the resolver so clients can tell the user when a
// period was not understood.
func (s *AssistantService) ResolvePeriod(text string) dto.PeriodResponse {
	r, ok := s.resolver.Resolve(text)
	return dto.PeriodResponse{Text: text, Period: r, Recognized: ok}
}

// resolve reports recognition only when a period was actually given, so an
// absent period is not mistaken for one that was not understood.
func (s *AssistantService) resolve(text string) (period.Range, *bool) {
	if strings.TrimSpace(text) == "" {
		return period.Range{}, nil
	}
	r, ok := s.resolver.Resolve(text)
	return r, &ok
}

func valueBounds(minValue, maxValue *money.Amount) (*int64, *int64, error) {
	minCents, err := optionalCents(minValue)
	if err != nil {
		return nil, nil, err
	}
	maxCents, err := optionalCents(maxValue)
	if err != nil {
		return nil, nil, err
	}
	return minCents, maxCents, nil
}

func (s *AssistantService) SearchQuotes(ctx context.Context, req dto.QuoteSearchRequest) (*dto.QuoteSearchResponse, error) {
	minCents, maxCents, err := valueBounds(req.MinValue, req.MaxValue)
	if err != nil {
		return nil, err
	}

	filter := repository.QuoteFilter{
		ClientName: cleanText(req.ClientName),
		Vehicle:    cleanText(req.VehicleFilter),
		MinCents:   minCents,
		MaxCents:   maxCents,
		Limit:      clampLimit(req.Limit, defaultQuoteSearchLimit, maxQuoteSearchLimit),
	}

	resp := &dto.QuoteSearchResponse{Quotes: []dto.AssistantQuote{}}
	filter.Period, resp.PeriodRecognized = s.resolve(req.Period)
	resp.Period = filter.Period

	applied := req
	applied.Limit = nil
	resp.Summary.FiltersApplied = applied

	quotes, err := s.quotes.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search quotes: %w", err)
	}

	var total int64
	for _, q := range quotes {
		resp.Quotes = append(resp.Quotes, dto.AssistantQuote{
			QuoteResponse: toQuoteResponse(q),
			ServicesCount: len(q.Services),
			ServicesTotal: reais(q.ServicesTotal()),
		})
		total += q.TotalPrice
	}

	resp.Count = len(resp.Quotes)
	resp.Summary.TotalValue = reais(total)
	if resp.Count == 0 {
		resp.Message = noQuotesMessage
	}

	s.logger.Debug("Assistant quote search",
		zap.Int("count", resp.Count),
		zap.String("period", req.Period),
		zap.Boolp("period_recognized", resp.PeriodRecognized),
	)

	return resp, nil
}

func (s *AssistantService) SearchTransactions(ctx context.Context, req dto.TransactionSearchRequest) (*dto.TransactionSearchResponse, error) {
	txType := models.TransactionType(strings.ToLower(strings.TrimSpace(req.TransactionType)))
	if txType != "" && !txType.Valid() {
		return nil, ErrInvalidTransactionType
	}

	minCents, maxCents, err := valueBounds(req.MinValue, req.MaxValue)
	if err != nil {
		return nil, err
	}

	filter := repository.TransactionFilter{
		Name:     cleanText(req.TransactionName),
		Category: cleanText(req.TransactionCategory),
		Type:     txType,
		MinCents: minCents,
		MaxCents: maxCents,
		Limit:    clampLimit(req.Limit, defaultTransactionSearchLimit, maxTransactionSearchLimit),
	}

	resp := &dto.TransactionSearchResponse{Data: []dto.TransactionResponse{}}
	filter.Period, resp.PeriodRecognized = s.resolve(req.Period)
	resp.Period = filter.Period

	transactions, err := s.transactions.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search transactions: %w", err)
	}

	var income, expense int64
	for _, t := range transactions {
		resp.Data = append(resp.Data, toTransactionResponse(t))
		if t.Type == models.TransactionTypeIncome {
			income += t.Amount
		} else {
			expense += t.Amount
		}
	}

	resp.Count = len(resp.Data)
	resp.TotalIncome = reais(income)
	resp.TotalExpense = reais(expense)
	if resp.Count == 0 {
		resp.Message = noTransactionsMessage
	}

	s.logger.Debug("Assistant transaction search",
		zap.Int("count", resp.Count),
		zap.String("period", req.Period),
		zap.Boolp("period_recognized", resp.PeriodRecognized),
	)

	return resp, nil
}

func (s *AssistantService) Chat(ctx context.Context, question string) (*dto.ChatResponse, error) {
	start := time.Now()

	question = cleanText(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if s.chat == nil {
		return nil, ErrAssistantUnavailable
	}

	s.logger.Info("Assistant question received", zap.Int("length", len(question)))

	answer, err := s.chat.Ask(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to answer question: %w", err)
	}

	return &dto.ChatResponse{
		Response:      answer,
		ExecutionTime: time.Since(start).Milliseconds(),
	}, nil
}
