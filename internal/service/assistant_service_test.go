package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/internal/period"
	"oficina-api/pkg/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var frozenNow = at(2025, time.March, 31, 15, 4)

func newTestResolver() *period.Resolver {
	return period.New(zap.NewNop(), period.WithClock(func() time.Time { return frozenNow }))
}

func newTestAssistant(quotes *fakeQuoteStore, txs *fakeTransactionStore, chat ChatModel) *AssistantService {
	return NewAssistantService(quotes, txs, newTestResolver(), chat, zap.NewNop())
}

func TestSearchQuotesBuildsFilter(t *testing.T) {
	quotes := &fakeQuoteStore{}
	s := newTestAssistant(quotes, &fakeTransactionStore{}, nil)

	resp, err := s.SearchQuotes(context.Background(), dto.QuoteSearchRequest{
		ClientName:    "  Maria ",
		VehicleFilter: "Civic",
		Period:        "mês passado",
		MinValue:      ptr(money.NewAmount(1000)),
		MaxValue:      ptr(money.NewAmount(5000.5)),
	})
	require.NoError(t, err)

	f := quotes.lastFilter
	assert.Equal(t, "Maria", f.ClientName)
	assert.Equal(t, "Civic", f.Vehicle)
	assert.Equal(t, defaultQuoteSearchLimit, f.Limit)
	require.NotNil(t, f.MinCents)
	assert.Equal(t, int64(100000), *f.MinCents)
	assert.Equal(t, int64(500050), *f.MaxCents)
	assert.Equal(t, "2025-02-01", f.Period.StartDate())
	assert.Equal(t, "2025-02-28", f.Period.EndDate())

	require.NotNil(t, resp.PeriodRecognized)
	assert.True(t, *resp.PeriodRecognized)
	assert.Equal(t, f.Period, resp.Period)
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, noQuotesMessage, resp.Message)
	assert.NotNil(t, resp.Quotes)
	assert.Nil(t, resp.Summary.FiltersApplied.Limit)
	assert.Equal(t, "mês passado", resp.Summary.FiltersApplied.Period)
}

func TestSearchQuotesLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{"default", nil, 20},
		{"within range", ptr(35), 35},
		{"too large", ptr(500), 100},
		{"zero", ptr(0), 1},
		{"negative", ptr(-4), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes := &fakeQuoteStore{}
			s := newTestAssistant(quotes, &fakeTransactionStore{}, nil)

			_, err := s.SearchQuotes(context.Background(), dto.QuoteSearchRequest{Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, tt.want, quotes.lastFilter.Limit)
		})
	}
}

func TestSearchQuotesUnrecognizedPeriodAppliesNoDateFilter(t *testing.T) {
	quotes := &fakeQuoteStore{}
	s := newTestAssistant(quotes, &fakeTransactionStore{}, nil)

	resp, err := s.SearchQuotes(context.Background(), dto.QuoteSearchRequest{Period: "semana que vem"})
	require.NoError(t, err)

	require.NotNil(t, resp.PeriodRecognized)
	assert.False(t, *resp.PeriodRecognized)
	assert.True(t, quotes.lastFilter.Period.IsEmpty())
}

func TestSearchQuotesFormatsResults(t *testing.T) {
	quotes := &fakeQuoteStore{quotes: []*models.Quote{
		{
			ID: uuid.New(), ClientName: "Maria", TotalPrice: 123456, CreatedAt: frozenNow,
			Services: []models.Service{{Name: "Pintura", Price: 100000}, {Name: "Polimento", Price: 23456}},
		},
		{ID: uuid.New(), ClientName: "João", TotalPrice: 5000, CreatedAt: frozenNow},
	}}
	s := newTestAssistant(quotes, &fakeTransactionStore{}, nil)

	resp, err := s.SearchQuotes(context.Background(), dto.QuoteSearchRequest{})
	require.NoError(t, err)

	require.Equal(t, 2, resp.Count)
	assert.Empty(t, resp.Message)
	assert.Equal(t, "R$ 1.234,56", resp.Quotes[0].TotalPriceFormatted)
	assert.Equal(t, 2, resp.Quotes[0].ServicesCount)
	assert.InDelta(t, 1234.56, resp.Quotes[0].ServicesTotal, 1e-9)
	assert.Equal(t, 0, resp.Quotes[1].ServicesCount)
	assert.InDelta(t, 1284.56, resp.Summary.TotalValue, 1e-9)
	assert.Nil(t, resp.PeriodRecognized, "no period given")
}

func TestSearchQuotesPropagatesStoreErrors(t *testing.T) {
	quotes := &fakeQuoteStore{err: errors.New("connection refused")}
	s := newTestAssistant(quotes, &fakeTransactionStore{}, nil)

	_, err := s.SearchQuotes(context.Background(), dto.QuoteSearchRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSearchTransactions(t *testing.T) {
	txs := &fakeTransactionStore{transactions: []*models.Transaction{
		{ID: uuid.New(), Name: "Serviço", Type: models.TransactionTypeIncome, Amount: 30000, Date: frozenNow},
		{ID: uuid.New(), Name: "Aluguel", Type: models.TransactionTypeExpense, Amount: 12050, Date: frozenNow,
			Category: &models.TransactionCategory{ID: uuid.New(), Name: "Fixas"}},
	}}
	s := newTestAssistant(&fakeQuoteStore{}, txs, nil)

	resp, err := s.SearchTransactions(context.Background(), dto.TransactionSearchRequest{
		TransactionName:     "alu",
		TransactionCategory: "Fixas",
		TransactionType:     "Expense",
		Period:              "últimos 7 dias",
		Limit:               ptr(80),
	})
	require.NoError(t, err)

	f := txs.lastFilter
	assert.Equal(t, "alu", f.Name)
	assert.Equal(t, "Fixas", f.Category)
	assert.Equal(t, models.TransactionTypeExpense, f.Type)
	assert.Equal(t, maxTransactionSearchLimit, f.Limit)
	assert.Equal(t, "2025-03-24", f.Period.StartDate())
	assert.Nil(t, f.Period.End)

	require.NotNil(t, resp.PeriodRecognized)
	assert.True(t, *resp.PeriodRecognized)
	assert.Equal(t, 2, resp.Count)
	assert.InDelta(t, 300.0, resp.TotalIncome, 1e-9)
	assert.InDelta(t, 120.5, resp.TotalExpense, 1e-9)
	require.NotNil(t, resp.Data[1].Category)
	assert.Equal(t, "Fixas", resp.Data[1].Category.Name)
	assert.Equal(t, "2025-03-31", resp.Data[0].Date)
}

func TestSearchTransactionsDefaultsAndEmpty(t *testing.T) {
	txs := &fakeTransactionStore{}
	s := newTestAssistant(&fakeQuoteStore{}, txs, nil)

	resp, err := s.SearchTransactions(context.Background(), dto.TransactionSearchRequest{})
	require.NoError(t, err)

	assert.Equal(t, defaultTransactionSearchLimit, txs.lastFilter.Limit)
	assert.Equal(t, noTransactionsMessage, resp.Message)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.PeriodRecognized)
}

func TestSearchRejectsUnrepresentableBounds(t *testing.T) {
	quotes := &fakeQuoteStore{}
	txs := &fakeTransactionStore{}
	s := newTestAssistant(quotes, txs, nil)
	huge := ptr(money.NewAmount(1e17))

	_, err := s.SearchQuotes(context.Background(), dto.QuoteSearchRequest{MinValue: huge})
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
	assert.Nil(t, quotes.lastFilter.MinCents, "store must not be queried")

	_, err = s.SearchTransactions(context.Background(), dto.TransactionSearchRequest{MaxValue: huge})
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
	assert.Zero(t, txs.lastFilter.Limit)
}

func TestSearchTransactionsRejectsUnknownType(t *testing.T) {
	s := newTestAssistant(&fakeQuoteStore{}, &fakeTransactionStore{}, nil)

	_, err := s.SearchTransactions(context.Background(), dto.TransactionSearchRequest{TransactionType: "transfer"})
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
}

func TestResolvePeriod(t *testing.T) {
	s := newTestAssistant(&fakeQuoteStore{}, &fakeTransactionStore{}, nil)

	resp := s.ResolvePeriod("janeiro de 2024")
	assert.True(t, resp.Recognized)
	assert.Equal(t, "2024-01-01", resp.Period.StartDate())
	assert.Equal(t, "2024-01-31", resp.Period.EndDate())

	resp = s.ResolvePeriod("qualquer coisa")
	assert.False(t, resp.Recognized)
	assert.True(t, resp.Period.IsEmpty())
}

func TestChat(t *testing.T) {
	chat := &fakeChat{answer: "Resposta"}
	s := newTestAssistant(&fakeQuoteStore{}, &fakeTransactionStore{}, chat)

	resp, err := s.Chat(context.Background(), "  Qual serviço mais vendido?  ")
	require.NoError(t, err)
	assert.Equal(t, "Resposta", resp.Response)
	assert.Equal(t, "Qual serviço mais vendido?", chat.question)
	assert.GreaterOrEqual(t, resp.ExecutionTime, int64(0))

	_, err = s.Chat(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	chat.err = errors.New("upstream timeout")
	_, err = s.Chat(context.Background(), "oi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream timeout")
}

func TestChatWithoutModel(t *testing.T) {
	s := newTestAssistant(&fakeQuoteStore{}, &fakeTransactionStore{}, nil)

	_, err := s.Chat(context.Background(), "oi")
	assert.ErrorIs(t, err, ErrAssistantUnavailable)
}
