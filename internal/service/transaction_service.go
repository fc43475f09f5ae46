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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNameRequired        = errors.New("name is required")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDateRange    = errors.New("start date is after end date")
	ErrInvalidCategory     = errors.New("invalid category id")
)

type TransactionService struct {
	transactions TransactionStore
	categories   CategoryStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewTransactionService(transactions TransactionStore, categories CategoryStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		categories:   categories,
		logger:       logger,
		now:          time.Now,
	}
}

// Save validates and stores a new transaction.
func (s *TransactionService) Save(ctx context.Context, req *dto.SaveTransactionRequest) (*dto.TransactionResponse, error) {
	tx := &models.Transaction{
		ID:        uuid.New(),
		CreatedAt: s.now().UTC(),
	}
	if err := s.apply(ctx, tx, req); err != nil {
		return nil, err
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		s.logger.Error("Failed to save transaction", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Transaction saved",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("type", string(tx.Type)),
		zap.Int64("amount", tx.Amount),
	)

	resp := toTransactionResponse(tx)
	return &resp, nil
}

func (s *TransactionService) Edit(ctx context.Context, id uuid.UUID, req *dto.SaveTransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if err := s.apply(ctx, tx, req); err != nil {
		return nil, err
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	resp := toTransactionResponse(tx)
	return &resp, nil
}

// apply validates req and copies it onto tx.
func (s *TransactionService) apply(ctx context.Context, tx *models.Transaction, req *dto.SaveTransactionRequest) error {
	name := cleanText(req.Name)
	if name == "" {
		return ErrNameRequired
	}

	txType := models.TransactionType(strings.ToLower(strings.TrimSpace(req.Type)))
	if !txType.Valid() {
		return ErrInvalidTransactionType
	}

	if req.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	amount, err := req.Amount.Cents()
	if err != nil {
		return err
	}

	date, err := period.ParseDate(strings.TrimSpace(req.Date))
	if err != nil || date == nil {
		return ErrInvalidDate
	}

	tx.Name = name
	tx.Type = txType
	tx.Amount = amount
	tx.Date = *date
	tx.CategoryID = nil
	tx.Category = nil

	if raw := strings.TrimSpace(req.CategoryID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ErrInvalidCategory
		}
		category, err := s.categories.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		tx.CategoryID = &category.ID
		tx.Category = category
	}

	return nil
}

func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionResponse, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	resp := toTransactionResponse(tx)
	return &resp, nil
}

func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.transactions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	s.logger.Info("Transaction deleted", zap.String("transaction_id", id.String()))
	return nil
}

// List returns a page of ten transactions matching the query.
func (s *TransactionService) List(ctx context.Context, q *dto.TransactionListQuery) (*dto.TransactionListResponse, error) {
	page := normalizePage(q.Page)

	filter, err := listFilter(q)
	if err != nil {
		return nil, err
	}

	count, err := s.transactions.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	transactions, err := s.transactions.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := &dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(transactions)),
		Page:         page,
		TotalPages:   totalPages(count),
		Total:        count,
	}
	for _, t := range transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(t))
	}

	return resp, nil
}

func listFilter(q *dto.TransactionListQuery) (repository.TransactionFilter, error) {
	var filter repository.TransactionFilter

	if t := strings.ToLower(strings.TrimSpace(q.Type)); t != "" && t != "all" {
		filter.Type = models.TransactionType(t)
		if !filter.Type.Valid() {
			return filter, ErrInvalidTransactionType
		}
	}

	if raw := strings.TrimSpace(q.Category); raw != "" {
		ids, err := parseUUIDs(strings.Split(raw, ","))
		if err != nil {
			return filter, ErrInvalidCategory
		}
		filter.CategoryIDs = ids
	}

	from, err := period.ParseDate(strings.TrimSpace(q.From))
	if err != nil {
		return filter, ErrInvalidDate
	}
	to, err := period.ParseDate(strings.TrimSpace(q.To))
	if err != nil {
		return filter, ErrInvalidDate
	}
	if from != nil && to != nil && from.After(*to) {
		return filter, ErrInvalidDateRange
	}
	filter.Period = period.Range{Start: from, End: to}

	return filter, nil
}
