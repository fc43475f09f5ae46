package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/internal/report"
	"oficina-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrServiceNotFound     = errors.New("service not found in this quote")
	ErrClientNameRequired  = errors.New("client name is required")
	ErrInvalidServiceItem  = errors.New("every service needs a name and a non-negative price")
	ErrNegativeQuoteAmount = errors.New("total price must not be negative")
)

type QuoteService struct {
	quotes     QuoteStore
	letterhead report.Header
	location   *time.Location
	logger     *zap.Logger
	now        func() time.Time
}

// NewQuoteService builds the quote service. letterhead carries the shop data
// printed on quote PDFs and location the timezone of their dates.
func NewQuoteService(quotes QuoteStore, letterhead report.Header, location *time.Location, logger *zap.Logger) *QuoteService {
	if location == nil {
		location = time.UTC
	}
	return &QuoteService{
		quotes:     quotes,
		letterhead: letterhead,
		location:   location,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *QuoteService) Create(ctx context.Context, req *dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	quote, err := quoteFromRequest(uuid.New(), req)
	if err != nil {
		return nil, err
	}
	quote.CreatedAt = s.now().UTC()

	if req.TotalPrice.IsNegative() {
		return nil, ErrNegativeQuoteAmount
	}
	total, err := req.TotalPrice.Cents()
	if err != nil {
		return nil, err
	}

	for _, item := range req.Services {
		svc, err := serviceFromRequest(quote.ID, uuid.New(), item)
		if err != nil {
			return nil, err
		}
		quote.Services = append(quote.Services, svc)
	}

	quote.TotalPrice = total
	if quote.TotalPrice == 0 {
		quote.TotalPrice = quote.ServicesTotal()
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		s.logger.Error("Failed to create quote", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Quote created",
		zap.String("quote_id", quote.ID.String()),
		zap.Int("services", len(quote.Services)),
		zap.Int64("total_price", quote.TotalPrice),
	)

	resp := toQuoteResponse(quote)
	return &resp, nil
}

// Edit rewrites the quote, upserts the listed services and removes
// ServicesToDelete atomically. Services without an ID are added. The total
// becomes the sum of the remaining services.
func (s *QuoteService) Edit(ctx context.Context, id uuid.UUID, req *dto.EditQuoteRequest) (*dto.QuoteResponse, error) {
	quote, err := quoteFromRequest(id, &req.CreateQuoteRequest)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(req.Services))
	for _, item := range req.Services {
		serviceID := uuid.New()
		if item.ID != "" {
			if serviceID, err = uuid.Parse(item.ID); err != nil {
				return nil, ErrInvalidServiceItem
			}
		}
		if seen[serviceID] {
			return nil, ErrInvalidServiceItem
		}
		seen[serviceID] = true

		svc, err := serviceFromRequest(quote.ID, serviceID, item)
		if err != nil {
			return nil, err
		}
		quote.Services = append(quote.Services, svc)
	}

	deletes, err := parseUUIDs(req.ServicesToDelete)
	if err != nil {
		return nil, ErrInvalidServiceItem
	}
	for _, d := range deletes {
		if seen[d] {
			return nil, ErrInvalidServiceItem
		}
	}

	if err := s.quotes.Update(ctx, quote, deletes); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrQuoteNotFound
		case errors.Is(err, repository.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Failed to edit quote", zap.String("quote_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Quote edited",
		zap.String("quote_id", id.String()),
		zap.Int("upserted_services", len(quote.Services)),
		zap.Int("deleted_services", len(deletes)),
		zap.Int64("total_price", quote.TotalPrice),
	)

	return s.Get(ctx, id)
}

func (s *QuoteService) Get(ctx context.Context, id uuid.UUID) (*dto.QuoteResponse, error) {
	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toQuoteResponse(quote)
	return &resp, nil
}

// Services lists the line items of a quote.
func (s *QuoteService) Services(ctx context.Context, id uuid.UUID) ([]dto.ServiceResponse, error) {
	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote).Services, nil
}

// PDF renders the customer copy of a quote.
func (s *QuoteService) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	header := s.letterhead
	header.GeneratedAt = s.now().In(s.location)
	quote.CreatedAt = quote.CreatedAt.In(s.location)

	data, err := report.RenderQuotePDF(quote, header)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", id, err)
	}
	return data, nil
}

// List returns a page of ten quotes, newest first.
func (s *QuoteService) List(ctx context.Context, page int) (*dto.QuoteListResponse, error) {
	page = normalizePage(page)

	quotes, err := s.quotes.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	count, err := s.quotes.Count(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.QuoteListResponse{
		Quotes:     make([]dto.QuoteResponse, 0, len(quotes)),
		Page:       page,
		TotalPages: totalPages(count),
		Total:      count,
	}
	for _, q := range quotes {
		resp.Quotes = append(resp.Quotes, toQuoteResponse(q))
	}

	return resp, nil
}

func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.quotes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuoteNotFound
		}
		return err
	}

	s.logger.Info("Quote deleted", zap.String("quote_id", id.String()))
	return nil
}

func (s *QuoteService) load(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return quote, nil
}

// quoteFromRequest copies the customer and vehicle fields. Services and the
// total are left to the caller.
func quoteFromRequest(id uuid.UUID, req *dto.CreateQuoteRequest) (*models.Quote, error) {
	clientName := cleanText(req.ClientName)
	if clientName == "" {
		return nil, ErrClientNameRequired
	}

	return &models.Quote{
		ID:                  id,
		ClientName:          clientName,
		ClientPhone:         cleanText(req.ClientPhone),
		ClientCPF:           cleanText(req.ClientCPF),
		ClientAddress:       cleanText(req.ClientAddress),
		VehicleBrand:        cleanText(req.VehicleBrand),
		VehicleModel:        cleanText(req.VehicleModel),
		VehicleYear:         cleanText(req.VehicleYear),
		VehicleColor:        cleanText(req.VehicleColor),
		VehicleChassi:       cleanText(req.VehicleChassi),
		VehicleLicensePlate: cleanText(req.VehicleLicensePlate),
		Observations:        cleanText(req.Observations),
	}, nil
}

func serviceFromRequest(quoteID, id uuid.UUID, item dto.ServiceRequest) (models.Service, error) {
	name := cleanText(item.Name)
	if name == "" || item.Price.IsNegative() {
		return models.Service{}, ErrInvalidServiceItem
	}
	price, err := item.Price.Cents()
	if err != nil {
		return models.Service{}, err
	}
	return models.Service{
		ID:      id,
		QuoteID: quoteID,
		Name:    name,
		Price:   price,
	}, nil
}
