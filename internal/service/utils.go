package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/internal/period"
	"oficina-api/pkg/money"

	"github.com/google/uuid"
)

const pageSize = 10

// sanitizeUTF8 removes invalid UTF-8 sequences from s.
// PostgreSQL rejects them in text columns.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

// cleanText trims and sanitizes free text coming from clients.
func cleanText(s string) string {
	return strings.TrimSpace(sanitizeUTF8(s))
}

// clampLimit applies def when limit is nil and bounds it to [1, upper].
func clampLimit(limit *int, def, upper int) int {
	if limit == nil {
		return def
	}
	switch {
	case *limit < 1:
		return 1
	case *limit > upper:
		return upper
	}
	return *limit
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func totalPages(count int) int {
	return (count + pageSize - 1) / pageSize
}

func reais(cents int64) float64 {
	return money.CentsToReais(cents).InexactFloat64()
}

// optionalCents converts an optional bound. Unrepresentable amounts are
// rejected so an overflowed bound can never widen a filter.
func optionalCents(value *money.Amount) (*int64, error) {
	if value == nil {
		return nil, nil
	}
	c, err := value.Cents()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func parseUUIDs(ids []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func toQuoteResponse(q *models.Quote) dto.QuoteResponse {
	services := make([]dto.ServiceResponse, 0, len(q.Services))
	for _, s := range q.Services {
		services = append(services, dto.ServiceResponse{
			ID:    s.ID.String(),
			Name:  s.Name,
			Price: reais(s.Price),
		})
	}

	return dto.QuoteResponse{
		ID:                  q.ID.String(),
		ClientName:          q.ClientName,
		ClientPhone:         q.ClientPhone,
		ClientCPF:           q.ClientCPF,
		ClientAddress:       q.ClientAddress,
		VehicleBrand:        q.VehicleBrand,
		VehicleModel:        q.VehicleModel,
		VehicleYear:         q.VehicleYear,
		VehicleColor:        q.VehicleColor,
		VehicleChassi:       q.VehicleChassi,
		VehicleLicensePlate: q.VehicleLicensePlate,
		TotalPrice:          reais(q.TotalPrice),
		TotalPriceFormatted: money.FormatBRL(q.TotalPrice),
		Observations:        q.Observations,
		CreatedAt:           q.CreatedAt.UTC().Format(time.RFC3339),
		Services:            services,
	}
}

func toTransactionResponse(t *models.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:              t.ID.String(),
		Name:            t.Name,
		Type:            string(t.Type),
		Amount:          reais(t.Amount),
		AmountFormatted: money.FormatBRL(t.Amount),
		Date:            t.Date.UTC().Format(period.DateLayout),
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.Category != nil {
		resp.Category = &dto.CategoryResponse{
			ID:   t.Category.ID.String(),
			Name: t.Category.Name,
		}
	}
	return resp
}

func toCategoryResponse(c *models.TransactionCategory) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
