package service

import (
	"context"
	"errors"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryService struct {
	categories CategoryStore
	logger     *zap.Logger
}

func NewCategoryService(categories CategoryStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, toCategoryResponse(c))
	}
	return resp, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := cleanText(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	category := &models.TransactionCategory{
		ID:          uuid.New(),
		Name:        name,
		Description: cleanText(req.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created", zap.String("category_id", category.ID.String()), zap.String("name", name))

	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := cleanText(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	category.Name = name
	category.Description = cleanText(req.Description)
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}
