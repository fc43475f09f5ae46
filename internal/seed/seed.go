// Package seed fills a fresh database with the default transaction
// categories and the first manager account. Running it twice is harmless.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"oficina-api/internal/models"
	"oficina-api/internal/repository"
	"oficina-api/internal/service"
	"oficina-api/pkg/auth"
	"oficina-api/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var DefaultCategories = []models.TransactionCategory{
	{Name: "Serviços", Description: "Mão de obra e serviços prestados"},
	{Name: "Peças", Description: "Compra e venda de peças"},
	{Name: "Aluguel", Description: "Aluguel do espaço"},
	{Name: "Salários", Description: "Folha de pagamento"},
	{Name: "Impostos", Description: "Tributos e taxas"},
	{Name: "Contas", Description: "Água, luz, internet e telefone"},
	{Name: "Ferramentas", Description: "Equipamentos e manutenção"},
}

// Result counts what a run actually inserted.
type Result struct {
	Categories     int
	ManagerCreated bool
}

// ManagerStore is the part of the employee store the seeder needs.
type ManagerStore interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
}

type Seeder struct {
	categories service.CategoryStore
	employees  ManagerStore
	logger     *zap.Logger
	now        func() time.Time
}

func New(categories service.CategoryStore, employees ManagerStore, logger *zap.Logger) *Seeder {
	return &Seeder{
		categories: categories,
		employees:  employees,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Seeder) Run(ctx context.Context, cfg config.SeedConfig) (Result, error) {
	var res Result

	created, err := s.seedCategories(ctx)
	if err != nil {
		return res, err
	}
	res.Categories = created

	res.ManagerCreated, err = s.seedManager(ctx, cfg)
	if err != nil {
		return res, err
	}

	s.logger.Info("Database seeding completed",
		zap.Int("categories_created", res.Categories),
		zap.Bool("manager_created", res.ManagerCreated),
	)
	return res, nil
}

func (s *Seeder) seedCategories(ctx context.Context) (int, error) {
	existing, err := s.categories.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list categories: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[strings.ToLower(c.Name)] = true
	}

	created := 0
	for _, def := range DefaultCategories {
		if known[strings.ToLower(def.Name)] {
			s.logger.Debug("Category already exists, skipping", zap.String("name", def.Name))
			continue
		}

		category := def
		category.ID = uuid.New()
		category.CreatedAt = s.now().UTC()
		if err := s.categories.Create(ctx, &category); err != nil {
			return created, fmt.Errorf("failed to create category %q: %w", def.Name, err)
		}
		created++
	}
	return created, nil
}

func (s *Seeder) seedManager(ctx context.Context, cfg config.SeedConfig) (bool, error) {
	if cfg.ManagerPassword == "" {
		s.logger.Warn("SEED_MANAGER_PASSWORD is empty, manager account not created")
		return false, nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.ManagerEmail))
	if _, err := s.employees.GetByEmail(ctx, email); err == nil {
		s.logger.Info("Manager already exists, skipping", zap.String("email", email))
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to look up manager: %w", err)
	}

	hashed, err := auth.HashPassword(cfg.ManagerPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash manager password: %w", err)
	}

	now := s.now().UTC()
	manager := &models.Employee{
		ID:        uuid.New(),
		Name:      cfg.ManagerName,
		Email:     email,
		Password:  hashed,
		Role:      models.RoleManager,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.employees.Create(ctx, manager); err != nil {
		return false, fmt.Errorf("failed to create manager: %w", err)
	}
	return true, nil
}
