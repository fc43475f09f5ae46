package service

import (
	"context"
	"time"

	"oficina-api/internal/models"
	"oficina-api/internal/repository"

	"github.com/google/uuid"
)

// The services depend on these interfaces rather than on the pgx-backed
// repositories directly. The repository types satisfy them.

type EmployeeStore interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	List(ctx context.Context, filter repository.EmployeeFilter) ([]*models.Employee, error)
	Count(ctx context.Context, filter repository.EmployeeFilter) (int, error)
	Update(ctx context.Context, employee *models.Employee) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string, at time.Time) error
}

type RoleStore interface {
	Create(ctx context.Context, role *models.Role) error
	List(ctx context.Context) ([]*models.Role, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	Update(ctx context.Context, role *models.Role, previousName string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClientStore interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context, filter repository.ClientFilter) ([]*models.Client, error)
	Count(ctx context.Context, filter repository.ClientFilter) (int, error)
	Update(ctx context.Context, client *models.Client) error
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	GetVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]*models.Vehicle, error)
	CountVehicles(ctx context.Context, filter repository.VehicleFilter) (int, error)
	UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error
}

type QuoteStore interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	Update(ctx context.Context, quote *models.Quote, deleteServices []uuid.UUID) error
	List(ctx context.Context, page, pageSize int) ([]*models.Quote, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, filter repository.QuoteFilter) ([]*models.Quote, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAndSumBetween(ctx context.Context, from, to time.Time) (int, int64, error)
	Recent(ctx context.Context, limit int) ([]*models.Quote, error)
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter repository.TransactionFilter) ([]*models.Transaction, error)
	Count(ctx context.Context, filter repository.TransactionFilter) (int, error)
	Recent(ctx context.Context, limit int) ([]*models.Transaction, error)
}

type CategoryStore interface {
	Create(ctx context.Context, category *models.TransactionCategory) error
	List(ctx context.Context) ([]*models.TransactionCategory, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.TransactionCategory, error)
	Update(ctx context.Context, category *models.TransactionCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var (
	_ EmployeeStore    = (*repository.EmployeeRepository)(nil)
	_ RoleStore        = (*repository.RoleRepository)(nil)
	_ ClientStore      = (*repository.ClientRepository)(nil)
	_ QuoteStore       = (*repository.QuoteRepository)(nil)
	_ TransactionStore = (*repository.TransactionRepository)(nil)
	_ CategoryStore    = (*repository.CategoryRepository)(nil)
)
