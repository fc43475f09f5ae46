package repository

import (
	"context"
	"time"

	"oficina-api/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type EmployeeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewEmployeeRepository(db *pgxpool.Pool, logger *zap.Logger) *EmployeeRepository {
	return &EmployeeRepository{
		db:     db,
		logger: logger,
	}
}

var employeeColumns = []string{"id", "name", "email", "password", "role", "status", "created_at", "updated_at"}

func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if employee.Status == "" {
		employee.Status = models.EmployeeActive
	}

	query := squirrel.Insert("employees").
		Columns(employeeColumns...).
		Values(employee.ID, employee.Name, employee.Email, employee.Password, employee.Role, employee.Status, employee.CreatedAt, employee.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *EmployeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]*models.Employee, error) {
	sql, args, err := EmployeeListQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	return employees, rows.Err()
}

func (r *EmployeeRepository) Count(ctx context.Context, filter EmployeeFilter) (int, error) {
	sql, args, err := EmployeeCountQuery(filter).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	return count, err
}

// Update saves the profile fields. The password is changed separately.
func (r *EmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	query := squirrel.Update("employees").
		Set("name", employee.Name).
		Set("email", employee.Email).
		Set("role", employee.Role).
		Set("status", employee.Status).
		Set("updated_at", employee.UpdatedAt).
		Where(squirrel.Eq{"id": employee.ID}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execOne(ctx, query)
}

func (r *EmployeeRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string, at time.Time) error {
	query := squirrel.Update("employees").
		Set("password", hashedPassword).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execOne(ctx, query)
}

func (r *EmployeeRepository) execOne(ctx context.Context, query squirrel.UpdateBuilder) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Employee, error) {
	query := squirrel.Select(employeeColumns...).
		From("employees").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	employee, err := scanEmployee(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}

	return employee, nil
}

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Password, &e.Role, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
