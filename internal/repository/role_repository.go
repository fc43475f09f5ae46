package repository

import (
	"context"
	"fmt"

	"oficina-api/internal/models"
	"oficina-api/internal/period"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var roleColumns = []string{"id", "name", "description", "created_at"}

type RoleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRoleRepository(db *pgxpool.Pool, logger *zap.Logger) *RoleRepository {
	return &RoleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	query := squirrel.Insert("roles").
		Columns("id", "name", "name_normalized", "description", "created_at").
		Values(role.ID, role.Name, period.Normalize(role.Name), role.Description, role.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return duplicate(err)
}

func (r *RoleRepository) List(ctx context.Context) ([]*models.Role, error) {
	query := squirrel.Select(roleColumns...).
		From("roles").
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByName matches names ignoring case and accents.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	return r.getOne(ctx, squirrel.Eq{"name_normalized": period.Normalize(name)})
}

// Update renames the role and moves its employees to the new name in one
// transaction.
func (r *RoleRepository) Update(ctx context.Context, role *models.Role, previousName string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := squirrel.Update("roles").
		Set("name", role.Name).
		Set("name_normalized", period.Normalize(role.Name)).
		Set("description", role.Description).
		Where(squirrel.Eq{"id": role.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return duplicate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if previousName != role.Name {
		sql, args, err := squirrel.Update("employees").
			Set("role", role.Name).
			Where(squirrel.Eq{"role": previousName}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to move employees to renamed role: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *RoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := squirrel.Delete("roles").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
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

func (r *RoleRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Role, error) {
	sql, args, err := squirrel.Select(roleColumns...).
		From("roles").
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	role, err := scanRole(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return role, nil
}

func scanRole(row pgx.Row) (*models.Role, error) {
	var role models.Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
		return nil, err
	}
	return &role, nil
}
