package repository

import (
	"context"
	"errors"
	"fmt"

	"oficina-api/internal/models"
	"oficina-api/internal/period"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const foreignKeyViolation = "23503"

// ErrClientNotFound is returned when a vehicle references a missing client.
var ErrClientNotFound = errors.New("client not found")

// ClientRepository stores clients and their vehicles.
type ClientRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewClientRepository(db *pgxpool.Pool, logger *zap.Logger) *ClientRepository {
	return &ClientRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := squirrel.Insert("clients").
		Columns("id", "name", "name_normalized", "phone", "cpf", "address", "created_at").
		Values(client.ID, client.Name, period.Normalize(client.Name), client.Phone, client.CPF, client.Address, client.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	sql, args, err := squirrel.Select(clientColumns...).
		From("clients").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	client, err := scanClient(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return client, nil
}

func (r *ClientRepository) List(ctx context.Context, filter ClientFilter) ([]*models.Client, error) {
	sql, args, err := ClientListQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

func (r *ClientRepository) Count(ctx context.Context, filter ClientFilter) (int, error) {
	return r.count(ctx, ClientCountQuery(filter))
}

func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	query := squirrel.Update("clients").
		Set("name", client.Name).
		Set("name_normalized", period.Normalize(client.Name)).
		Set("phone", client.Phone).
		Set("cpf", client.CPF).
		Set("address", client.Address).
		Where(squirrel.Eq{"id": client.ID}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execOne(ctx, query)
}

// CreateVehicle fails with ErrClientNotFound when the owner does not exist.
func (r *ClientRepository) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	query := squirrel.Insert("vehicles").
		Columns("id", "client_id", "brand", "model", "license_plate", "year", "color", "chassis", "created_at").
		Values(vehicle.ID, vehicle.ClientID, vehicle.Brand, vehicle.Model, vehicle.LicensePlate,
			vehicle.Year, vehicle.Color, vehicle.Chassis, vehicle.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return missingClient(err)
}

func (r *ClientRepository) GetVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	sql, args, err := squirrel.Select(vehicleColumns...).
		From("vehicles v").
		Join("clients cl ON cl.id = v.client_id").
		Where(squirrel.Eq{"v.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return vehicle, nil
}

func (r *ClientRepository) ListVehicles(ctx context.Context, filter VehicleFilter) ([]*models.Vehicle, error) {
	sql, args, err := VehicleListQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

func (r *ClientRepository) CountVehicles(ctx context.Context, filter VehicleFilter) (int, error) {
	return r.count(ctx, VehicleCountQuery(filter))
}

func (r *ClientRepository) UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	query := squirrel.Update("vehicles").
		Set("client_id", vehicle.ClientID).
		Set("brand", vehicle.Brand).
		Set("model", vehicle.Model).
		Set("license_plate", vehicle.LicensePlate).
		Set("year", vehicle.Year).
		Set("color", vehicle.Color).
		Set("chassis", vehicle.Chassis).
		Where(squirrel.Eq{"id": vehicle.ID}).
		PlaceholderFormat(squirrel.Dollar)

	return missingClient(r.execOne(ctx, query))
}

func (r *ClientRepository) count(ctx context.Context, query squirrel.SelectBuilder) (int, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	return count, err
}

func (r *ClientRepository) execOne(ctx context.Context, query squirrel.UpdateBuilder) error {
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

func missingClient(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return ErrClientNotFound
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to save vehicle: %w", err)
	}
	return err
}

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.CPF, &c.Address, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(&v.ID, &v.ClientID, &v.ClientName, &v.Brand, &v.Model, &v.LicensePlate,
		&v.Year, &v.Color, &v.Chassis, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
