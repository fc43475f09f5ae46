package repository

import (
	"context"
	"fmt"
	"time"

	"oficina-api/internal/models"
	"oficina-api/internal/period"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type QuoteRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewQuoteRepository(db *pgxpool.Pool, logger *zap.Logger) *QuoteRepository {
	return &QuoteRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores the quote and its services atomically.
func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := squirrel.Insert("quotes").
		Columns(
			"id", "client_name", "client_phone", "client_cpf", "client_address",
			"vehicle_brand", "vehicle_model", "vehicle_year", "vehicle_color",
			"vehicle_chassi", "vehicle_license_plate", "total_price", "observations", "created_at",
		).
		Values(
			quote.ID, quote.ClientName, quote.ClientPhone, quote.ClientCPF, quote.ClientAddress,
			quote.VehicleBrand, quote.VehicleModel, quote.VehicleYear, quote.VehicleColor,
			quote.VehicleChassi, quote.VehicleLicensePlate, quote.TotalPrice, quote.Observations, quote.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	if len(quote.Services) > 0 {
		insert := squirrel.Insert("services").
			Columns("id", "quote_id", "name", "price").
			PlaceholderFormat(squirrel.Dollar)
		for _, s := range quote.Services {
			insert = insert.Values(s.ID, quote.ID, s.Name, s.Price)
		}

		sql, args, err := insert.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to insert services: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Update rewrites the quote fields, removes deleteServices, upserts
// quote.Services and recomputes total_price from the stored services, all in
// one transaction. A listed service that belongs to another quote yields
// ErrServiceNotFound. On success quote.TotalPrice holds the new total.
func (r *QuoteRepository) Update(ctx context.Context, quote *models.Quote, deleteServices []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := quoteUpdateQuery(quote).ToSql()
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if len(deleteServices) > 0 {
		sql, args, err := serviceDeleteQuery(quote.ID, deleteServices).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to delete services: %w", err)
		}
	}

	if len(quote.Services) > 0 {
		sql, args, err := serviceUpsertQuery(quote.ID, quote.Services).ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("failed to upsert services: %w", err)
		}
		if tag.RowsAffected() != int64(len(quote.Services)) {
			return ErrServiceNotFound
		}
	}

	sql, args, err = quoteTotalQuery(quote.ID).ToSql()
	if err != nil {
		return err
	}
	if err := tx.QueryRow(ctx, sql, args...).Scan(&quote.TotalPrice); err != nil {
		return fmt.Errorf("failed to recompute quote total: %w", err)
	}

	return tx.Commit(ctx)
}

func quoteUpdateQuery(quote *models.Quote) squirrel.UpdateBuilder {
	return squirrel.Update("quotes").
		SetMap(map[string]interface{}{
			"client_name":           quote.ClientName,
			"client_phone":          quote.ClientPhone,
			"client_cpf":            quote.ClientCPF,
			"client_address":        quote.ClientAddress,
			"vehicle_brand":         quote.VehicleBrand,
			"vehicle_model":         quote.VehicleModel,
			"vehicle_year":          quote.VehicleYear,
			"vehicle_color":         quote.VehicleColor,
			"vehicle_chassi":        quote.VehicleChassi,
			"vehicle_license_plate": quote.VehicleLicensePlate,
			"observations":          quote.Observations,
		}).
		Where(squirrel.Eq{"id": quote.ID}).
		PlaceholderFormat(squirrel.Dollar)
}

func serviceDeleteQuery(quoteID uuid.UUID, ids []uuid.UUID) squirrel.DeleteBuilder {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	return squirrel.Delete("services").
		Where(squirrel.Eq{"quote_id": quoteID, "id": keys}).
		PlaceholderFormat(squirrel.Dollar)
}

// serviceUpsertQuery inserts new services and updates existing ones. The
// conflict branch only touches rows of the same quote.
func serviceUpsertQuery(quoteID uuid.UUID, services []models.Service) squirrel.InsertBuilder {
	insert := squirrel.Insert("services").
		Columns("id", "quote_id", "name", "price").
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price WHERE services.quote_id = EXCLUDED.quote_id").
		PlaceholderFormat(squirrel.Dollar)
	for _, s := range services {
		insert = insert.Values(s.ID, quoteID, s.Name, s.Price)
	}
	return insert
}

func quoteTotalQuery(quoteID uuid.UUID) squirrel.UpdateBuilder {
	return squirrel.Update("quotes").
		Set("total_price", squirrel.Expr("(SELECT COALESCE(SUM(price), 0) FROM services WHERE quote_id = ?)", quoteID)).
		Where(squirrel.Eq{"id": quoteID}).
		Suffix("RETURNING total_price").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	query := squirrel.Select(quoteColumns...).
		From("quotes q").
		Where(squirrel.Eq{"q.id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	quote, err := scanQuote(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}

	if err := r.loadServices(ctx, []*models.Quote{quote}); err != nil {
		return nil, err
	}
	return quote, nil
}

// List returns one page of quotes, newest first, without their services.
func (r *QuoteRepository) List(ctx context.Context, page, pageSize int) ([]*models.Quote, error) {
	query := squirrel.Select(quoteColumns...).
		From("quotes q").
		OrderBy("q.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		PlaceholderFormat(squirrel.Dollar)

	return r.query(ctx, query)
}

func (r *QuoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM quotes").Scan(&count)
	return count, err
}

// Search returns the quotes matching filter with their services loaded.
func (r *QuoteRepository) Search(ctx context.Context, filter QuoteFilter) ([]*models.Quote, error) {
	quotes, err := r.query(ctx, QuoteSearchQuery(filter))
	if err != nil {
		return nil, err
	}

	if err := r.loadServices(ctx, quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("quotes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

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

// CountAndSumBetween returns the number of quotes created between the two
// calendar days (inclusive) and the sum of their totals in cents.
func (r *QuoteRepository) CountAndSumBetween(ctx context.Context, from, to time.Time) (int, int64, error) {
	filter := QuoteFilter{Period: period.Range{Start: &from, End: &to}}

	query := squirrel.Select("COUNT(*)", "COALESCE(SUM(q.total_price), 0)").
		From("quotes q").
		Where(filter.Predicate()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, 0, err
	}

	var (
		count int
		sum   int64
	)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count, &sum); err != nil {
		return 0, 0, err
	}
	return count, sum, nil
}

// Recent returns the latest created quotes without their services.
func (r *QuoteRepository) Recent(ctx context.Context, limit int) ([]*models.Quote, error) {
	query := squirrel.Select(quoteColumns...).
		From("quotes q").
		OrderBy("q.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	return r.query(ctx, query)
}

func (r *QuoteRepository) query(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Quote, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*models.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}

	return quotes, rows.Err()
}

// loadServices fetches the services of all quotes in a single query.
func (r *QuoteRepository) loadServices(ctx context.Context, quotes []*models.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.Quote, len(quotes))
	ids := make([]string, 0, len(quotes))
	for _, q := range quotes {
		byID[q.ID] = q
		ids = append(ids, q.ID.String())
	}

	query := squirrel.Select("id", "quote_id", "name", "price").
		From("services").
		Where(squirrel.Eq{"quote_id": ids}).
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to load services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.QuoteID, &s.Name, &s.Price); err != nil {
			return err
		}
		if q, ok := byID[s.QuoteID]; ok {
			q.Services = append(q.Services, s)
		}
	}

	return rows.Err()
}

func scanQuote(row pgx.Row) (*models.Quote, error) {
	var q models.Quote
	err := row.Scan(
		&q.ID, &q.ClientName, &q.ClientPhone, &q.ClientCPF, &q.ClientAddress,
		&q.VehicleBrand, &q.VehicleModel, &q.VehicleYear, &q.VehicleColor,
		&q.VehicleChassi, &q.VehicleLicensePlate, &q.TotalPrice, &q.Observations, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
