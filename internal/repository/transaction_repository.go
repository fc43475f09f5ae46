package repository

import (
	"context"

	"oficina-api/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns("id", "name", "type", "amount", "transaction_date", "transaction_category_id", "created_at").
		Values(tx.ID, tx.Name, tx.Type, tx.Amount, tx.Date, tx.CategoryID, tx.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Update("transactions").
		Set("name", tx.Name).
		Set("type", tx.Type).
		Set("amount", tx.Amount).
		Set("transaction_date", tx.Date).
		Set("transaction_category_id", tx.CategoryID).
		Where(squirrel.Eq{"id": tx.ID}).
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

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("transactions").
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

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions t").
		LeftJoin("transaction_categories c ON c.id = t.transaction_category_id").
		Where(squirrel.Eq{"t.id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	tx, err := scanTransaction(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return tx, nil
}

// Search returns the transactions matching filter, most recent first.
func (r *TransactionRepository) Search(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error) {
	sql, args, err := TransactionSearchQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// Count returns how many transactions match filter, ignoring limit and offset.
func (r *TransactionRepository) Count(ctx context.Context, filter TransactionFilter) (int, error) {
	sql, args, err := TransactionCountQuery(filter).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Recent returns the latest created transactions.
func (r *TransactionRepository) Recent(ctx context.Context, limit int) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions t").
		LeftJoin("transaction_categories c ON c.id = t.transaction_category_id").
		OrderBy("t.created_at DESC").
		Limit(uint64(limit)).
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

	var transactions []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var (
		tx      models.Transaction
		catID   *uuid.UUID
		catName *string
		catDesc *string
	)
	if err := row.Scan(
		&tx.ID, &tx.Name, &tx.Type, &tx.Amount, &tx.Date, &tx.CategoryID, &tx.CreatedAt,
		&catID, &catName, &catDesc,
	); err != nil {
		return nil, err
	}

	if catID != nil {
		tx.Category = &models.TransactionCategory{ID: *catID}
		if catName != nil {
			tx.Category.Name = *catName
		}
		if catDesc != nil {
			tx.Category.Description = *catDesc
		}
	}

	return &tx, nil
}
