package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Label returns the Portuguese label shown in reports.
func (t TransactionType) Label() string {
	if t == TransactionTypeIncome {
		return "Entrada"
	}
	return "Saída"
}

// Transaction is a financial entry. Amount is in cents and never negative;
// Date is a calendar date stored at UTC midnight.
type Transaction struct {
	ID         uuid.UUID       `db:"id"`
	Name       string          `db:"name"`
	Type       TransactionType `db:"type"`
	Amount     int64           `db:"amount"`
	Date       time.Time       `db:"transaction_date"`
	CategoryID *uuid.UUID      `db:"transaction_category_id"`
	Category   *TransactionCategory
	CreatedAt  time.Time `db:"created_at"`
}

type TransactionCategory struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}
