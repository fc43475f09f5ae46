package repository

import (
	"oficina-api/internal/models"
	"oficina-api/internal/period"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// QuoteFilter holds the optional conditions of a quote search. Zero values
// are not applied.
type QuoteFilter struct {
	ClientName string
	Vehicle    string // matched against brand, model, year and color
	Period     period.Range
	MinCents   *int64
	MaxCents   *int64
	Limit      int
}

// Predicate AND-composes the filter conditions over the quotes table
// (alias q). It returns nil when no condition is set.
func (f QuoteFilter) Predicate() squirrel.Sqlizer {
	var conds squirrel.And

	if f.ClientName != "" {
		conds = append(conds, squirrel.ILike{"q.client_name": contains(f.ClientName)})
	}
	if f.Vehicle != "" {
		pattern := contains(f.Vehicle)
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"q.vehicle_brand": pattern},
			squirrel.ILike{"q.vehicle_model": pattern},
			squirrel.ILike{"q.vehicle_year": pattern},
			squirrel.ILike{"q.vehicle_color": pattern},
		})
	}
	// created_at is a timestamp: the end day is included by comparing
	// against the following midnight.
	if f.Period.Start != nil {
		conds = append(conds, squirrel.GtOrEq{"q.created_at": *f.Period.Start})
	}
	if f.Period.End != nil {
		conds = append(conds, squirrel.Lt{"q.created_at": f.Period.End.AddDate(0, 0, 1)})
	}
	if f.MinCents != nil {
		conds = append(conds, squirrel.GtOrEq{"q.total_price": *f.MinCents})
	}
	if f.MaxCents != nil {
		conds = append(conds, squirrel.LtOrEq{"q.total_price": *f.MaxCents})
	}

	if len(conds) == 0 {
		return nil
	}
	return conds
}

// TransactionFilter holds the optional conditions of a transaction search.
type TransactionFilter struct {
	Name        string
	Category    string // category name substring
	CategoryIDs []uuid.UUID
	Type        models.TransactionType
	Period      period.Range
	MinCents    *int64
	MaxCents    *int64
	Limit       int
	Offset      int
}

// Predicate AND-composes the filter conditions over transactions (alias t)
// left-joined with transaction_categories (alias c).
func (f TransactionFilter) Predicate() squirrel.Sqlizer {
	var conds squirrel.And

	if f.Name != "" {
		conds = append(conds, squirrel.ILike{"t.name": contains(f.Name)})
	}
	if f.Type != "" {
		conds = append(conds, squirrel.Eq{"t.type": string(f.Type)})
	}
	if f.MinCents != nil {
		conds = append(conds, squirrel.GtOrEq{"t.amount": *f.MinCents})
	}
	if f.MaxCents != nil {
		conds = append(conds, squirrel.LtOrEq{"t.amount": *f.MaxCents})
	}
	// transaction_date is a calendar date, both bounds compare directly.
	if f.Period.Start != nil {
		conds = append(conds, squirrel.GtOrEq{"t.transaction_date": *f.Period.Start})
	}
	if f.Period.End != nil {
		conds = append(conds, squirrel.LtOrEq{"t.transaction_date": *f.Period.End})
	}
	if f.Category != "" {
		conds = append(conds, squirrel.ILike{"c.name": contains(f.Category)})
	}
	if len(f.CategoryIDs) > 0 {
		ids := make([]string, len(f.CategoryIDs))
		for i, id := range f.CategoryIDs {
			ids[i] = id.String()
		}
		conds = append(conds, squirrel.Eq{"t.transaction_category_id": ids})
	}

	if len(conds) == 0 {
		return nil
	}
	return conds
}

// EmployeeFilter selects employees for the staff listing.
type EmployeeFilter struct {
	Search string // name substring
	Status string
	Role   string
	Limit  int
	Offset int
}

func (f EmployeeFilter) Predicate() squirrel.Sqlizer {
	var conds squirrel.And

	if f.Search != "" {
		conds = append(conds, squirrel.ILike{"name": contains(f.Search)})
	}
	if f.Status != "" {
		conds = append(conds, squirrel.Eq{"status": f.Status})
	}
	if f.Role != "" {
		conds = append(conds, squirrel.Eq{"role": f.Role})
	}

	if len(conds) == 0 {
		return nil
	}
	return conds
}

// ClientFilter matches Search, already normalized, against the normalized
// client name.
type ClientFilter struct {
	Search string
	Limit  int
	Offset int
}

func (f ClientFilter) Predicate() squirrel.Sqlizer {
	if f.Search == "" {
		return nil
	}
	return squirrel.ILike{"name_normalized": contains(f.Search)}
}

// VehicleFilter holds the optional conditions of the vehicle listing over
// vehicles (alias v).
type VehicleFilter struct {
	Model        string
	LicensePlate string
	ClientID     *uuid.UUID
	Limit        int
	Offset       int
}

func (f VehicleFilter) Predicate() squirrel.Sqlizer {
	var conds squirrel.And

	if f.Model != "" {
		conds = append(conds, squirrel.ILike{"v.model": contains(f.Model)})
	}
	if f.LicensePlate != "" {
		conds = append(conds, squirrel.ILike{"v.license_plate": contains(f.LicensePlate)})
	}
	if f.ClientID != nil {
		conds = append(conds, squirrel.Eq{"v.client_id": *f.ClientID})
	}

	if len(conds) == 0 {
		return nil
	}
	return conds
}

var quoteColumns = []string{
	"q.id", "q.client_name", "q.client_phone", "q.client_cpf", "q.client_address",
	"q.vehicle_brand", "q.vehicle_model", "q.vehicle_year", "q.vehicle_color",
	"q.vehicle_chassi", "q.vehicle_license_plate", "q.total_price", "q.observations", "q.created_at",
}

var clientColumns = []string{"id", "name", "phone", "cpf", "address", "created_at"}

var vehicleColumns = []string{
	"v.id", "v.client_id", "cl.name", "v.brand", "v.model", "v.license_plate",
	"v.year", "v.color", "v.chassis", "v.created_at",
}

var transactionColumns = []string{
	"t.id", "t.name", "t.type", "t.amount", "t.transaction_date", "t.transaction_category_id", "t.created_at",
	"c.id", "c.name", "c.description",
}

// QuoteSearchQuery builds the quote search, newest first.
func QuoteSearchQuery(f QuoteFilter) squirrel.SelectBuilder {
	query := squirrel.Select(quoteColumns...).
		From("quotes q").
		OrderBy("q.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if pred := f.Predicate(); pred != nil {
		query = query.Where(pred)
	}
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit))
	}
	return query
}

// TransactionSearchQuery builds the transaction search, most recent
// transaction date first.
func TransactionSearchQuery(f TransactionFilter) squirrel.SelectBuilder {
	query := squirrel.Select(transactionColumns...).
		From("transactions t").
		LeftJoin("transaction_categories c ON c.id = t.transaction_category_id").
		OrderBy("t.transaction_date DESC", "t.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if pred := f.Predicate(); pred != nil {
		query = query.Where(pred)
	}
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		query = query.Offset(uint64(f.Offset))
	}
	return query
}

// TransactionCountQuery counts the rows TransactionSearchQuery would return
// without limit and offset.
func TransactionCountQuery(f TransactionFilter) squirrel.SelectBuilder {
	query := squirrel.Select("COUNT(*)").
		From("transactions t").
		LeftJoin("transaction_categories c ON c.id = t.transaction_category_id").
		PlaceholderFormat(squirrel.Dollar)

	if pred := f.Predicate(); pred != nil {
		query = query.Where(pred)
	}
	return query
}

func contains(s string) string {
	return "%" + s + "%"
}

// paged applies an optional predicate and limit/offset to a listing query.
func paged(query squirrel.SelectBuilder, pred squirrel.Sqlizer, limit, offset int) squirrel.SelectBuilder {
	if pred != nil {
		query = query.Where(pred)
	}
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	if offset > 0 {
		query = query.Offset(uint64(offset))
	}
	return query
}

// EmployeeListQuery lists employees alphabetically.
func EmployeeListQuery(f EmployeeFilter) squirrel.SelectBuilder {
	query := squirrel.Select(employeeColumns...).
		From("employees").
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)
	return paged(query, f.Predicate(), f.Limit, f.Offset)
}

func EmployeeCountQuery(f EmployeeFilter) squirrel.SelectBuilder {
	query := squirrel.Select("COUNT(*)").
		From("employees").
		PlaceholderFormat(squirrel.Dollar)
	return paged(query, f.Predicate(), 0, 0)
}

// ClientListQuery lists clients alphabetically.
func ClientListQuery(f ClientFilter) squirrel.SelectBuilder {
	query := squirrel.Select(clientColumns...).
		From("clients").
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)
	return paged(query, f.Predicate(), f.Limit, f.Offset)
}

func ClientCountQuery(f ClientFilter) squirrel.SelectBuilder {
	query := squirrel.Select("COUNT(*)").
		From("clients").
		PlaceholderFormat(squirrel.Dollar)
	return paged(query, f.Predicate(), 0, 0)
}

// VehicleListQuery lists vehicles with their owner's name, newest first.
func VehicleListQuery(f VehicleFilter) squirrel.SelectBuilder {
	query := squirrel.Select(vehicleColumns...).
		From("vehicles v").
		Join("clients cl ON cl.id = v.client_id").
		OrderBy("v.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	return paged(query, f.Predicate(), f.Limit, f.Offset)
}

func VehicleCountQuery(f VehicleFilter) squirrel.SelectBuilder {
	query := squirrel.Select("COUNT(*)").
		From("vehicles v").
		PlaceholderFormat(squirrel.Dollar)
	return paged(query, f.Predicate(), 0, 0)
}
