package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"oficina-api/internal/models"
	"oficina-api/internal/period"
	"oficina-api/internal/repository"

	"github.com/google/uuid"
)

type fakeQuoteStore struct {
	mu         sync.Mutex
	quotes     []*models.Quote
	lastFilter repository.QuoteFilter
	err        error
}

func (f *fakeQuoteStore) Create(_ context.Context, q *models.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.quotes = append(f.quotes, q)
	return nil
}

func (f *fakeQuoteStore) GetByID(_ context.Context, id uuid.UUID) (*models.Quote, error) {
	for _, q := range f.quotes {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Update mirrors the repository: deletes first, upserts restricted to the
// quote's own services, then the total recomputed from what is stored.
func (f *fakeQuoteStore) Update(_ context.Context, q *models.Quote, deleteServices []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}

	var stored *models.Quote
	for _, existing := range f.quotes {
		if existing.ID == q.ID {
			stored = existing
		}
	}
	if stored == nil {
		return repository.ErrNotFound
	}
	for _, svc := range q.Services {
		for _, other := range f.quotes {
			if other.ID == q.ID {
				continue
			}
			for _, taken := range other.Services {
				if taken.ID == svc.ID {
					return repository.ErrServiceNotFound
				}
			}
		}
	}

	deleted := make(map[uuid.UUID]bool, len(deleteServices))
	for _, id := range deleteServices {
		deleted[id] = true
	}
	kept := stored.Services[:0:0]
	for _, svc := range stored.Services {
		if !deleted[svc.ID] {
			kept = append(kept, svc)
		}
	}
	for _, svc := range q.Services {
		replaced := false
		for i := range kept {
			if kept[i].ID == svc.ID {
				kept[i] = svc
				replaced = true
			}
		}
		if !replaced {
			kept = append(kept, svc)
		}
	}

	updated := *q
	updated.CreatedAt = stored.CreatedAt
	updated.Services = kept
	updated.TotalPrice = updated.ServicesTotal()
	*stored = updated
	q.TotalPrice = updated.TotalPrice
	return nil
}

func (f *fakeQuoteStore) List(_ context.Context, page, size int) ([]*models.Quote, error) {
	sorted := f.sorted()
	start := (page - 1) * size
	if start >= len(sorted) {
		return nil, nil
	}
	end := start + size
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], nil
}

func (f *fakeQuoteStore) Count(context.Context) (int, error) {
	return len(f.quotes), nil
}

func (f *fakeQuoteStore) Search(_ context.Context, filter repository.QuoteFilter) ([]*models.Quote, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func (f *fakeQuoteStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, q := range f.quotes {
		if q.ID == id {
			f.quotes = append(f.quotes[:i], f.quotes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeQuoteStore) CountAndSumBetween(_ context.Context, from, to time.Time) (int, int64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	var (
		count int
		sum   int64
	)
	end := to.AddDate(0, 0, 1)
	for _, q := range f.quotes {
		if !q.CreatedAt.Before(from) && q.CreatedAt.Before(end) {
			count++
			sum += q.TotalPrice
		}
	}
	return count, sum, nil
}

func (f *fakeQuoteStore) Recent(_ context.Context, limit int) ([]*models.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	sorted := f.sorted()
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (f *fakeQuoteStore) sorted() []*models.Quote {
	out := append([]*models.Quote(nil), f.quotes...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type fakeTransactionStore struct {
	transactions []*models.Transaction
	lastFilter   repository.TransactionFilter
	lastCount    repository.TransactionFilter
	err          error
}

func (f *fakeTransactionStore) Create(_ context.Context, t *models.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.transactions = append(f.transactions, t)
	return nil
}

func (f *fakeTransactionStore) GetByID(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	for _, t := range f.transactions {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTransactionStore) Update(_ context.Context, t *models.Transaction) error {
	for i, existing := range f.transactions {
		if existing.ID == t.ID {
			f.transactions[i] = t
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTransactionStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range f.transactions {
		if t.ID == id {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTransactionStore) Search(_ context.Context, filter repository.TransactionFilter) ([]*models.Transaction, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	out := f.transactions
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeTransactionStore) Count(_ context.Context, filter repository.TransactionFilter) (int, error) {
	f.lastCount = filter
	if f.err != nil {
		return 0, f.err
	}
	return len(f.transactions), nil
}

func (f *fakeTransactionStore) Recent(_ context.Context, limit int) ([]*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := append([]*models.Transaction(nil), f.transactions...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCategoryStore struct {
	categories map[uuid.UUID]*models.TransactionCategory
}

func newFakeCategoryStore(categories ...*models.TransactionCategory) *fakeCategoryStore {
	f := &fakeCategoryStore{categories: map[uuid.UUID]*models.TransactionCategory{}}
	for _, c := range categories {
		f.categories[c.ID] = c
	}
	return f
}

func (f *fakeCategoryStore) Create(_ context.Context, c *models.TransactionCategory) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryStore) List(context.Context) ([]*models.TransactionCategory, error) {
	out := make([]*models.TransactionCategory, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.TransactionCategory, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCategoryStore) Update(_ context.Context, c *models.TransactionCategory) error {
	if _, ok := f.categories[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

type fakeEmployeeStore struct {
	employees  map[string]*models.Employee
	lastFilter repository.EmployeeFilter
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{employees: map[string]*models.Employee{}}
}

func (f *fakeEmployeeStore) Create(_ context.Context, e *models.Employee) error {
	f.employees[e.Email] = e
	return nil
}

func (f *fakeEmployeeStore) GetByEmail(_ context.Context, email string) (*models.Employee, error) {
	e, ok := f.employees[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

func (f *fakeEmployeeStore) GetByID(_ context.Context, id uuid.UUID) (*models.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEmployeeStore) matching(filter repository.EmployeeFilter) []*models.Employee {
	var out []*models.Employee
	for _, e := range f.employees {
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Role != "" && e.Role != filter.Role {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeEmployeeStore) List(_ context.Context, filter repository.EmployeeFilter) ([]*models.Employee, error) {
	f.lastFilter = filter
	return window(f.matching(filter), filter.Limit, filter.Offset), nil
}

func (f *fakeEmployeeStore) Count(_ context.Context, filter repository.EmployeeFilter) (int, error) {
	return len(f.matching(filter)), nil
}

func (f *fakeEmployeeStore) Update(_ context.Context, e *models.Employee) error {
	for email, existing := range f.employees {
		if existing.ID == e.ID {
			delete(f.employees, email)
			f.employees[e.Email] = e
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeEmployeeStore) UpdatePassword(_ context.Context, id uuid.UUID, hashed string, at time.Time) error {
	for _, e := range f.employees {
		if e.ID == id {
			e.Password = hashed
			e.UpdatedAt = at
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeRoleStore struct {
	roles      map[uuid.UUID]*models.Role
	lastRename [2]string
}

func newFakeRoleStore(names ...string) *fakeRoleStore {
	f := &fakeRoleStore{roles: map[uuid.UUID]*models.Role{}}
	for _, name := range names {
		id := uuid.New()
		f.roles[id] = &models.Role{ID: id, Name: name, CreatedAt: frozenNow}
	}
	return f
}

func (f *fakeRoleStore) byName(name string) *models.Role {
	for _, r := range f.roles {
		if period.Normalize(r.Name) == period.Normalize(name) {
			return r
		}
	}
	return nil
}

func (f *fakeRoleStore) Create(_ context.Context, r *models.Role) error {
	if f.byName(r.Name) != nil {
		return repository.ErrDuplicate
	}
	f.roles[r.ID] = r
	return nil
}

func (f *fakeRoleStore) List(context.Context) ([]*models.Role, error) {
	out := make([]*models.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRoleStore) GetByID(_ context.Context, id uuid.UUID) (*models.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRoleStore) GetByName(_ context.Context, name string) (*models.Role, error) {
	r := f.byName(name)
	if r == nil {
		return nil, repository.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRoleStore) Update(_ context.Context, r *models.Role, previousName string) error {
	if _, ok := f.roles[r.ID]; !ok {
		return repository.ErrNotFound
	}
	f.roles[r.ID] = r
	f.lastRename = [2]string{previousName, r.Name}
	return nil
}

func (f *fakeRoleStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.roles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.roles, id)
	return nil
}

type fakeClientStore struct {
	clients  map[uuid.UUID]*models.Client
	vehicles map[uuid.UUID]*models.Vehicle
	lastList repository.ClientFilter
	lastCars repository.VehicleFilter
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{
		clients:  map[uuid.UUID]*models.Client{},
		vehicles: map[uuid.UUID]*models.Vehicle{},
	}
}

func (f *fakeClientStore) Create(_ context.Context, c *models.Client) error {
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientStore) GetByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClientStore) matchingClients(filter repository.ClientFilter) []*models.Client {
	var out []*models.Client
	for _, c := range f.clients {
		if filter.Search == "" || strings.Contains(period.Normalize(c.Name), filter.Search) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeClientStore) List(_ context.Context, filter repository.ClientFilter) ([]*models.Client, error) {
	f.lastList = filter
	return window(f.matchingClients(filter), filter.Limit, filter.Offset), nil
}

func (f *fakeClientStore) Count(_ context.Context, filter repository.ClientFilter) (int, error) {
	return len(f.matchingClients(filter)), nil
}

func (f *fakeClientStore) Update(_ context.Context, c *models.Client) error {
	if _, ok := f.clients[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientStore) CreateVehicle(_ context.Context, v *models.Vehicle) error {
	if _, ok := f.clients[v.ClientID]; !ok {
		return repository.ErrClientNotFound
	}
	f.vehicles[v.ID] = v
	return nil
}

func (f *fakeClientStore) GetVehicle(_ context.Context, id uuid.UUID) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *v
	if owner, ok := f.clients[v.ClientID]; ok {
		copied.ClientName = owner.Name
	}
	return &copied, nil
}

func (f *fakeClientStore) matchingVehicles(filter repository.VehicleFilter) []*models.Vehicle {
	var out []*models.Vehicle
	for _, v := range f.vehicles {
		if filter.ClientID != nil && v.ClientID != *filter.ClientID {
			continue
		}
		if filter.LicensePlate != "" && !strings.Contains(v.LicensePlate, filter.LicensePlate) {
			continue
		}
		if filter.Model != "" && !strings.Contains(strings.ToLower(v.Model), strings.ToLower(filter.Model)) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeClientStore) ListVehicles(_ context.Context, filter repository.VehicleFilter) ([]*models.Vehicle, error) {
	f.lastCars = filter
	return window(f.matchingVehicles(filter), filter.Limit, filter.Offset), nil
}

func (f *fakeClientStore) CountVehicles(_ context.Context, filter repository.VehicleFilter) (int, error) {
	return len(f.matchingVehicles(filter)), nil
}

func (f *fakeClientStore) UpdateVehicle(_ context.Context, v *models.Vehicle) error {
	if _, ok := f.vehicles[v.ID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := f.clients[v.ClientID]; !ok {
		return repository.ErrClientNotFound
	}
	f.vehicles[v.ID] = v
	return nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

type fakeChat struct {
	question string
	answer   string
	err      error
}

func (f *fakeChat) Ask(_ context.Context, question string) (string, error) {
	f.question = question
	return f.answer, f.err
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}
