package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"oficina-api/internal/models"
	"oficina-api/internal/repository"
	"oficina-api/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testPool connects to DATABASE_URL and applies the schema. Tests using it
// are skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, zap.NewNop()))
	return pool
}

func storedQuote(t *testing.T, repo *repository.QuoteRepository, prices ...int64) *models.Quote {
	t.Helper()
	q := &models.Quote{
		ID:           uuid.New(),
		ClientName:   "Cliente " + uuid.NewString()[:8],
		VehicleModel: "Gol",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, p := range prices {
		q.Services = append(q.Services, models.Service{ID: uuid.New(), QuoteID: q.ID, Name: "Serviço", Price: p})
	}
	q.TotalPrice = q.ServicesTotal()
	require.NoError(t, repo.Create(context.Background(), q))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), q.ID) })
	return q
}

func TestQuoteRepositoryUpdate(t *testing.T) {
	pool := testPool(t)
	repo := repository.NewQuoteRepository(pool, zap.NewNop())
	ctx := context.Background()

	q := storedQuote(t, repo, 10000, 5000)
	kept, dropped := q.Services[0], q.Services[1]

	edit := *q
	edit.ClientName = "Carlos Lima"
	edit.Services = []models.Service{
		{ID: kept.ID, QuoteID: q.ID, Name: "Revisão", Price: 12000},
		{ID: uuid.New(), QuoteID: q.ID, Name: "Alinhamento", Price: 8050},
	}
	require.NoError(t, repo.Update(ctx, &edit, []uuid.UUID{dropped.ID}))
	assert.Equal(t, int64(20050), edit.TotalPrice)

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos Lima", got.ClientName)
	assert.Equal(t, int64(20050), got.TotalPrice)
	assert.True(t, got.CreatedAt.Equal(q.CreatedAt))
	require.Len(t, got.Services, 2)
	for _, s := range got.Services {
		assert.NotEqual(t, dropped.ID, s.ID)
	}
}

func TestQuoteRepositoryUpdateRejectsForeignService(t *testing.T) {
	pool := testPool(t)
	repo := repository.NewQuoteRepository(pool, zap.NewNop())
	ctx := context.Background()

	mine := storedQuote(t, repo, 1000)
	theirs := storedQuote(t, repo, 2000)

	edit := *mine
	edit.Services = []models.Service{{ID: theirs.Services[0].ID, QuoteID: mine.ID, Name: "Roubo", Price: 1}}
	err := repo.Update(ctx, &edit, nil)
	assert.ErrorIs(t, err, repository.ErrServiceNotFound)

	// The transaction rolled back on both quotes.
	other, err := repo.GetByID(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), other.TotalPrice)
	assert.Equal(t, "Serviço", other.Services[0].Name)

	missing := *mine
	missing.ID = uuid.New()
	missing.Services = nil
	assert.ErrorIs(t, repo.Update(ctx, &missing, nil), repository.ErrNotFound)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRoleRenameMovesEmployees(t *testing.T) {
	pool := testPool(t)
	roles := repository.NewRoleRepository(pool, zap.NewNop())
	employees := repository.NewEmployeeRepository(pool, zap.NewNop())
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	role := &models.Role{ID: uuid.New(), Name: "Mecânico " + suffix, CreatedAt: time.Now().UTC()}
	require.NoError(t, roles.Create(ctx, role))
	t.Cleanup(func() { _ = roles.Delete(context.Background(), role.ID) })

	dup := &models.Role{ID: uuid.New(), Name: "MECANICO " + suffix, CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, roles.Create(ctx, dup), repository.ErrDuplicate)

	worker := &models.Employee{
		ID:        uuid.New(),
		Name:      "Rui",
		Email:     "rui-" + suffix + "@oficina.com",
		Password:  "hash",
		Role:      role.Name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, employees.Create(ctx, worker))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), "DELETE FROM employees WHERE id = $1", worker.ID) })

	previous := role.Name
	role.Name = "Mecânico Chefe " + suffix
	require.NoError(t, roles.Update(ctx, role, previous))

	got, err := employees.GetByID(ctx, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, role.Name, got.Role)
	assert.Equal(t, models.EmployeeActive, got.Status)

	byName, err := roles.GetByName(ctx, "mecanico chefe "+suffix)
	require.NoError(t, err)
	assert.Equal(t, role.ID, byName.ID)

	count, err := employees.Count(ctx, repository.EmployeeFilter{Role: role.Name})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClientAndVehicleRepository(t *testing.T) {
	pool := testPool(t)
	repo := repository.NewClientRepository(pool, zap.NewNop())
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	client := &models.Client{ID: uuid.New(), Name: "João " + suffix, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, client))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), "DELETE FROM clients WHERE id = $1", client.ID) })

	found, err := repo.List(ctx, repository.ClientFilter{Search: "joao " + suffix})
	require.NoError(t, err)
	require.Len(t, found, 1)

	vehicle := &models.Vehicle{ID: uuid.New(), ClientID: client.ID, Model: "Gol", LicensePlate: "ABC1D23", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateVehicle(ctx, vehicle))

	got, err := repo.GetVehicle(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, client.Name, got.ClientName)

	orphan := &models.Vehicle{ID: uuid.New(), ClientID: uuid.New(), Model: "Uno", CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, repo.CreateVehicle(ctx, orphan), repository.ErrClientNotFound)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
