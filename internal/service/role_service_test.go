package service

import (
	"context"
	"testing"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRoleService() (*RoleService, *fakeRoleStore, *fakeEmployeeStore) {
	roles := newFakeRoleStore(models.RoleManager)
	employees := newFakeEmployeeStore()
	s := NewRoleService(roles, employees, zap.NewNop())
	s.now = func() time.Time { return frozenNow }
	return s, roles, employees
}

func TestCreateRole(t *testing.T) {
	s, _, _ := newTestRoleService()
	ctx := context.Background()

	created, err := s.Create(ctx, &dto.RoleRequest{Name: " Mecânico ", Description: "Serviços gerais"})
	require.NoError(t, err)
	assert.Equal(t, "Mecânico", created.Name)
	assert.Equal(t, "2025-03-31T15:04:00Z", created.CreatedAt)

	_, err = s.Create(ctx, &dto.RoleRequest{Name: "MECANICO"})
	assert.ErrorIs(t, err, ErrRoleExists)

	_, err = s.Create(ctx, &dto.RoleRequest{Name: "gerente"})
	assert.ErrorIs(t, err, ErrReservedRole)

	_, err = s.Create(ctx, &dto.RoleRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrRoleNameRequired)

	roles, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

func TestEditRole(t *testing.T) {
	s, store, _ := newTestRoleService()
	ctx := context.Background()

	created, err := s.Create(ctx, &dto.RoleRequest{Name: "Mecanico"})
	require.NoError(t, err)
	other, err := s.Create(ctx, &dto.RoleRequest{Name: "Pintor"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	edited, err := s.Edit(ctx, id, &dto.RoleRequest{Name: "Mecânico", Description: "Motor"})
	require.NoError(t, err)
	assert.Equal(t, "Mecânico", edited.Name)
	assert.Equal(t, [2]string{"Mecanico", "Mecânico"}, store.lastRename)

	_, err = s.Edit(ctx, id, &dto.RoleRequest{Name: "pintor"})
	assert.ErrorIs(t, err, ErrRoleExists)

	_, err = s.Edit(ctx, uuid.MustParse(other.ID), &dto.RoleRequest{Name: "Gerente"})
	assert.ErrorIs(t, err, ErrReservedRole)

	manager, err := store.GetByName(ctx, models.RoleManager)
	require.NoError(t, err)
	_, err = s.Edit(ctx, manager.ID, &dto.RoleRequest{Name: "Chefe"})
	assert.ErrorIs(t, err, ErrReservedRole)

	_, err = s.Edit(ctx, uuid.New(), &dto.RoleRequest{Name: "Nada"})
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestDeleteRole(t *testing.T) {
	s, store, employees := newTestRoleService()
	ctx := context.Background()

	used, err := s.Create(ctx, &dto.RoleRequest{Name: "Mecânico"})
	require.NoError(t, err)
	free, err := s.Create(ctx, &dto.RoleRequest{Name: "Estagiário"})
	require.NoError(t, err)
	seedEmployee(t, employees, "Rui", "rui@oficina.com", "senha123", "Mecânico")

	assert.ErrorIs(t, s.Delete(ctx, uuid.MustParse(used.ID)), ErrRoleInUse)
	require.NoError(t, s.Delete(ctx, uuid.MustParse(free.ID)))
	assert.ErrorIs(t, s.Delete(ctx, uuid.MustParse(free.ID)), ErrRoleNotFound)

	manager, err := store.GetByName(ctx, models.RoleManager)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Delete(ctx, manager.ID), ErrReservedRole)
}
