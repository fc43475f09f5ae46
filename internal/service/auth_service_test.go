package service

import (
	"context"
	"testing"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService() (*AuthService, *auth.JWTManager) {
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute, time.Hour)
	roles := newFakeRoleStore(models.RoleManager, "Mecânico")
	return NewAuthService(newFakeEmployeeStore(), roles, jwtManager, zap.NewNop()), jwtManager
}

func TestCreateEmployeeAndLogin(t *testing.T) {
	s, jwtManager := newTestAuthService()
	ctx := context.Background()

	created, err := s.CreateEmployee(ctx, &dto.CreateEmployeeRequest{
		Name:     "Paula",
		Email:    " Paula@Oficina.com ",
		Password: "segredo123",
		Role:     models.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "paula@oficina.com", created.Email)

	_, err = s.CreateEmployee(ctx, &dto.CreateEmployeeRequest{Name: "Outra", Email: "paula@oficina.com", Password: "outra123"})
	assert.ErrorIs(t, err, ErrEmployeeExists)

	_, err = s.CreateEmployee(ctx, &dto.CreateEmployeeRequest{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidEmployee)

	resp, err := s.Login(ctx, &dto.LoginRequest{Email: "PAULA@oficina.com", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	assert.Equal(t, models.RoleManager, resp.Employee.Role)

	claims, err := jwtManager.ValidateTokenType(resp.AccessToken, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, models.RoleManager, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s, _ := newTestAuthService()
	ctx := context.Background()

	_, err := s.CreateEmployee(ctx, &dto.CreateEmployeeRequest{Name: "Rui", Email: "rui@oficina.com", Password: "certa1"})
	require.NoError(t, err)

	_, err = s.Login(ctx, &dto.LoginRequest{Email: "rui@oficina.com", Password: "errada1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, &dto.LoginRequest{Email: "ninguem@oficina.com", Password: "certa1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	s, _ := newTestAuthService()
	ctx := context.Background()

	_, err := s.CreateEmployee(ctx, &dto.CreateEmployeeRequest{Name: "Rui", Email: "rui@oficina.com", Password: "certa1"})
	require.NoError(t, err)
	login, err := s.Login(ctx, &dto.LoginRequest{Email: "rui@oficina.com", Password: "certa1"})
	require.NoError(t, err)

	refreshed, err := s.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "Rui", refreshed.Employee.Name)

	_, err = s.RefreshToken(ctx, login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateEmployeeChecksRoleAndPassword(t *testing.T) {
	s, _ := newTestAuthService()
	ctx := context.Background()

	_, err := s.CreateEmployee(ctx, &dto.CreateEmployeeRequest{Name: "Leo", Email: "leo@oficina.com", Password: "123"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = s.CreateEmployee(ctx, &dto.CreateEmployeeRequest{Name: "Leo", Email: "leo@oficina.com", Password: "123456", Role: "Astronauta"})
	assert.ErrorIs(t, err, ErrUnknownRole)

	created, err := s.CreateEmployee(ctx, &dto.CreateEmployeeRequest{Name: "Leo", Email: "leo@oficina.com", Password: "123456", Role: " mecanico "})
	require.NoError(t, err)
	assert.Equal(t, "Mecânico", created.Role)
	assert.Equal(t, models.EmployeeActive, created.Status)
}

func TestLoginRejectsInactiveEmployee(t *testing.T) {
	s, _ := newTestAuthService()
	ctx := context.Background()

	_, err := s.CreateEmployee(ctx, &dto.CreateEmployeeRequest{Name: "Rui", Email: "rui@oficina.com", Password: "certa1"})
	require.NoError(t, err)
	login, err := s.Login(ctx, &dto.LoginRequest{Email: "rui@oficina.com", Password: "certa1"})
	require.NoError(t, err)

	employee, err := s.employees.GetByEmail(ctx, "rui@oficina.com")
	require.NoError(t, err)
	employee.Status = models.EmployeeInactive

	_, err = s.Login(ctx, &dto.LoginRequest{Email: "rui@oficina.com", Password: "certa1"})
	assert.ErrorIs(t, err, ErrEmployeeInactive)

	_, err = s.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrEmployeeInactive)
}
