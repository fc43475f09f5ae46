package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmployeeExists     = errors.New("employee already exists")
	ErrInvalidEmployee    = errors.New("name, email and password are required")
	ErrEmployeeInactive   = errors.New("employee is inactive")
	ErrWeakPassword       = errors.New("password must have at least 6 characters")
)

const minPasswordLength = 6

type AuthService struct {
	employees  EmployeeStore
	roles      RoleStore
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(employees EmployeeStore, roles RoleStore, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		employees:  employees,
		roles:      roles,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// CreateEmployee registers a staff account. Only managers reach it.
func (s *AuthService) CreateEmployee(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := cleanText(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, ErrInvalidEmployee
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	role, err := resolveRole(ctx, s.roles, req.Role)
	if err != nil {
		return nil, err
	}

	existing, _ := s.employees.GetByEmail(ctx, email)
	if existing != nil {
		return nil, ErrEmployeeExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	employee := &models.Employee{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		Status:    models.EmployeeActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("Employee created", zap.String("employee_id", employee.ID.String()), zap.String("role", employee.Role))

	resp := toEmployeeResponse(employee)
	return &resp, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	employee, err := s.employees.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, employee.Password) {
		return nil, ErrInvalidCredentials
	}
	if !employee.IsActive() {
		s.logger.Warn("Inactive employee tried to log in", zap.String("employee_id", employee.ID.String()))
		return nil, ErrEmployeeInactive
	}

	return s.issueTokens(employee)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateTokenType(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	employeeID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	if !employee.IsActive() {
		return nil, ErrEmployeeInactive
	}

	return s.issueTokens(employee)
}

func (s *AuthService) issueTokens(employee *models.Employee) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(employee.ID.String(), employee.Name, employee.Email, employee.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(employee.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		Employee:     toEmployeeResponse(employee),
	}, nil
}

func toEmployeeResponse(e *models.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:     e.ID.String(),
		Name:   e.Name,
		Email:  e.Email,
		Role:   e.Role,
		Status: e.Status,
	}
}
