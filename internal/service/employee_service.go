package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/internal/repository"
	"oficina-api/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSelfStatusChange     = errors.New("employees cannot change their own status")
	ErrInvalidEmployeeState = errors.New("status must be Ativo or Inativo")
)

// EmployeeService manages staff accounts after their creation.
type EmployeeService struct {
	employees EmployeeStore
	roles     RoleStore
	logger    *zap.Logger
	now       func() time.Time
}

func NewEmployeeService(employees EmployeeStore, roles RoleStore, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		roles:     roles,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns a page of ten employees ordered by name. search matches part
// of the name; status filters when set.
func (s *EmployeeService) List(ctx context.Context, page int, search, status string) (*dto.EmployeeListResponse, error) {
	page = normalizePage(page)
	status = strings.TrimSpace(status)
	if status != "" && !models.ValidEmployeeStatus(status) {
		return nil, ErrInvalidEmployeeState
	}

	filter := repository.EmployeeFilter{
		Search: cleanText(search),
		Status: status,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	employees, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.employees.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.EmployeeListResponse{
		Employees:  make([]dto.EmployeeResponse, 0, len(employees)),
		Page:       page,
		TotalPages: totalPages(count),
		Total:      count,
	}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, toEmployeeResponse(e))
	}
	return resp, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error) {
	employee, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// Edit updates name, email, role and status. actorID is the employee making
// the change, who may not change their own status.
func (s *EmployeeService) Edit(ctx context.Context, actorID, id uuid.UUID, req *dto.EditEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := cleanText(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" {
		return nil, ErrInvalidEmployee
	}

	if employee.Status == "" {
		employee.Status = models.EmployeeActive
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = employee.Status
	}
	if !models.ValidEmployeeStatus(status) {
		return nil, ErrInvalidEmployeeState
	}
	if actorID == id && status != employee.Status {
		return nil, ErrSelfStatusChange
	}

	if email != employee.Email {
		if other, err := s.employees.GetByEmail(ctx, email); err == nil && other.ID != id {
			return nil, ErrEmployeeExists
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	role, err := resolveRole(ctx, s.roles, req.Role)
	if err != nil {
		return nil, err
	}

	employee.Name = name
	employee.Email = email
	employee.Role = role
	employee.Status = status
	employee.UpdatedAt = s.now().UTC()

	if err := s.employees.Update(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	s.logger.Info("Employee updated",
		zap.String("employee_id", id.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("role", role),
		zap.String("status", status),
	)

	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// ChangePassword sets a new password for id. When the employee changes their
// own password the current one must match.
func (s *EmployeeService) ChangePassword(ctx context.Context, actorID, id uuid.UUID, req *dto.ChangePasswordRequest) error {
	if utf8.RuneCountInString(req.NewPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	employee, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if actorID == id && !auth.CheckPasswordHash(req.CurrentPassword, employee.Password) {
		return ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.employees.UpdatePassword(ctx, id, hashed, s.now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	s.logger.Info("Employee password changed", zap.String("employee_id", id.String()), zap.String("actor_id", actorID.String()))
	return nil
}

func (s *EmployeeService) get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}
