package service

import (
	"context"
	"errors"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/internal/period"
	"oficina-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRoleNotFound     = errors.New("role not found")
	ErrRoleNameRequired = errors.New("role name is required")
	ErrReservedRole     = errors.New("the manager role is reserved")
	ErrRoleExists       = errors.New("role already exists")
	ErrRoleInUse        = errors.New("role is assigned to employees")
	ErrUnknownRole      = errors.New("unknown role")
)

type RoleService struct {
	roles     RoleStore
	employees EmployeeStore
	logger    *zap.Logger
	now       func() time.Time
}

func NewRoleService(roles RoleStore, employees EmployeeStore, logger *zap.Logger) *RoleService {
	return &RoleService{
		roles:     roles,
		employees: employees,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *RoleService) Create(ctx context.Context, req *dto.RoleRequest) (*dto.RoleResponse, error) {
	name, err := s.checkName(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}

	role := &models.Role{
		ID:          uuid.New(),
		Name:        name,
		Description: cleanText(req.Description),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.roles.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoleExists
		}
		return nil, err
	}

	s.logger.Info("Role created", zap.String("role_id", role.ID.String()), zap.String("name", role.Name))

	resp := toRoleResponse(role)
	return &resp, nil
}

func (s *RoleService) List(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		resp = append(resp, toRoleResponse(r))
	}
	return resp, nil
}

// Edit renames a role. Employees holding the old name follow the rename.
func (s *RoleService) Edit(ctx context.Context, id uuid.UUID, req *dto.RoleRequest) (*dto.RoleResponse, error) {
	role, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if role.Name == models.RoleManager {
		return nil, ErrReservedRole
	}

	name, err := s.checkName(ctx, req.Name, id)
	if err != nil {
		return nil, err
	}

	previous := role.Name
	role.Name = name
	role.Description = cleanText(req.Description)
	if err := s.roles.Update(ctx, role, previous); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRoleNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrRoleExists
		}
		return nil, err
	}

	s.logger.Info("Role updated",
		zap.String("role_id", id.String()),
		zap.String("previous_name", previous),
		zap.String("name", role.Name),
	)

	resp := toRoleResponse(role)
	return &resp, nil
}

// Delete removes a role nobody holds.
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if role.Name == models.RoleManager {
		return ErrReservedRole
	}

	holders, err := s.employees.Count(ctx, repository.EmployeeFilter{Role: role.Name})
	if err != nil {
		return err
	}
	if holders > 0 {
		return ErrRoleInUse
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoleNotFound
		}
		return err
	}

	s.logger.Info("Role deleted", zap.String("role_id", id.String()), zap.String("name", role.Name))
	return nil
}

func (s *RoleService) get(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

// checkName cleans a role name and rejects the reserved manager name and
// names another role already uses, ignoring case and accents.
func (s *RoleService) checkName(ctx context.Context, raw string, self uuid.UUID) (string, error) {
	name := cleanText(raw)
	if name == "" {
		return "", ErrRoleNameRequired
	}
	if period.Normalize(name) == period.Normalize(models.RoleManager) {
		return "", ErrReservedRole
	}

	existing, err := s.roles.GetByName(ctx, name)
	switch {
	case err == nil && existing.ID != self:
		return "", ErrRoleExists
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return "", err
	}
	return name, nil
}

// resolveRole maps a requested role to its stored spelling. An empty role is
// allowed and stays empty.
func resolveRole(ctx context.Context, roles RoleStore, raw string) (string, error) {
	name := cleanText(raw)
	if name == "" {
		return "", nil
	}

	role, err := roles.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnknownRole
		}
		return "", err
	}
	return role.Name, nil
}

func toRoleResponse(r *models.Role) dto.RoleResponse {
	return dto.RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
