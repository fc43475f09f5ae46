package handlers

import (
	"oficina-api/internal/dto"
	"oficina-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeHandler serves staff administration and job roles.
type EmployeeHandler struct {
	employeeService *service.EmployeeService
	roleService     *service.RoleService
	logger          *zap.Logger
}

func NewEmployeeHandler(employeeService *service.EmployeeService, roleService *service.RoleService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		roleService:     roleService,
		logger:          logger,
	}
}

// ListEmployees godoc
// @Summary List employees
// @Description Ten employees per page ordered by name. Managers only.
// @Tags employees
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param search query string false "Part of the name"
// @Param status query string false "Ativo or Inativo"
// @Success 200 {object} dto.EmployeeListResponse
// @Failure 403 {object} map[string]string
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	resp, err := h.employeeService.List(c.Context(), c.QueryInt("page", 1), c.Query("search"), c.Query("status"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list employees")
	}
	return c.JSON(resp)
}

// GetEmployee godoc
// @Summary Get an employee
// @Tags employees
// @Produce json
// @Security Bearer
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid employee ID")
	}

	resp, err := h.employeeService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get employee")
	}
	return c.JSON(resp)
}

// EditEmployee godoc
// @Summary Edit an employee
// @Description Change name, email, role and status. Managers cannot change their own status.
// @Tags employees
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Employee ID"
// @Param request body dto.EditEmployeeRequest true "Employee"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /employees/{id} [put]
func (h *EmployeeHandler) EditEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid employee ID")
	}
	actor, err := currentEmployee(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	var req dto.EditEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.employeeService.Edit(c.Context(), actor, id, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to edit employee")
	}
	return c.JSON(resp)
}

// ResetPassword godoc
// @Summary Set an employee password
// @Description Managers set a new password for any employee
// @Tags employees
// @Accept json
// @Security Bearer
// @Param id path string true "Employee ID"
// @Param request body dto.ChangePasswordRequest true "New password"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /employees/{id}/password [put]
func (h *EmployeeHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid employee ID")
	}
	return h.changePassword(c, id)
}

// ChangeOwnPassword godoc
// @Summary Change my password
// @Description The current password is required
// @Tags employees
// @Accept json
// @Security Bearer
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /me/password [put]
func (h *EmployeeHandler) ChangeOwnPassword(c *fiber.Ctx) error {
	self, err := currentEmployee(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}
	return h.changePassword(c, self)
}

func (h *EmployeeHandler) changePassword(c *fiber.Ctx, target uuid.UUID) error {
	actor, err := currentEmployee(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	if err := h.employeeService.ChangePassword(c.Context(), actor, target, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to change password")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRoles godoc
// @Summary List job roles
// @Tags roles
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.RoleResponse
// @Router /roles [get]
func (h *EmployeeHandler) ListRoles(c *fiber.Ctx) error {
	resp, err := h.roleService.List(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list roles")
	}
	return c.JSON(resp)
}

// CreateRole godoc
// @Summary Create a job role
// @Description Names are unique ignoring case and accents. Gerente is reserved.
// @Tags roles
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.RoleRequest true "Role"
// @Success 201 {object} dto.RoleResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /roles [post]
func (h *EmployeeHandler) CreateRole(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.roleService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create role")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// EditRole godoc
// @Summary Rename a job role
// @Description Employees holding the role follow the new name
// @Tags roles
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Role ID"
// @Param request body dto.RoleRequest true "Role"
// @Success 200 {object} dto.RoleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /roles/{id} [put]
func (h *EmployeeHandler) EditRole(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid role ID")
	}

	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.roleService.Edit(c.Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to edit role")
	}
	return c.JSON(resp)
}

// DeleteRole godoc
// @Summary Delete a job role
// @Description Only roles no employee holds can be deleted
// @Tags roles
// @Security Bearer
// @Param id path string true "Role ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /roles/{id} [delete]
func (h *EmployeeHandler) DeleteRole(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid role ID")
	}

	if err := h.roleService.Delete(c.Context(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete role")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
