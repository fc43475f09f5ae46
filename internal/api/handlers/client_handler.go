package handlers

import (
	"oficina-api/internal/dto"
	"oficina-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// CreateClient godoc
// @Summary Register a client
// @Tags clients
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.ClientRequest true "Client"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.clientService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create client")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListClients godoc
// @Summary List clients
// @Description Ten clients per page ordered by name. search ignores case and accents.
// @Tags clients
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param search query string false "Part of the name"
// @Success 200 {object} dto.ClientListResponse
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	resp, err := h.clientService.List(c.Context(), c.QueryInt("page", 1), c.Query("search"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list clients")
	}
	return c.JSON(resp)
}

// GetClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Security Bearer
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} map[string]string
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid client ID")
	}

	resp, err := h.clientService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get client")
	}
	return c.JSON(resp)
}

// EditClient godoc
// @Summary Edit a client
// @Tags clients
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Client ID"
// @Param request body dto.ClientRequest true "Client"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clients/{id} [put]
func (h *ClientHandler) EditClient(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid client ID")
	}

	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.clientService.Edit(c.Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to edit client")
	}
	return c.JSON(resp)
}

// CreateVehicle godoc
// @Summary Register a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.VehicleRequest true "Vehicle"
// @Success 201 {object} dto.VehicleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles [post]
func (h *ClientHandler) CreateVehicle(c *fiber.Ctx) error {
	var req dto.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.clientService.CreateVehicle(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create vehicle")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListVehicles godoc
// @Summary List vehicles
// @Description Ten vehicles per page, newest first
// @Tags vehicles
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param model query string false "Part of the model"
// @Param license_plate query string false "Part of the plate"
// @Param client_id query string false "Owner"
// @Success 200 {object} dto.VehicleListResponse
// @Router /vehicles [get]
func (h *ClientHandler) ListVehicles(c *fiber.Ctx) error {
	resp, err := h.clientService.ListVehicles(c.Context(), dto.VehicleQuery{
		Model:        c.Query("model"),
		LicensePlate: c.Query("license_plate"),
		ClientID:     c.Query("client_id"),
		Page:         c.QueryInt("page", 1),
	})
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list vehicles")
	}
	return c.JSON(resp)
}

// GetVehicle godoc
// @Summary Get a vehicle
// @Tags vehicles
// @Produce json
// @Security Bearer
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [get]
func (h *ClientHandler) GetVehicle(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid vehicle ID")
	}

	resp, err := h.clientService.GetVehicle(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get vehicle")
	}
	return c.JSON(resp)
}

// EditVehicle godoc
// @Summary Edit a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Vehicle ID"
// @Param request body dto.VehicleRequest true "Vehicle"
// @Success 200 {object} dto.VehicleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [put]
func (h *ClientHandler) EditVehicle(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid vehicle ID")
	}

	var req dto.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.clientService.EditVehicle(c.Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to edit vehicle")
	}
	return c.JSON(resp)
}
