package handlers

import (
	"fmt"

	"oficina-api/internal/dto"
	"oficina-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// CreateQuote godoc
// @Summary Create a quote
// @Description Create a quote with its services. A zero total uses the sum of the services.
// @Tags quotes
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateQuoteRequest true "Quote"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *fiber.Ctx) error {
	var req dto.CreateQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.quoteService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create quote")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListQuotes godoc
// @Summary List quotes
// @Description Ten quotes per page, newest first
// @Tags quotes
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.QuoteListResponse
// @Router /quotes [get]
func (h *QuoteHandler) ListQuotes(c *fiber.Ctx) error {
	resp, err := h.quoteService.List(c.Context(), c.QueryInt("page", 1))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list quotes")
	}

	return c.JSON(resp)
}

// GetQuote godoc
// @Summary Get a quote
// @Tags quotes
// @Produce json
// @Security Bearer
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} map[string]string
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid quote ID")
	}

	resp, err := h.quoteService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get quote")
	}

	return c.JSON(resp)
}

// DeleteQuote godoc
// @Summary Delete a quote
// @Tags quotes
// @Security Bearer
// @Param id path string true "Quote ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid quote ID")
	}

	if err := h.quoteService.Delete(c.Context(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete quote")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// EditQuote godoc
// @Summary Edit a quote
// @Description Replace the quote fields, add or change services and remove services_to_delete in one transaction. The total becomes the sum of the remaining services.
// @Tags quotes
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Quote ID"
// @Param request body dto.EditQuoteRequest true "Quote changes"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quotes/{id} [put]
func (h *QuoteHandler) EditQuote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid quote ID")
	}

	var req dto.EditQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.quoteService.Edit(c.Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to edit quote")
	}

	return c.JSON(resp)
}

// ListServices godoc
// @Summary List the services of a quote
// @Tags quotes
// @Produce json
// @Security Bearer
// @Param id path string true "Quote ID"
// @Success 200 {array} dto.ServiceResponse
// @Failure 404 {object} map[string]string
// @Router /quotes/{id}/services [get]
func (h *QuoteHandler) ListServices(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid quote ID")
	}

	resp, err := h.quoteService.Services(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list quote services")
	}

	return c.JSON(resp)
}

// QuotePDF godoc
// @Summary Download a quote as PDF
// @Description Customer copy with letterhead, services, totals and authorization block
// @Tags quotes
// @Produce application/pdf
// @Security Bearer
// @Param id path string true "Quote ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Router /quotes/{id}/pdf [get]
func (h *QuoteHandler) QuotePDF(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid quote ID")
	}

	data, err := h.quoteService.PDF(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to render quote")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "orcamento-"+id.String()[:8]+".pdf"))
	return c.Send(data)
}
