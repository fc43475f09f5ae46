package handlers

import (
	"oficina-api/internal/dto"
	"oficina-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
	categoryService    *service.CategoryService
	logger             *zap.Logger
}

func NewTransactionHandler(transactionService *service.TransactionService, categoryService *service.CategoryService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		categoryService:    categoryService,
		logger:             logger,
	}
}

// CreateTransaction godoc
// @Summary Register a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.SaveTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req dto.SaveTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.transactionService.Save(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to save transaction")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListTransactions godoc
// @Summary List transactions
// @Description Ten transactions per page filtered by type, categories and date range
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param type query string false "all, income or expense"
// @Param category query string false "Comma separated category IDs"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.TransactionListResponse
// @Failure 400 {object} map[string]string
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	var q dto.TransactionListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	resp, err := h.transactionService.List(c.Context(), &q)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list transactions")
	}

	return c.JSON(resp)
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid transaction ID")
	}

	resp, err := h.transactionService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get transaction")
	}

	return c.JSON(resp)
}

// UpdateTransaction godoc
// @Summary Edit a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Transaction ID"
// @Param request body dto.SaveTransactionRequest true "Transaction"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid transaction ID")
	}

	var req dto.SaveTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.transactionService.Edit(c.Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update transaction")
	}

	return c.JSON(resp)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Security Bearer
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid transaction ID")
	}

	if err := h.transactionService.Delete(c.Context(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete transaction")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories godoc
// @Summary List transaction categories
// @Tags categories
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (h *TransactionHandler) ListCategories(c *fiber.Ctx) error {
	resp, err := h.categoryService.List(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list categories")
	}

	return c.JSON(resp)
}

// CreateCategory godoc
// @Summary Create a transaction category
// @Description Managers only
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /categories [post]
func (h *TransactionHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.categoryService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create category")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateCategory godoc
// @Summary Rename a transaction category
// @Description Managers only
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Category ID"
// @Param request body dto.CategoryRequest true "Category"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [put]
func (h *TransactionHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.categoryService.Update(c.Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update category")
	}

	return c.JSON(resp)
}

// DeleteCategory godoc
// @Summary Delete a transaction category
// @Description Managers only. Transactions keep existing without a category.
// @Tags categories
// @Security Bearer
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [delete]
func (h *TransactionHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	if err := h.categoryService.Delete(c.Context(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete category")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
