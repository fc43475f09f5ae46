package handlers

import (
	"oficina-api/internal/dto"
	"oficina-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssistantHandler exposes the query tools used by the chat assistant.
type AssistantHandler struct {
	assistantService *service.AssistantService
	logger           *zap.Logger
}

func NewAssistantHandler(assistantService *service.AssistantService, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		logger:           logger,
	}
}

// ResolvePeriod godoc
// @Summary Resolve a period expression
// @Description Turn Portuguese text such as "mês passado" into a date range
// @Tags assistant
// @Produce json
// @Security Bearer
// @Param text query string true "Period text"
// @Success 200 {object} dto.PeriodResponse
// @Router /assistant/period [get]
func (h *AssistantHandler) ResolvePeriod(c *fiber.Ctx) error {
	return c.JSON(h.assistantService.ResolvePeriod(c.Query("text")))
}

// SearchQuotes godoc
// @Summary Search quotes
// @Description Filter quotes by client, vehicle, value and period text
// @Tags assistant
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.QuoteSearchRequest true "Filters"
// @Success 200 {object} dto.QuoteSearchResponse
// @Failure 400 {object} map[string]string
// @Router /assistant/quotes [post]
func (h *AssistantHandler) SearchQuotes(c *fiber.Ctx) error {
	var req dto.QuoteSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.assistantService.SearchQuotes(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to search quotes")
	}

	return c.JSON(resp)
}

// SearchTransactions godoc
// @Summary Search transactions
// @Description Filter transactions by name, category, type and period text
// @Tags assistant
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.TransactionSearchRequest true "Filters"
// @Success 200 {object} dto.TransactionSearchResponse
// @Failure 400 {object} map[string]string
// @Router /assistant/transactions [post]
func (h *AssistantHandler) SearchTransactions(c *fiber.Ctx) error {
	var req dto.TransactionSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.assistantService.SearchTransactions(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to search transactions")
	}

	return c.JSON(resp)
}

// Chat godoc
// @Summary Ask the assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.ChatRequest true "Question"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /assistant/chat [post]
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.assistantService.Chat(c.Context(), req.Question)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to process question")
	}

	return c.JSON(resp)
}
