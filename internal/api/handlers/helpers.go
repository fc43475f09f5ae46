package handlers

import (
	"errors"

	"oficina-api/internal/service"
	"oficina-api/pkg/money"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errInvalidID = errors.New("invalid id")

// validationErrors answer with 400 and their own message.
var validationErrors = []error{
	service.ErrInvalidTransactionType,
	service.ErrEmptyQuestion,
	service.ErrClientNameRequired,
	service.ErrInvalidServiceItem,
	service.ErrNegativeQuoteAmount,
	service.ErrNameRequired,
	service.ErrNegativeAmount,
	service.ErrInvalidDate,
	service.ErrInvalidDateRange,
	service.ErrInvalidCategory,
	service.ErrInvalidReportType,
	service.ErrInvalidEmployee,
	service.ErrWeakPassword,
	service.ErrInvalidEmployeeState,
	service.ErrUnknownRole,
	service.ErrRoleNameRequired,
	service.ErrReservedRole,
	service.ErrVehicleModel,
	service.ErrInvalidClientID,
	money.ErrInvalidAmount,
}

var notFoundErrors = []error{
	service.ErrQuoteNotFound,
	service.ErrTransactionNotFound,
	service.ErrCategoryNotFound,
	service.ErrEmployeeNotFound,
	service.ErrServiceNotFound,
	service.ErrRoleNotFound,
	service.ErrClientNotFound,
	service.ErrVehicleNotFound,
}

// conflictErrors answer with 409.
var conflictErrors = []error{
	service.ErrEmployeeExists,
	service.ErrRoleExists,
	service.ErrRoleInUse,
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

// currentEmployee reads the id the auth middleware stored for the caller.
func currentEmployee(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("userID").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

// invalidBody answers a body that failed to decode. Unreadable amounts get
// their own message.
func invalidBody(c *fiber.Ctx, err error) error {
	if errors.Is(err, money.ErrInvalidAmount) {
		return badRequest(c, money.ErrInvalidAmount.Error())
	}
	return badRequest(c, "Invalid request body")
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

// respondError maps service errors to HTTP statuses. Unknown errors are
// logged and hidden behind fallback.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return badRequest(c, target.Error())
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": target.Error(),
			})
		}
	}

	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": target.Error(),
			})
		}
	}

	switch {
	case errors.Is(err, service.ErrSelfStatusChange), errors.Is(err, service.ErrEmployeeInactive):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	case errors.Is(err, service.ErrAssistantUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Assistant is not configured",
		})
	}

	logger.Error(fallback, zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}
