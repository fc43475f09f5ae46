package handlers

import (
	"oficina-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Stats godoc
// @Summary Monthly quote statistics
// @Description Quote count and revenue of the current month against the previous one
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DashboardStatsResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	resp, err := h.dashboardService.Stats(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load dashboard stats")
	}

	return c.JSON(resp)
}

// RecentActivities godoc
// @Summary Recent activity feed
// @Description The five latest quotes and transactions, newest first
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.RecentActivitiesResponse
// @Router /dashboard/activities [get]
func (h *DashboardHandler) RecentActivities(c *fiber.Ctx) error {
	resp, err := h.dashboardService.RecentActivities(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load recent activities")
	}

	return c.JSON(resp)
}
