package handlers

import (
	"fmt"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Summary godoc
// @Summary Financial report
// @Description Totals of the selected transactions. Explicit from/to dates win over period text.
// @Tags reports
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.ReportRequest true "Report filters"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string
// @Router /reports [post]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.reportService.Summary(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to build report")
	}

	return c.JSON(resp)
}

// PDF godoc
// @Summary Financial report as PDF
// @Tags reports
// @Accept json
// @Produce application/pdf
// @Security Bearer
// @Param request body dto.ReportRequest true "Report filters"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /reports/pdf [post]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	data, err := h.reportService.PDF(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to render PDF report")
	}

	return sendAttachment(c, data, "application/pdf", "pdf")
}

// XLSX godoc
// @Summary Financial report as spreadsheet
// @Tags reports
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security Bearer
// @Param request body dto.ReportRequest true "Report filters"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /reports/xlsx [post]
func (h *ReportHandler) XLSX(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	data, err := h.reportService.XLSX(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to render spreadsheet report")
	}

	return sendAttachment(c, data, xlsxContentType, "xlsx")
}

func sendAttachment(c *fiber.Ctx, data []byte, contentType, ext string) error {
	filename := fmt.Sprintf("relatorio-financeiro-%s.%s", time.Now().Format("2006-01-02"), ext)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
