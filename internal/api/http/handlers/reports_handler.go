package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ReportsHandler serves CSV exports.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Tickets GET /reports/tickets.csv.
func (h *ReportsHandler) Tickets(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	filename, body, err := h.service.TicketsCSV(c.Context(), profile)
	if err != nil {
		return err
	}
	return sendCSV(c, filename, body)
}

// DeletedTickets GET /reports/deleted-tickets.csv.
func (h *ReportsHandler) DeletedTickets(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	filename, body, err := h.service.DeletedTicketsCSV(c.Context(), profile)
	if err != nil {
		return err
	}
	return sendCSV(c, filename, body)
}

// Assets GET /reports/assets.csv.
func (h *ReportsHandler) Assets(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	filename, body, err := h.service.AssetSpecsCSV(c.Context(), profile)
	if err != nil {
		return err
	}
	return sendCSV(c, filename, body)
}

// AuditLog GET /reports/audit-log.csv.
func (h *ReportsHandler) AuditLog(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	from := parseTimeQuery(c.Query("from"))
	to := parseTimeQuery(c.Query("to"))
	filename, body, err := h.service.AuditLogCSV(c.Context(), profile, from, to)
	if err != nil {
		return err
	}
	return sendCSV(c, filename, body)
}

func sendCSV(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
