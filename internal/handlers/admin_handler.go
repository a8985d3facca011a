package handlers

import (
	"log"

	"computershop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the back-office dashboard.
type AdminHandler struct {
	reports *services.ReportService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(reports *services.ReportService) *AdminHandler {
	return &AdminHandler{reports: reports}
}

// RegisterRoutes registers the dashboard route. Must be mounted behind
// AuthRequired + AdminRequired.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleDashboard)
}

// HandleDashboard returns the aggregated store numbers.
func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	stats, err := h.reports.Dashboard(limit)
	if err != nil {
		log.Printf("Error building dashboard: %v", err)
		return fail(c, err, "Could not build dashboard")
	}
	return c.JSON(stats)
}
