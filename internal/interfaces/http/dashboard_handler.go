package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zeenatstore/zeenat-store/internal/application/report"
)

// DashboardHandler sirve la página de inicio.
type DashboardHandler struct {
	uc    *report.ReportUseCase
	pages *pages
}

// NewDashboardHandler crea el handler.
func NewDashboardHandler(uc *report.ReportUseCase, p *pages) *DashboardHandler {
	return &DashboardHandler{uc: uc, pages: p}
}

// Dashboard GET /
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return h.pages.render(c, "dashboard", fiber.Map{
		"Title":     "Dashboard",
		"Dashboard": out,
	})
}
