package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/application/report"
)

const xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler sirve los reportes y sus exportaciones XLSX (view_reports).
type ReportHandler struct {
	uc    *report.ReportUseCase
	pages *pages
}

// NewReportHandler crea el handler.
func NewReportHandler(uc *report.ReportUseCase, p *pages) *ReportHandler {
	return &ReportHandler{uc: uc, pages: p}
}

// Inventory GET /reports/inventory
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.Inventory(c.UserContext())
	if err != nil {
		return err
	}
	return h.pages.render(c, "reports/inventory", fiber.Map{
		"Title":     "Inventory report",
		"Report":    out,
		"Threshold": h.uc.Threshold(),
	})
}

// ExportInventory GET /reports/inventory/export
func (h *ReportHandler) ExportInventory(c *fiber.Ctx) error {
	file, err := h.uc.ExportInventory(c.UserContext())
	if err != nil {
		return err
	}
	return sendSpreadsheet(c, file)
}

// Sales GET /reports/sales?start_date=&end_date=
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var in dto.SaleListFilter
	if err := c.QueryParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	out, err := h.uc.Sales(c.UserContext(), in)
	if fieldErrors, ok := validationFields(err); ok {
		c.Status(fiber.StatusUnprocessableEntity)
		return h.pages.render(c, "reports/sales", fiber.Map{
			"Title":  "Sales report",
			"Report": &dto.SalesReportDTO{Filter: in},
			"Errors": fieldErrors,
		})
	}
	if err != nil {
		return err
	}
	return h.pages.render(c, "reports/sales", fiber.Map{
		"Title":  "Sales report",
		"Report": out,
	})
}

// ExportSales GET /reports/sales/export, mismo filtro que Sales.
func (h *ReportHandler) ExportSales(c *fiber.Ctx) error {
	var in dto.SaleListFilter
	if err := c.QueryParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	file, err := h.uc.ExportSales(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendSpreadsheet(c, file)
}

// LowStock GET /reports/low-stock
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return err
	}
	return h.pages.render(c, "reports/low_stock", fiber.Map{
		"Title":  "Low stock",
		"Report": out,
	})
}

func sendSpreadsheet(c *fiber.Ctx, file *dto.Spreadsheet) error {
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, xlsxMimeType)
	return c.Send(file.Content)
}
