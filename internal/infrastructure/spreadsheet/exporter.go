// Package spreadsheet escribe los libros de reportes con excelize.
package spreadsheet

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/application/report"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

var _ report.SpreadsheetExporter = (*Exporter)(nil)

const (
	InventorySheet = "Inventory"
	SalesSheet     = "Sales"
	dateFormat     = "2006-01-02 15:04"
)

// Encabezados, en orden de columna.
var (
	InventoryHeader = []string{"ID", "Name", "Category", "Size", "Color", "Price", "Discount", "Quantity"}
	SalesHeader     = []string{"Sale ID", "Date", "Customer", "Grand Total"}
)

// Exporter implementa report.SpreadsheetExporter.
type Exporter struct{}

// NewExporter crea el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// InventoryWorkbook escribe una fila por producto y una fila TOTAL final con las unidades.
func (e *Exporter) InventoryWorkbook(rows []dto.InventoryRow) ([]byte, error) {
	data := make([][]any, 0, len(rows)+1)
	totalQty := 0
	for _, r := range rows {
		p := r.Product
		data = append(data, []any{
			p.ID, p.Name, p.CategoryName, p.Size, p.Color,
			p.Price.InexactFloat64(), p.DiscountPercent, p.Quantity,
		})
		totalQty += p.Quantity
	}
	data = append(data, []any{"", "TOTAL", "", "", "", "", "", totalQty})
	return writeBook(InventorySheet, InventoryHeader, data)
}

// SalesWorkbook escribe una fila por venta y una fila TOTAL final con Σ grand_total.
func (e *Exporter) SalesWorkbook(sales []*entity.Sale, total decimal.Decimal) ([]byte, error) {
	data := make([][]any, 0, len(sales)+1)
	for _, s := range sales {
		data = append(data, []any{
			s.Number, s.CreatedAt.Format(dateFormat), s.CustomerName, s.GrandTotal.InexactFloat64(),
		})
	}
	data = append(data, []any{"", "", "TOTAL", total.InexactFloat64()})
	return writeBook(SalesSheet, SalesHeader, data)
}

func writeBook(sheet string, header []string, data [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("xlsx: header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("xlsx: header style: %w", err)
	}

	for i, values := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := values
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}
	if len(data) > 0 {
		if err := f.SetRowStyle(sheet, len(data)+1, len(data)+1, bold); err != nil {
			return nil, fmt.Errorf("xlsx: total style: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
