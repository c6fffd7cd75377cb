package report

import (
	"github.com/shopspring/decimal"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

// SpreadsheetExporter escribe los datos de reportes como libros XLSX.
type SpreadsheetExporter interface {
	InventoryWorkbook(rows []dto.InventoryRow) ([]byte, error)
	SalesWorkbook(sales []*entity.Sale, total decimal.Decimal) ([]byte, error)
}
