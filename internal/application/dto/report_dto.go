package dto

import (
	"github.com/shopspring/decimal"

	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

// DashboardDTO resumen de la página de inicio.
type DashboardDTO struct {
	ProductCount      int
	TotalQuantity     int
	TodaySales        decimal.Decimal // Σ grand_total de las ventas de hoy
	LowStockCount     int
	LowStockThreshold int
	RecentSales       []*entity.Sale
}

// InventoryRow es una fila de producto del reporte de inventario.
type InventoryRow struct {
	Product    *entity.Product
	FinalPrice decimal.Decimal
	StockValue decimal.Decimal
	LowStock   bool
}

// InventoryReportDTO lista todos los productos con totales.
type InventoryReportDTO struct {
	Rows          []InventoryRow
	TotalQuantity int
	TotalValue    decimal.Decimal
}

// LowStockReportDTO lista los productos bajo el umbral, menor cantidad primero.
type LowStockReportDTO struct {
	Threshold int
	Products  []*entity.Product
}

// SalesReportDTO lista las ventas del rango pedido.
type SalesReportDTO struct {
	Filter SaleListFilter
	Sales  []*entity.Sale
	Total  decimal.Decimal
}

// Spreadsheet es un libro XLSX generado.
type Spreadsheet struct {
	Filename string
	Content  []byte
}
