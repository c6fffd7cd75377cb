package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventorySummary agrega la tabla de productos.
type InventorySummary struct {
	ProductCount  int
	TotalQuantity int
	LowStockCount int
	StockValue    decimal.Decimal // Σ cantidad × precio
}

// ReportRepository consultas agregadas de solo lectura.
type ReportRepository interface {
	InventorySummary(ctx context.Context, lowStockThreshold int) (InventorySummary, error)
	// SalesTotal suma grand_total de las ventas creadas en [from, to).
	SalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
