package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository crea el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InventorySummary cuenta productos, unidades y filas con stock bajo, y suma cantidad × precio.
func (r *ReportRepo) InventorySummary(ctx context.Context, lowStockThreshold int) (repository.InventorySummary, error) {
	const query = `
	SELECT
	    COUNT(*)                                          AS product_count,
	    COALESCE(SUM(quantity), 0)                        AS total_quantity,
	    COUNT(*) FILTER (WHERE quantity < $1)             AS low_stock_count,
	    COALESCE(SUM(quantity * price), 0)                AS stock_value
	FROM products`

	var out repository.InventorySummary
	var productCount, totalQuantity, lowStock int64
	var value decimal.Decimal
	if err := r.q.QueryRow(ctx, query, lowStockThreshold).Scan(&productCount, &totalQuantity, &lowStock, &value); err != nil {
		return out, fmt.Errorf("report.InventorySummary: %w", err)
	}
	out.ProductCount = int(productCount)
	out.TotalQuantity = int(totalQuantity)
	out.LowStockCount = int(lowStock)
	out.StockValue = value
	return out, nil
}

// SalesTotal suma grand_total de las ventas creadas en [from, to).
func (r *ReportRepo) SalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(grand_total), 0)
	FROM sales
	WHERE created_at >= $1 AND created_at < $2`

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("report.SalesTotal: %w", err)
	}
	return total, nil
}
