// Package report contiene los reportes de solo lectura (dashboard, inventario, stock bajo
// y ventas) y sus exportaciones XLSX.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

const dashboardRecentSales = 5

// ReportUseCase arma los reportes. Todo se recalcula en cada llamada.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	exporter    SpreadsheetExporter
	threshold   int
	loc         *time.Location
}

// NewReportUseCase crea el caso de uso. threshold <= 0 usa entity.DefaultLowStockThreshold.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	exporter SpreadsheetExporter,
	threshold int,
) *ReportUseCase {
	if threshold <= 0 {
		threshold = entity.DefaultLowStockThreshold
	}
	return &ReportUseCase{
		reportRepo:  reportRepo,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		exporter:    exporter,
		threshold:   threshold,
		loc:         time.Local,
	}
}

// Threshold es el umbral de stock bajo en uso.
func (uc *ReportUseCase) Threshold() int { return uc.threshold }

// Location es la zona horaria de los filtros por día.
func (uc *ReportUseCase) Location() *time.Location { return uc.loc }

// Dashboard corre sus tres consultas en paralelo:
//  1. InventorySummary     → conteos y stock bajo
//  2. SalesTotal(today)    → TodaySales
//  3. List(limit 5)        → RecentSales
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	now := time.Now().In(uc.loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	todayEnd := todayStart.AddDate(0, 0, 1)

	type summaryResult struct {
		s   repository.InventorySummary
		err error
	}
	type totalResult struct {
		total decimal.Decimal
		err   error
	}
	type recentResult struct {
		sales []*entity.Sale
		err   error
	}

	summaryCh := make(chan summaryResult, 1)
	totalCh := make(chan totalResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		s, err := uc.reportRepo.InventorySummary(ctx, uc.threshold)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		t, err := uc.reportRepo.SalesTotal(ctx, todayStart, todayEnd)
		totalCh <- totalResult{t, err}
	}()
	go func() {
		s, err := uc.saleRepo.List(ctx, repository.SaleFilter{Limit: dashboardRecentSales})
		recentCh <- recentResult{s, err}
	}()

	summary := <-summaryCh
	today := <-totalCh
	recent := <-recentCh

	if summary.err != nil {
		return nil, fmt.Errorf("dashboard: inventory summary: %w", summary.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: today sales: %w", today.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: recent sales: %w", recent.err)
	}

	return &dto.DashboardDTO{
		ProductCount:      summary.s.ProductCount,
		TotalQuantity:     summary.s.TotalQuantity,
		TodaySales:        today.total,
		LowStockCount:     summary.s.LowStockCount,
		LowStockThreshold: uc.threshold,
		RecentSales:       recent.sales,
	}, nil
}

// Inventory lista todos los productos con precio final y valor de stock.
func (uc *ReportUseCase) Inventory(ctx context.Context) (*dto.InventoryReportDTO, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryReportDTO{Rows: make([]dto.InventoryRow, 0, len(products)), TotalValue: decimal.Zero}
	for _, p := range products {
		row := dto.InventoryRow{
			Product:    p,
			FinalPrice: p.FinalPrice(),
			StockValue: p.StockValue(),
			LowStock:   p.IsLowStock(uc.threshold),
		}
		out.Rows = append(out.Rows, row)
		out.TotalQuantity += p.Quantity
		out.TotalValue = out.TotalValue.Add(row.StockValue)
	}
	return out, nil
}

// LowStock lista los productos bajo el umbral, menor cantidad primero.
func (uc *ReportUseCase) LowStock(ctx context.Context) (*dto.LowStockReportDTO, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{BelowQuantity: uc.threshold})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].Quantity < products[j].Quantity })
	return &dto.LowStockReportDTO{Threshold: uc.threshold, Products: products}, nil
}

// Sales lista las ventas del rango del filtro con su Σ grand_total.
func (uc *ReportUseCase) Sales(ctx context.Context, in dto.SaleListFilter) (*dto.SalesReportDTO, error) {
	filter, err := ParseSaleFilter(in, uc.loc)
	if err != nil {
		return nil, err
	}
	list, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, s := range list {
		total = total.Add(s.GrandTotal)
	}
	return &dto.SalesReportDTO{Filter: in, Sales: list, Total: total}, nil
}

// ExportInventory genera el reporte de inventario como inventory_report.xlsx.
func (uc *ReportUseCase) ExportInventory(ctx context.Context) (*dto.Spreadsheet, error) {
	report, err := uc.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	content, err := uc.exporter.InventoryWorkbook(report.Rows)
	if err != nil {
		return nil, fmt.Errorf("export inventory: %w", err)
	}
	return &dto.Spreadsheet{Filename: "inventory_report.xlsx", Content: content}, nil
}

// ExportSales genera el reporte de ventas filtrado como sales_report.xlsx.
func (uc *ReportUseCase) ExportSales(ctx context.Context, in dto.SaleListFilter) (*dto.Spreadsheet, error) {
	report, err := uc.Sales(ctx, in)
	if err != nil {
		return nil, err
	}
	content, err := uc.exporter.SalesWorkbook(report.Sales, report.Total)
	if err != nil {
		return nil, fmt.Errorf("export sales: %w", err)
	}
	return &dto.Spreadsheet{Filename: "sales_report.xlsx", Content: content}, nil
}
