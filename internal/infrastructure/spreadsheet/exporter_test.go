package spreadsheet_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/infrastructure/spreadsheet"
)

func readRows(t *testing.T, content []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{sheet}, f.GetSheetList())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestInventoryWorkbook_HeaderAndRows(t *testing.T) {
	p := &entity.Product{
		ID: "p1", Name: "Kurta", CategoryName: "Clothing", Size: "M", Color: "Red",
		Price: decimal.RequireFromString("50.00"), DiscountPercent: 20, Quantity: 7,
	}
	content, err := spreadsheet.NewExporter().InventoryWorkbook([]dto.InventoryRow{{Product: p}})
	require.NoError(t, err)

	rows := readRows(t, content, spreadsheet.InventorySheet)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Category", "Size", "Color", "Price", "Discount", "Quantity"}, rows[0])
	assert.Equal(t, []string{"p1", "Kurta", "Clothing", "M", "Red", "50", "20", "7"}, rows[1])
	assert.Equal(t, "TOTAL", rows[2][1])
	assert.Equal(t, "7", rows[2][7])
}

func TestSalesWorkbook_HeaderAndTotal(t *testing.T) {
	at := time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC)
	sales := []*entity.Sale{
		{Number: 2, CustomerName: "Jane", GrandTotal: decimal.RequireFromString("90.5"), CreatedAt: at},
		{Number: 1, GrandTotal: decimal.RequireFromString("10"), CreatedAt: at},
	}
	content, err := spreadsheet.NewExporter().SalesWorkbook(sales, decimal.RequireFromString("100.5"))
	require.NoError(t, err)

	rows := readRows(t, content, spreadsheet.SalesSheet)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Sale ID", "Date", "Customer", "Grand Total"}, rows[0])
	assert.Equal(t, []string{"2", "2025-03-04 15:30", "Jane", "90.5"}, rows[1])
	assert.Equal(t, "TOTAL", rows[3][2])
	assert.Equal(t, "100.5", rows[3][3])
}

func TestSalesWorkbook_Empty(t *testing.T) {
	content, err := spreadsheet.NewExporter().SalesWorkbook(nil, decimal.Zero)
	require.NoError(t, err)
	rows := readRows(t, content, spreadsheet.SalesSheet)
	require.Len(t, rows, 2)
	assert.Equal(t, spreadsheet.SalesHeader, rows[0])
}
