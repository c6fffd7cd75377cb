package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

func TestNewSaleItem_LineTotalIsExact(t *testing.T) {
	it := entity.NewSaleItem("i1", "s1", "p1", "Shirt", 3, decimal.RequireFromString("90.00"))
	assert.True(t, it.LineTotal.Equal(decimal.RequireFromString("270.00")))

	// 0.1 × 3 no debe desviarse como lo haría float64.
	it = entity.NewSaleItem("i2", "s1", "p1", "Pin", 3, decimal.RequireFromString("0.10"))
	assert.Equal(t, "0.3", it.LineTotal.String())
}

func TestSale_ApplyTotals(t *testing.T) {
	items := []*entity.SaleItem{
		entity.NewSaleItem("i1", "s1", "a", "A", 3, decimal.RequireFromString("25.00")),
		entity.NewSaleItem("i2", "s1", "b", "B", 2, decimal.RequireFromString("10.00")),
	}
	var s entity.Sale
	s.ApplyTotals(items, decimal.Zero)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("95.00")))
	assert.True(t, s.GrandTotal.Equal(decimal.RequireFromString("95.00")))

	s.ApplyTotals(items, decimal.RequireFromString("5.00"))
	assert.True(t, s.GrandTotal.Equal(decimal.RequireFromString("90.00")))
}

func TestSale_Label(t *testing.T) {
	s := entity.Sale{Number: 7, CustomerName: "John Doe"}
	assert.Equal(t, "Sale #7 - John Doe", s.Label())
	s.CustomerName = ""
	assert.Equal(t, "Sale #7", s.Label())
}
