package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

func TestProduct_FinalPrice(t *testing.T) {
	cases := []struct {
		price    string
		discount int
		want     string
	}{
		{"50.00", 0, "50.00"},
		{"50.00", 20, "40.00"},
		{"100.00", 10, "90.00"},
		{"25.00", 100, "0"},
		{"19.99", 50, "10.00"}, // 9.995 redondea alejándose de cero
	}
	for _, tc := range cases {
		p := entity.Product{Price: decimal.RequireFromString(tc.price), DiscountPercent: tc.discount}
		assert.True(t, p.FinalPrice().Equal(decimal.RequireFromString(tc.want)),
			"price %s discount %d: got %s", tc.price, tc.discount, p.FinalPrice())
	}
}

func TestProduct_FinalPriceWithoutDiscountIsPrice(t *testing.T) {
	p := entity.Product{Price: decimal.RequireFromString("12.345")}
	assert.True(t, p.FinalPrice().Equal(p.Price))
}

func TestProduct_LowStockAndValue(t *testing.T) {
	p := entity.Product{Price: decimal.RequireFromString("2.50"), Quantity: 9}
	assert.True(t, p.IsLowStock(entity.DefaultLowStockThreshold))
	p.Quantity = 10
	assert.False(t, p.IsLowStock(entity.DefaultLowStockThreshold))
	assert.True(t, p.StockValue().Equal(decimal.RequireFromString("25.00")))
}

func TestProduct_DisplayName(t *testing.T) {
	p := entity.Product{Name: "New Product", Size: "L", Color: "Blue"}
	assert.Equal(t, "New Product (L, Blue)", p.DisplayName())
	p.Color = ""
	assert.Equal(t, "New Product (L)", p.DisplayName())
	p.Size = ""
	assert.Equal(t, "New Product", p.DisplayName())
}
