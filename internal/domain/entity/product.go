package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold es el nivel bajo el cual un producto se reporta con stock bajo.
const DefaultLowStockThreshold = 10

var hundred = decimal.NewFromInt(100)

// Product es un ítem vendible del catálogo. Quantity son las unidades en mano y nunca es negativa.
type Product struct {
	ID              string
	CategoryID      string
	CategoryName    string // lo llenan los joins, no se persiste
	Name            string
	Size            string
	Color           string
	Price           decimal.Decimal // precio base de venta
	Quantity        int
	Barcode         string // vacío si el producto no tiene código de barras
	DiscountPercent int    // 0..100
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FinalPrice aplica el descuento del producto: price × (1 − discount/100), redondeado a centavos.
func (p *Product) FinalPrice() decimal.Decimal {
	if p.DiscountPercent == 0 {
		return p.Price
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(p.DiscountPercent))).Div(hundred)
	return p.Price.Mul(factor).Round(2)
}

// StockValue es cantidad × precio base.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// IsLowStock indica si la cantidad está bajo threshold.
func (p *Product) IsLowStock(threshold int) bool {
	return p.Quantity < threshold
}

// DisplayName es "Name (Size, Color)" omitiendo las partes vacías.
func (p *Product) DisplayName() string {
	switch {
	case p.Size != "" && p.Color != "":
		return p.Name + " (" + p.Size + ", " + p.Color + ")"
	case p.Size != "":
		return p.Name + " (" + p.Size + ")"
	case p.Color != "":
		return p.Name + " (" + p.Color + ")"
	}
	return p.Name
}
