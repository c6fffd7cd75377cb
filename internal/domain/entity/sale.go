package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Sale es la cabecera de un checkout completado. Los totales se escriben una vez al crearla.
type Sale struct {
	ID             string
	Number         int64 // secuencial, lo asigna el almacenamiento
	CustomerName   string
	TotalAmount    decimal.Decimal // Σ totales de línea
	DiscountAmount decimal.Decimal
	GrandTotal     decimal.Decimal // TotalAmount − DiscountAmount
	CreatedBy      string
	CreatedAt      time.Time
	Items          []*SaleItem // se carga bajo demanda
}

// Label es el identificador visible, p. ej. "Sale #12 - Jane".
func (s *Sale) Label() string {
	if s.CustomerName == "" {
		return fmt.Sprintf("Sale #%d", s.Number)
	}
	return fmt.Sprintf("Sale #%d - %s", s.Number, s.CustomerName)
}

// ApplyTotals calcula TotalAmount desde las líneas y GrandTotal = TotalAmount − discount.
func (s *Sale) ApplyTotals(items []*SaleItem, discount decimal.Decimal) {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	s.TotalAmount = total
	s.DiscountAmount = discount
	s.GrandTotal = total.Sub(discount)
}

// SaleItem es una línea de venta. Se borra junto con su venta.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // copia al momento de la venta
	Quantity    int
	PriceAtSale decimal.Decimal
	LineTotal   decimal.Decimal
}

// NewSaleItem crea una línea con LineTotal = quantity × price.
func NewSaleItem(id, saleID, productID, productName string, quantity int, price decimal.Decimal) *SaleItem {
	return &SaleItem{
		ID:          id,
		SaleID:      saleID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		PriceAtSale: price,
		LineTotal:   price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
