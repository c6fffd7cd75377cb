package dto

import (
	"github.com/shopspring/decimal"

	"github.com/zeenatstore/zeenat-store/internal/domain/cart"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

// AddToCartRequest formulario "agregar ítem" de la pantalla de venta. Un Barcode no
// vacío tiene prioridad sobre ProductID.
type AddToCartRequest struct {
	ProductID string `form:"product"`
	Barcode   string `form:"barcode"`
	Quantity  string `form:"quantity"`
}

// CheckoutRequest formulario de checkout.
type CheckoutRequest struct {
	CustomerName   string `form:"customer_name"`
	DiscountAmount string `form:"discount_amount"`
}

// CheckoutInput es lo que necesita el checkout.
type CheckoutInput struct {
	Cart           *cart.Cart
	CustomerName   string
	DiscountAmount decimal.Decimal
	UserID         string
}

// SaleListFilter query string de los listados de ventas.
type SaleListFilter struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD, inclusivo
	EndDate   string `query:"end_date"`   // YYYY-MM-DD, inclusivo
}

// SaleDetail es una venta con sus líneas.
type SaleDetail struct {
	Sale  *entity.Sale
	Items []*entity.SaleItem
}

// InvoiceFile es una factura generada lista para descargar.
type InvoiceFile struct {
	Filename string
	Content  []byte
}
