package dto

import (
	"strconv"

	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

// ProductForm es el formulario tal como llega. Los números quedan como string para
// volver a pintar un envío inválido sin cambios.
type ProductForm struct {
	Name            string `form:"name"`
	CategoryID      string `form:"category"`
	NewCategory     string `form:"new_category"`
	Size            string `form:"size"`
	Color           string `form:"color"`
	Price           string `form:"price"`
	Quantity        string `form:"quantity"`
	Barcode         string `form:"barcode"`
	DiscountPercent string `form:"discount_percent"`
}

// ProductFormFrom precarga el formulario de edición.
func ProductFormFrom(p *entity.Product) ProductForm {
	return ProductForm{
		Name:            p.Name,
		CategoryID:      p.CategoryID,
		Size:            p.Size,
		Color:           p.Color,
		Price:           p.Price.StringFixed(2),
		Quantity:        strconv.Itoa(p.Quantity),
		Barcode:         p.Barcode,
		DiscountPercent: strconv.Itoa(p.DiscountPercent),
	}
}

// ProductHistory es un producto con sus movimientos de stock, el más nuevo primero.
type ProductHistory struct {
	Product   *entity.Product
	Movements []*entity.InventoryMovement
}
