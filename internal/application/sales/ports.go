package sales

import (
	"context"

	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

// SaleTxRunner ejecuta fn en una transacción con los repositorios que escribe un checkout.
// Cualquier error de fn revierte todo.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// InvoiceGenerator genera una venta como documento PDF.
type InvoiceGenerator interface {
	GenerateInvoice(sale *entity.Sale, items []*entity.SaleItem) ([]byte, error)
}
