package repository

import (
	"context"
	"time"

	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

// SaleFilter acota el listado de ventas por fecha de creación. From inclusivo, To exclusivo.
type SaleFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int // 0 = sin límite
}

// SaleRepository puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create guarda la cabecera y completa sale.Number.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	// List devuelve las ventas de la más nueva a la más vieja.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
