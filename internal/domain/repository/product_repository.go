package repository

import (
	"context"

	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

// ProductFilter filtra el listado de productos. El valor cero lista todo.
type ProductFilter struct {
	// BelowQuantity deja los productos con cantidad estrictamente menor. Cero lo desactiva.
	BelowQuantity int
}

// ProductRepository puerto de persistencia para productos. GetByID y GetByBarcode
// devuelven (nil, nil) si no hay coincidencia.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// GetForUpdate lee el producto y bloquea su fila hasta que termine la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	// Delete devuelve domain.ErrConflict mientras haya líneas de venta que lo referencian.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
