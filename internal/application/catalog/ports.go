package catalog

import (
	"context"

	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios ligados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
