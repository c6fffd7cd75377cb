package repository

import (
	"context"

	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

// InventoryMovementRepository es el registro de auditoría de stock (solo se agrega).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ListByProduct devuelve los movimientos del más nuevo al más viejo. limit <= 0 = sin límite.
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.InventoryMovement, error)
}
