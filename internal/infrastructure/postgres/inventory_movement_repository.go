package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementa el registro de movimientos en PostgreSQL (pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository crea el adaptador. Recibe un pool o una tx.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create agrega un movimiento.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, direction, quantity, reason, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Direction, m.Quantity, m.Reason,
		nullable(m.Reference), nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct devuelve los movimientos del producto, el más nuevo primero.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, direction, quantity, reason, reference, created_by, created_at
		FROM inventory_movements WHERE product_id = $1 ORDER BY created_at DESC, id`
	args := []any{productID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var reference, createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Direction, &m.Quantity, &m.Reason,
			&reference, &createdBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Reference = deref(reference)
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
