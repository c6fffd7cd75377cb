package entity

import "time"

// Sentidos de movimiento.
const (
	MovementIN  = "IN"  // entra stock
	MovementOUT = "OUT" // sale stock
)

// Motivos estándar de movimiento.
const (
	ReasonInitialStock = "initial stock"
	ReasonAdjustment   = "manual adjustment"
	ReasonSale         = "sale"
)

// InventoryMovement es un registro de auditoría de un cambio de stock. Quantity siempre es positiva.
type InventoryMovement struct {
	ID        string
	ProductID string
	Direction string
	Quantity  int
	Reason    string
	Reference string // id de venta en los movimientos del checkout
	CreatedBy string
	CreatedAt time.Time
}
