// Package cart implementa el carrito por sesión que vive entre "agregar ítem" y el checkout.
package cart

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Line es un producto del carrito con el precio unitario capturado al agregarlo por primera vez.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Total es Quantity × UnitPrice.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart mapea id de producto a línea. El valor cero es un carrito vacío listo para usar.
type Cart struct {
	lines map[string]Line
}

// New devuelve un carrito vacío.
func New() *Cart { return &Cart{lines: make(map[string]Line)} }

// Add agrega quantity unidades de un producto. Una línea existente conserva su
// precio capturado y suma la cantidad.
func (c *Cart) Add(productID, name string, quantity int, unitPrice decimal.Decimal) error {
	if productID == "" {
		return fmt.Errorf("cart: empty product id")
	}
	if quantity < 1 {
		return fmt.Errorf("cart: quantity must be at least 1, got %d", quantity)
	}
	if c.lines == nil {
		c.lines = make(map[string]Line)
	}
	if l, ok := c.lines[productID]; ok {
		l.Quantity += quantity
		c.lines[productID] = l
		return nil
	}
	c.lines[productID] = Line{ProductID: productID, Name: name, Quantity: quantity, UnitPrice: unitPrice}
	return nil
}

// QuantityOf devuelve la cantidad que ya hay en el carrito para productID.
func (c *Cart) QuantityOf(productID string) int {
	return c.lines[productID].Quantity
}

// Remove quita una línea. Quitar un producto ausente no hace nada.
func (c *Cart) Remove(productID string) {
	delete(c.lines, productID)
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.lines = make(map[string]Line)
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Len es la cantidad de productos distintos.
func (c *Cart) Len() int { return len(c.lines) }

// Lines devuelve las líneas ordenadas por id de producto, el mismo orden de bloqueo del checkout.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Total es la suma de los totales de línea.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// MarshalJSON codifica el carrito como sus líneas ordenadas.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Lines())
}

// UnmarshalJSON restaura un carrito escrito por MarshalJSON. Se descartan las líneas
// con cantidad no positiva.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("cart: decode: %w", err)
	}
	c.lines = make(map[string]Line, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity < 1 {
			continue
		}
		c.lines[l.ProductID] = l
	}
	return nil
}
