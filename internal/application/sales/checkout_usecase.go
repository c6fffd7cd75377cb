package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

const maxCustomerNameLen = 100

// CheckoutUseCase convierte un carrito en una venta persistida.
type CheckoutUseCase struct {
	txRunner SaleTxRunner
}

// NewCheckoutUseCase crea el caso de uso.
func NewCheckoutUseCase(txRunner SaleTxRunner) *CheckoutUseCase {
	return &CheckoutUseCase{txRunner: txRunner}
}

// ParseCheckout valida el formulario de checkout. Un descuento vacío es cero.
func ParseCheckout(in dto.CheckoutRequest) (customer string, discount decimal.Decimal, err error) {
	v := domain.NewValidationError()
	customer = strings.TrimSpace(in.CustomerName)
	if len([]rune(customer)) > maxCustomerNameLen {
		v.Add("customer_name", "Ensure this value has at most 100 characters.")
	}
	discount = decimal.Zero
	if s := strings.TrimSpace(in.DiscountAmount); s != "" {
		d, perr := decimal.NewFromString(s)
		switch {
		case perr != nil:
			v.Add("discount_amount", "Enter a number.")
		case d.IsNegative():
			v.Add("discount_amount", "Discount cannot be negative")
		default:
			discount = d
		}
	}
	return customer, discount, v.OrNil()
}

// Checkout persiste la venta en una sola transacción:
//  1. bloquea cada fila de producto, en orden de id;
//  2. falla la venta entera si un producto ya no existe o no alcanza el stock;
//  3. escribe la cabecera, una línea y un movimiento OUT por línea, y descuenta stock.
//
// Un carrito vacío devuelve domain.ErrEmptyCart sin tocar el almacenamiento.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, in dto.CheckoutInput) (*entity.Sale, error) {
	if in.Cart == nil || in.Cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	lines := in.Cart.Lines() // ordenadas por id de producto
	total := in.Cart.Total()
	discount := in.DiscountAmount
	if discount.IsNegative() || discount.GreaterThan(total) {
		v := domain.NewValidationError()
		v.Add("discount_amount", "Discount must be between 0 and the cart total.")
		return nil, v
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:           uuid.New().String(),
		CustomerName: strings.TrimSpace(in.CustomerName),
		CreatedBy:    in.UserID,
		CreatedAt:    now,
	}

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		products := make([]*entity.Product, len(lines))
		for i, line := range lines {
			p, err := productRepo.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			if p.Quantity < line.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.DisplayName(),
					Requested:   line.Quantity,
					Available:   p.Quantity,
				}
			}
			products[i] = p
		}

		items := make([]*entity.SaleItem, len(lines))
		for i, line := range lines {
			items[i] = entity.NewSaleItem(uuid.New().String(), sale.ID, line.ProductID, line.Name, line.Quantity, line.UnitPrice)
		}
		sale.ApplyTotals(items, discount)
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		for i, item := range items {
			if err := saleRepo.CreateItem(ctx, item); err != nil {
				return err
			}
			p := products[i]
			if err := productRepo.UpdateQuantity(ctx, p.ID, p.Quantity-item.Quantity); err != nil {
				return err
			}
			if err := movRepo.Create(ctx, &entity.InventoryMovement{
				ID:        uuid.New().String(),
				ProductID: p.ID,
				Direction: entity.MovementOUT,
				Quantity:  item.Quantity,
				Reason:    entity.ReasonSale,
				Reference: sale.ID,
				CreatedBy: in.UserID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		sale.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}
