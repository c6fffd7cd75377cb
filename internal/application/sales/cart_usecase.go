package sales

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/cart"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

// CartUseCase edita un carrito que tiene quien llama. No persiste nada: el handler
// lo carga de la sesión y lo vuelve a guardar.
type CartUseCase struct {
	productRepo repository.ProductRepository
}

// NewCartUseCase crea el caso de uso.
func NewCartUseCase(productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{productRepo: productRepo}
}

// Products lista el catálogo para el selector de productos.
func (uc *CartUseCase) Products(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx, repository.ProductFilter{})
}

// AddItem resuelve el producto (primero barcode, luego selector) y lo agrega a c con su
// precio final actual. El chequeo de stock aquí solo protege el formulario; el checkout vuelve a chequear.
func (uc *CartUseCase) AddItem(ctx context.Context, c *cart.Cart, in dto.AddToCartRequest) (*entity.Product, error) {
	v := domain.NewValidationError()

	qty := 1
	if s := strings.TrimSpace(in.Quantity); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			v.Add("quantity", "Enter a whole number.")
		} else {
			qty = n
		}
	}
	if qty < 1 {
		v.Add("quantity", "Quantity must be at least 1")
	}

	product, err := uc.lookup(ctx, in, v)
	if err != nil {
		return nil, err
	}
	if product != nil && !v.HasErrors() {
		if want := c.QuantityOf(product.ID) + qty; want > product.Quantity {
			v.Add("quantity", fmt.Sprintf("Only %d units available in stock", product.Quantity))
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	if err := c.Add(product.ID, product.DisplayName(), qty, product.FinalPrice()); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return product, nil
}

// RemoveItem quita una línea. Los ids desconocidos se ignoran.
func (uc *CartUseCase) RemoveItem(c *cart.Cart, productID string) {
	c.Remove(productID)
}

func (uc *CartUseCase) lookup(ctx context.Context, in dto.AddToCartRequest, v *domain.ValidationError) (*entity.Product, error) {
	if barcode := strings.TrimSpace(in.Barcode); barcode != "" {
		p, err := uc.productRepo.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if p == nil {
			v.Add("barcode", "No product found with this barcode")
		}
		return p, nil
	}
	id := strings.TrimSpace(in.ProductID)
	if id == "" {
		v.Add("product", "Please select a product or scan barcode")
		return nil, nil
	}
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		v.Add("product", "Select a valid choice. That choice is not one of the available choices.")
	}
	return p, nil
}
