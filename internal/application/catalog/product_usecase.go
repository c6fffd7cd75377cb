package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

const historyLimit = 200

// ProductUseCase gestiona el catálogo. Cada cambio de cantidad hecho aquí queda en el
// registro de movimientos, en la misma transacción que la fila del producto.
type ProductUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.InventoryMovementRepository
}

// NewProductUseCase crea el caso de uso.
func NewProductUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.InventoryMovementRepository,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
	}
}

// Categories lista las categorías por nombre para el selector del formulario.
func (uc *ProductUseCase) Categories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

// List devuelve el catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx, repository.ProductFilter{})
}

// Get devuelve un producto o domain.ErrNotFound.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Create valida el formulario, resuelve la categoría y guarda el producto. Una cantidad
// inicial positiva se registra como movimiento IN.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.ProductForm) (*entity.Product, error) {
	f, err := parseProductForm(in)
	if err != nil {
		return nil, err
	}
	category, err := uc.resolveCategory(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := uc.checkBarcode(ctx, f.barcode, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		CategoryID:      category.ID,
		CategoryName:    category.Name,
		Name:            f.name,
		Size:            f.size,
		Color:           f.color,
		Price:           f.price,
		Quantity:        f.quantity,
		Barcode:         f.barcode,
		DiscountPercent: f.discount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.Quantity > 0 {
			return movRepo.Create(ctx, newMovement(product.ID, entity.MovementIN, product.Quantity, entity.ReasonInitialStock, userID, now))
		}
		return nil
	})
	if err != nil {
		return nil, barcodeConflict(err)
	}
	return product, nil
}

// Update aplica el formulario a un producto existente. La fila queda bloqueada mientras
// se calcula el delta de stock; un checkout concurrente no entra entre lectura y escritura.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.ProductForm) (*entity.Product, error) {
	f, err := parseProductForm(in)
	if err != nil {
		return nil, err
	}
	category, err := uc.resolveCategory(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := uc.checkBarcode(ctx, f.barcode, id); err != nil {
		return nil, err
	}

	var updated *entity.Product
	err = uc.txRunner.Run(ctx, func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		delta := f.quantity - product.Quantity

		product.CategoryID = category.ID
		product.CategoryName = category.Name
		product.Name = f.name
		product.Size = f.size
		product.Color = f.color
		product.Price = f.price
		product.Quantity = f.quantity
		product.Barcode = f.barcode
		product.DiscountPercent = f.discount
		product.UpdatedAt = now
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}

		switch {
		case delta > 0:
			err = movRepo.Create(ctx, newMovement(id, entity.MovementIN, delta, entity.ReasonAdjustment, userID, now))
		case delta < 0:
			err = movRepo.Create(ctx, newMovement(id, entity.MovementOUT, -delta, entity.ReasonAdjustment, userID, now))
		}
		if err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, barcodeConflict(err)
	}
	return updated, nil
}

// Delete borra un producto. Si una venta lo referencia devuelve domain.ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	return uc.productRepo.Delete(ctx, id)
}

// History devuelve el producto y sus movimientos de stock, el más nuevo primero.
func (uc *ProductUseCase) History(ctx context.Context, id string) (*dto.ProductHistory, error) {
	product, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListByProduct(ctx, id, historyLimit)
	if err != nil {
		return nil, err
	}
	return &dto.ProductHistory{Product: product, Movements: movements}, nil
}

// resolveCategory devuelve la categoría elegida, o busca/crea la escrita.
// Un nombre nuevo gana sobre el selector.
func (uc *ProductUseCase) resolveCategory(ctx context.Context, f productFields) (*entity.Category, error) {
	if f.newCategory != "" {
		return uc.getOrCreateCategory(ctx, f.newCategory)
	}
	c, err := uc.categoryRepo.GetByID(ctx, f.categoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		v := domain.NewValidationError()
		v.Add("category", "Select a valid choice. That choice is not one of the available choices.")
		return nil, v
	}
	return c, nil
}

func (uc *ProductUseCase) getOrCreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	c, err := uc.categoryRepo.GetByName(ctx, name)
	if err != nil || c != nil {
		return c, err
	}
	c = &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	err = uc.categoryRepo.Create(ctx, c)
	if errors.Is(err, domain.ErrDuplicate) {
		// Otra petición creó el mismo nombre en paralelo.
		return uc.categoryRepo.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// checkBarcode rechaza un código de barras que ya usa otro producto.
func (uc *ProductUseCase) checkBarcode(ctx context.Context, barcode, selfID string) error {
	if barcode == "" {
		return nil
	}
	other, err := uc.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return barcodeTaken()
	}
	return nil
}

// barcodeConflict convierte una violación de unicidad dentro de la transacción en error de formulario.
func barcodeConflict(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return barcodeTaken()
	}
	return err
}

func barcodeTaken() error {
	v := domain.NewValidationError()
	v.Add("barcode", "Product with this Barcode already exists.")
	return v
}

func newMovement(productID, direction string, qty int, reason, userID string, at time.Time) *entity.InventoryMovement {
	return &entity.InventoryMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Direction: direction,
		Quantity:  qty,
		Reason:    reason,
		CreatedBy: userID,
		CreatedAt: at,
	}
}
