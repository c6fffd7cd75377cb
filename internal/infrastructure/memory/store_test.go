package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
	"github.com/zeenatstore/zeenat-store/internal/infrastructure/memory"
)

func seed(t *testing.T, s *memory.Store, qty int) *entity.Product {
	t.Helper()
	ctx := context.Background()
	cat := &entity.Category{ID: uuid.New().String(), Name: "C-" + uuid.New().String(), CreatedAt: time.Now()}
	require.NoError(t, s.Categories().Create(ctx, cat))
	p := &entity.Product{
		ID:         uuid.New().String(),
		CategoryID: cat.ID,
		Name:       "Shirt",
		Price:      decimal.RequireFromString("10.00"),
		Quantity:   qty,
	}
	require.NoError(t, s.Products().Create(ctx, p))
	return p
}

func TestRunSale_ErrorDiscardsWrites(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	p := seed(t, s, 5)
	boom := errors.New("boom")

	err := s.RunSale(ctx, func(mov repository.InventoryMovementRepository, prod repository.ProductRepository, sales repository.SaleRepository) error {
		sale := &entity.Sale{ID: uuid.New().String(), CreatedAt: time.Now()}
		require.NoError(t, sales.Create(ctx, sale))
		require.NoError(t, prod.UpdateQuantity(ctx, p.ID, 1))
		require.NoError(t, mov.Create(ctx, &entity.InventoryMovement{
			ID: uuid.New().String(), ProductID: p.ID, Direction: entity.MovementOUT, Quantity: 4,
		}))
		// visible dentro de la transacción
		got, err := prod.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Quantity)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
	list, err := s.Sales().List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	movements, err := s.Movements().ListByProduct(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)

	// no se consumió el número de venta
	sale := &entity.Sale{ID: uuid.New().String(), CreatedAt: time.Now()}
	require.NoError(t, s.Sales().Create(ctx, sale))
	assert.Equal(t, int64(1), sale.Number)
}

func TestRun_CommitsOnSuccess(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	p := seed(t, s, 5)

	err := s.Run(ctx, func(mov repository.InventoryMovementRepository, prod repository.ProductRepository) error {
		if err := prod.UpdateQuantity(ctx, p.ID, 8); err != nil {
			return err
		}
		return mov.Create(ctx, &entity.InventoryMovement{
			ID: uuid.New().String(), ProductID: p.ID, Direction: entity.MovementIN, Quantity: 3,
		})
	})
	require.NoError(t, err)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)
	movements, err := s.Movements().ListByProduct(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Len(t, movements, 1)
}

func TestRun_CancelledContext(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.Run(ctx, func(repository.InventoryMovementRepository, repository.ProductRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRunSale_ConcurrentDecrementsNeverOversell(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	p := seed(t, s, 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	sold := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.RunSale(ctx, func(_ repository.InventoryMovementRepository, prod repository.ProductRepository, _ repository.SaleRepository) error {
				cur, err := prod.GetForUpdate(ctx, p.ID)
				if err != nil {
					return err
				}
				if cur.Quantity < 1 {
					return domain.ErrInsufficientStock
				}
				return prod.UpdateQuantity(ctx, p.ID, cur.Quantity-1)
			})
			if err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, sold)
	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestProducts_Constraints(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	p := seed(t, s, 1)
	p.Barcode = "111"
	require.NoError(t, s.Products().Update(ctx, p))

	other := *p
	other.ID = uuid.New().String()
	assert.ErrorIs(t, s.Products().Create(ctx, &other), domain.ErrDuplicate)

	other.Barcode = ""
	other.CategoryID = "missing"
	assert.ErrorIs(t, s.Products().Create(ctx, &other), domain.ErrInvalidInput)

	assert.ErrorIs(t, s.Products().UpdateQuantity(ctx, p.ID, -1), domain.ErrInsufficientStock)

	got, err := s.Products().GetByBarcode(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	got, err = s.Products().GetByBarcode(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProducts_ReturnedValuesAreCopies(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	p := seed(t, s, 3)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Quantity = 99

	again, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Quantity)
	assert.NotEmpty(t, again.CategoryName)
}

func TestUsers_DuplicateUsername(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	u := &entity.User{ID: "u1", Username: "ali", Roles: []string{"cashier"}}
	require.NoError(t, s.Users().Create(ctx, u))
	assert.ErrorIs(t, s.Users().Create(ctx, &entity.User{ID: "u2", Username: "ali"}), domain.ErrDuplicate)
	assert.ErrorIs(t, s.Users().UpdatePassword(ctx, "nope", "x"), domain.ErrUserNotFound)
}
