// Package memory es un driver de almacenamiento que guarda todo en memoria del proceso.
// Implementa los mismos puertos y contrato transaccional que el driver postgres; lo usan
// los tests y STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/zeenatstore/zeenat-store/internal/application/catalog"
	"github.com/zeenatstore/zeenat-store/internal/application/sales"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

var _ catalog.TxRunner = (*Store)(nil)
var _ sales.SaleTxRunner = (*Store)(nil)

// Store guarda los datos. Una transacción toma el lock de escritura durante toda su
// duración, trabaja sobre una copia y la reemplaza al terminar bien; si falla no deja rastro.
type Store struct {
	mu    sync.RWMutex
	state *state
}

type state struct {
	categories map[string]entity.Category
	products   map[string]entity.Product
	sales      map[string]entity.Sale
	saleItems  map[string][]entity.SaleItem // por id de venta
	movements  []entity.InventoryMovement
	users      map[string]entity.User
	saleSeq    int64
}

// New devuelve un store vacío.
func New() *Store {
	return &Store{state: &state{
		categories: make(map[string]entity.Category),
		products:   make(map[string]entity.Product),
		sales:      make(map[string]entity.Sale),
		saleItems:  make(map[string][]entity.SaleItem),
		users:      make(map[string]entity.User),
	}}
}

func (s *state) clone() *state {
	c := &state{
		categories: make(map[string]entity.Category, len(s.categories)),
		products:   make(map[string]entity.Product, len(s.products)),
		sales:      make(map[string]entity.Sale, len(s.sales)),
		saleItems:  make(map[string][]entity.SaleItem, len(s.saleItems)),
		movements:  make([]entity.InventoryMovement, len(s.movements)),
		users:      make(map[string]entity.User, len(s.users)),
		saleSeq:    s.saleSeq,
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.saleItems {
		c.saleItems[k] = append([]entity.SaleItem(nil), v...)
	}
	copy(c.movements, s.movements)
	for k, v := range s.users {
		v.Roles = append([]string(nil), v.Roles...)
		c.users[k] = v
	}
	return c
}

// view dirige las llamadas al estado compartido (tomando el lock) o a la copia de una
// transacción en curso (ya bloqueada).
type view struct {
	store *Store
	tx    *state
}

func (v *view) read(fn func(s *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.state)
}

func (v *view) write(fn func(s *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.state)
}

func (s *Store) shared() *view { return &view{store: s} }

// Repositorios fuera de toda transacción.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{v: s.shared()} }
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: s.shared()} }
func (s *Store) Sales() *SaleRepo { return &SaleRepo{v: s.shared()} }
func (s *Store) Movements() *InventoryMovementRepo { return &InventoryMovementRepo{v: s.shared()} }
func (s *Store) Users() *UserRepo { return &UserRepo{v: s.shared()} }
func (s *Store) Reports() *ReportRepo { return &ReportRepo{v: s.shared()} }

func (s *Store) begin() (*view, func(commit bool)) {
	s.mu.Lock()
	tx := &view{store: s, tx: s.state.clone()}
	return tx, func(commit bool) {
		if commit {
			s.state = tx.tx
		}
		s.mu.Unlock()
	}
}

// Run ejecuta fn con repositorios ligados a la transacción; un error de fn descarta toda escritura.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, end := s.begin()
	committed := false
	defer func() { end(committed) }()
	if err := fn(&InventoryMovementRepo{v: tx}, &ProductRepo{v: tx}); err != nil {
		return err
	}
	committed = true
	return nil
}

// RunSale es Run más el repositorio de ventas.
func (s *Store) RunSale(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, end := s.begin()
	committed := false
	defer func() { end(committed) }()
	if err := fn(&InventoryMovementRepo{v: tx}, &ProductRepo{v: tx}, &SaleRepo{v: tx}); err != nil {
		return err
	}
	committed = true
	return nil
}
