package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

var (
	_ repository.CategoryRepository          = (*CategoryRepo)(nil)
	_ repository.ProductRepository           = (*ProductRepo)(nil)
	_ repository.SaleRepository              = (*SaleRepo)(nil)
	_ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)
	_ repository.UserRepository              = (*UserRepo)(nil)
	_ repository.ReportRepository            = (*ReportRepo)(nil)
)

// ── Categorías ────────────────────────────────────────────────────────────────

type CategoryRepo struct{ v *view }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.v.write(func(s *state) error {
		for _, existing := range s.categories {
			if existing.Name == c.Name {
				return domain.ErrDuplicate
			}
		}
		s.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.read(func(s *state) error {
		if c, ok := s.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.read(func(s *state) error {
		for _, c := range s.categories {
			if c.Name == name {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.v.read(func(s *state) error {
		for _, c := range s.categories {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// ── Productos ──────────────────────────────────────────────────────────────────

type ProductRepo struct{ v *view }

func (s *state) productOut(p entity.Product) *entity.Product {
	if c, ok := s.categories[p.CategoryID]; ok {
		p.CategoryName = c.Name
	}
	return &p
}

func (s *state) barcodeTaken(barcode, selfID string) bool {
	if barcode == "" {
		return false
	}
	for _, p := range s.products {
		if p.Barcode == barcode && p.ID != selfID {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.categories[p.CategoryID]; !ok {
			return domain.ErrInvalidInput
		}
		if _, ok := s.products[p.ID]; ok || s.barcodeTaken(p.Barcode, p.ID) {
			return domain.ErrDuplicate
		}
		s.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(s *state) error {
		if p, ok := s.products[id]; ok {
			out = s.productOut(p)
		}
		return nil
	})
	return out, err
}

// GetForUpdate es GetByID: dentro de una transacción todo el store ya está bloqueado.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	var out *entity.Product
	if barcode == "" {
		return nil, nil
	}
	err := r.v.read(func(s *state) error {
		for _, p := range s.products {
			if p.Barcode == barcode {
				out = s.productOut(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := s.categories[p.CategoryID]; !ok {
			return domain.ErrInvalidInput
		}
		if s.barcodeTaken(p.Barcode, p.ID) {
			return domain.ErrDuplicate
		}
		stored := *p
		stored.CategoryName = ""
		s.products[p.ID] = stored
		return nil
	})
}

func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	return r.v.write(func(s *state) error {
		p, ok := s.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 {
			return domain.ErrInsufficientStock
		}
		p.Quantity = quantity
		p.UpdatedAt = time.Now()
		s.products[id] = p
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(s *state) error {
		for _, items := range s.saleItems {
			for _, it := range items {
				if it.ProductID == id {
					return domain.ErrConflict
				}
			}
		}
		delete(s.products, id)
		kept := s.movements[:0]
		for _, m := range s.movements {
			if m.ProductID != id {
				kept = append(kept, m)
			}
		}
		s.movements = kept
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(func(s *state) error {
		for _, p := range s.products {
			if filter.BelowQuantity > 0 && p.Quantity >= filter.BelowQuantity {
				continue
			}
			out = append(out, s.productOut(p))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

// ── Ventas ─────────────────────────────────────────────────────────────────────

type SaleRepo struct{ v *view }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.sales[sale.ID]; ok {
			return domain.ErrDuplicate
		}
		s.saleSeq++
		sale.Number = s.saleSeq
		stored := *sale
		stored.Items = nil
		s.sales[sale.ID] = stored
		return nil
	})
}

func (r *SaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.sales[item.SaleID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := s.products[item.ProductID]; !ok {
			return domain.ErrNotFound
		}
		s.saleItems[item.SaleID] = append(s.saleItems[item.SaleID], *item)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.read(func(s *state) error {
		if sale, ok := s.sales[id]; ok {
			out = &sale
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) ListItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	err := r.v.read(func(s *state) error {
		for _, it := range s.saleItems[saleID] {
			it := it
			out = append(out, &it)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.v.read(func(s *state) error {
		for _, sale := range s.sales {
			if filter.From != nil && sale.CreatedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !sale.CreatedAt.Before(*filter.To) {
				continue
			}
			sale := sale
			out = append(out, &sale)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Number > out[j].Number
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, err
}

// ── Movimientos de inventario ───────────────────────────────────────────────────────

type InventoryMovementRepo struct{ v *view }

func (r *InventoryMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.products[m.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if m.Quantity <= 0 || (m.Direction != entity.MovementIN && m.Direction != entity.MovementOUT) {
			return domain.ErrInvalidInput
		}
		s.movements = append(s.movements, *m)
		return nil
	})
}

func (r *InventoryMovementRepo) ListByProduct(_ context.Context, productID string, limit int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.v.read(func(s *state) error {
		// se agregan en orden de tiempo; se recorren al revés para el más nuevo primero
		for i := len(s.movements) - 1; i >= 0; i-- {
			if s.movements[i].ProductID != productID {
				continue
			}
			m := s.movements[i]
			out = append(out, &m)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// ── Usuarios ─────────────────────────────────────────────────────────────────────

type UserRepo struct{ v *view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(s *state) error {
		for _, existing := range s.users {
			if existing.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		stored := *u
		stored.Roles = append([]string(nil), u.Roles...)
		s.users[u.ID] = stored
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(s *state) error {
		if u, ok := s.users[id]; ok {
			u.Roles = append([]string(nil), u.Roles...)
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(s *state) error {
		for _, u := range s.users {
			if u.Username == username {
				u.Roles = append([]string(nil), u.Roles...)
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.v.write(func(s *state) error {
		u, ok := s.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.PasswordHash = passwordHash
		u.UpdatedAt = time.Now()
		s.users[id] = u
		return nil
	})
}

// ── Reportes ───────────────────────────────────────────────────────────────────

type ReportRepo struct{ v *view }

func (r *ReportRepo) InventorySummary(_ context.Context, lowStockThreshold int) (repository.InventorySummary, error) {
	out := repository.InventorySummary{StockValue: decimal.Zero}
	err := r.v.read(func(s *state) error {
		for _, p := range s.products {
			p := p
			out.ProductCount++
			out.TotalQuantity += p.Quantity
			if p.IsLowStock(lowStockThreshold) {
				out.LowStockCount++
			}
			out.StockValue = out.StockValue.Add(p.StockValue())
		}
		return nil
	})
	return out, err
}

func (r *ReportRepo) SalesTotal(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.v.read(func(s *state) error {
		for _, sale := range s.sales {
			if !sale.CreatedAt.Before(from) && sale.CreatedAt.Before(to) {
				total = total.Add(sale.GrandTotal)
			}
		}
		return nil
	})
	return total, err
}
