package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
	p.id, p.category_id, c.name, p.name, p.size, p.color, p.price, p.quantity,
	p.barcode, p.discount_percent, p.created_at, p.updated_at`

const productFrom = `
	FROM products p JOIN categories c ON c.id = p.category_id`

// ProductRepo implementa ProductRepository en PostgreSQL (pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository crea el adaptador. Recibe un pool o una tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var barcode *string
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.CategoryName, &p.Name, &p.Size, &p.Color, &p.Price, &p.Quantity,
		&barcode, &p.DiscountPercent, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Barcode = deref(barcode)
	return &p, nil
}

// Create inserta un producto. Un barcode ya usado devuelve domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, size, color, price, quantity, barcode, discount_percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Size, p.Color, p.Price, p.Quantity,
		nullable(p.Barcode), p.DiscountPercent, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si el producto no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT`+productColumns+productFrom+` WHERE p.id = $1`, id)
}

// GetByBarcode devuelve (nil, nil) si ningún producto tiene el barcode.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT`+productColumns+productFrom+` WHERE p.barcode = $1`, barcode)
}

// GetForUpdate bloquea la fila del producto (SELECT … FOR UPDATE OF p) hasta que termine la transacción.
// Solo tiene sentido si el repositorio se creó sobre una tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT`+productColumns+productFrom+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query, arg string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update escribe todas las columnas editables, incluida la cantidad.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, name = $3, size = $4, color = $5, price = $6,
			quantity = $7, barcode = $8, discount_percent = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Size, p.Color, p.Price,
		p.Quantity, nullable(p.Barcode), p.DiscountPercent, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija el nivel de stock. El CHECK rechaza negativos.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el producto y su historial de movimientos. Si tiene líneas de venta
// devuelve domain.ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List devuelve los productos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + productFrom
	var args []any
	if filter.BelowQuantity > 0 {
		query += ` WHERE p.quantity < $1`
		args = append(args, filter.BelowQuantity)
	}
	query += ` ORDER BY p.name, p.id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
