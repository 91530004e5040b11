package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

var (
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.ProductStockRepository = (*ProductRepo)(nil)
)

const productColumns = `id, name, brand, model, category, COALESCE(barcode, ''), description,
	purchase_price, selling_price, quantity, initial_quantity, reorder_threshold, active, created_at, updated_at`

// ProductRepo implementación de ProductRepository (usable con pool o tx).
// Los métodos de existencias (GetForUpdate, ApplyDelta, UpdateCost) solo tienen sentido sobre una tx.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Model, &p.Category, &p.Barcode, &p.Description,
		&p.PurchasePrice, &p.SellingPrice, &p.Quantity, &p.InitialQuantity, &p.ReorderThreshold,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Create persiste un nuevo producto con quantity = initial_quantity.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, brand, model, category, barcode, description,
			purchase_price, selling_price, quantity, initial_quantity, reorder_threshold, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Brand, p.Model, p.Category, p.Barcode, p.Description,
		p.PurchasePrice, p.SellingPrice, p.InitialQuantity, p.ReorderThreshold, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by barcode", `SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// Update actualiza datos de catálogo. Las existencias y el costo no se tocan aquí.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, brand = $3, model = $4, category = $5, barcode = NULLIF($6, ''), description = $7,
			selling_price = $8, reorder_threshold = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Brand, p.Model, p.Category, p.Barcode, p.Description,
		p.SellingPrice, p.ReorderThreshold, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, "list products",
		`SELECT `+productColumns+` FROM products WHERE active ORDER BY name, id `+pageClause(1, 2), limit, offset)
}

func (r *ProductRepo) ListLowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	if threshold == repository.UseReorderThreshold {
		return r.list(ctx, "list low stock",
			`SELECT `+productColumns+` FROM products WHERE active AND quantity <= reorder_threshold ORDER BY quantity, name`)
	}
	return r.list(ctx, "list low stock",
		`SELECT `+productColumns+` FROM products WHERE active AND quantity <= $1 ORDER BY quantity, name`, threshold)
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, "list all products", `SELECT `+productColumns+` FROM products ORDER BY name, id`)
}

// Delete marca el producto como inactivo; las ventas históricas lo siguen referenciando.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET active = FALSE, updated_at = NOW() WHERE id = $1 AND active`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetForUpdate obtiene el producto con bloqueo de fila (SELECT FOR UPDATE). Usar dentro de tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product for update", `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) ApplyDelta(ctx context.Context, id string, delta int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = quantity + $2, updated_at = NOW() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("apply delta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("apply delta %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET purchase_price = $2, updated_at = NOW() WHERE id = $1`, id, cost)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update cost %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
