package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.StockMovementAppender   = (*StockMovementRepo)(nil)
)

// StockMovementRepo es el libro de movimientos. Solo INSERT y SELECT: nunca UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, unit_cost, sale_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9)`
	_, err := r.q.Exec(ctx, query, m.ID, m.ProductID, m.Type, m.Quantity, m.UnitCost, m.SaleID, m.Notes, m.CreatedBy, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("append stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) SumForProduct(ctx context.Context, productID string) (int, error) {
	var sum int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE product_id = $1`, productID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(ctx, "list movements by product", `
		SELECT id, product_id, type, quantity, unit_cost, COALESCE(sale_id, ''), notes, COALESCE(created_by, ''), created_at
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC, id DESC `+pageClause(2, 3), productID, limit, offset)
}

func (r *StockMovementRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, "list movements by sale", `
		SELECT id, product_id, type, quantity, unit_cost, COALESCE(sale_id, ''), notes, COALESCE(created_by, ''), created_at
		FROM stock_movements WHERE sale_id = $1 ORDER BY created_at, id`, saleID)
}

func (r *StockMovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost, &m.SaleID, &m.Notes, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
