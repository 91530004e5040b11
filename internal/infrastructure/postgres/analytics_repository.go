package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero.
// Corren fuera de las transacciones de cierre y ven solo datos confirmados.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

func (r *AnalyticsRepo) GetSalesSummary(ctx context.Context, startDate, endDate time.Time) (int, decimal.Decimal, error) {
	const query = `
	SELECT COUNT(*), COALESCE(SUM(total), 0)
	FROM sales
	WHERE created_at >= $1 AND created_at < $2`
	var count int
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, startDate, endDate).Scan(&count, &total); err != nil {
		return 0, decimal.Zero, fmt.Errorf("analytics.GetSalesSummary: %w", err)
	}
	return count, total, nil
}

func (r *AnalyticsRepo) GetInventorySummary(ctx context.Context) (repository.InventorySummary, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(quantity), 0),
	    COUNT(*) FILTER (WHERE quantity <= reorder_threshold),
	    COALESCE(SUM(purchase_price * GREATEST(quantity, 0)), 0)
	FROM products
	WHERE active`
	var s repository.InventorySummary
	if err := r.pool.QueryRow(ctx, query).Scan(&s.TotalProducts, &s.TotalUnits, &s.LowStockCount, &s.StockValue); err != nil {
		return repository.InventorySummary{}, fmt.Errorf("analytics.GetInventorySummary: %w", err)
	}
	return s, nil
}

func (r *AnalyticsRepo) CountCustomers(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountCustomers: %w", err)
	}
	return n, nil
}

// GetTopProducts agrupa las líneas vendidas en el período por producto.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    si.product_id,
	    p.name,
	    SUM(si.quantity)   AS units_sold,
	    SUM(si.line_total) AS revenue
	FROM sale_items si
	JOIN sales    s ON s.id = si.sale_id
	JOIN products p ON p.id = si.product_id
	WHERE s.created_at >= $1 AND s.created_at < $2
	GROUP BY si.product_id, p.name
	ORDER BY units_sold DESC, revenue DESC
	LIMIT NULLIF($3::int, 0)`
	rows, err := r.pool.Query(ctx, query, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()
	var out []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts rows: %w", err)
	}
	return out, nil
}

// GetPaymentMethodSummary saldo del libro de caja por método de pago en el período.
func (r *AnalyticsRepo) GetPaymentMethodSummary(ctx context.Context, startDate, endDate time.Time) ([]repository.PaymentMethodSummary, error) {
	const query = `
	SELECT
	    payment_method,
	    COUNT(*),
	    COALESCE(SUM(CASE WHEN type = 'out' THEN -amount ELSE amount END), 0)
	FROM cash_transactions
	WHERE created_at >= $1 AND created_at < $2
	GROUP BY payment_method
	ORDER BY payment_method`
	rows, err := r.pool.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetPaymentMethodSummary: %w", err)
	}
	defer rows.Close()
	var out []repository.PaymentMethodSummary
	for rows.Next() {
		var row repository.PaymentMethodSummary
		if err := rows.Scan(&row.PaymentMethod, &row.Transactions, &row.Balance); err != nil {
			return nil, fmt.Errorf("analytics.GetPaymentMethodSummary scan: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetPaymentMethodSummary rows: %w", err)
	}
	return out, nil
}
