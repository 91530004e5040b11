package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

var (
	_ repository.SaleRepository = (*SaleRepo)(nil)
	_ repository.SaleWriter     = (*SaleRepo)(nil)
)

const saleColumns = `id, invoice_number, COALESCE(customer_id, ''), subtotal, discount, tax, total,
	payment_method, payment_status, notes, COALESCE(created_by, ''), created_at`

// SaleRepo persiste cabeceras (sales) y líneas (sale_items).
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.InvoiceNumber, &s.CustomerID, &s.Subtotal, &s.Discount, &s.Tax, &s.Total,
		&s.PaymentMethod, &s.PaymentStatus, &s.Notes, &s.CreatedBy, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Insert guarda la cabecera. Las líneas van por InsertItem.
func (r *SaleRepo) Insert(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, invoice_number, customer_id, subtotal, discount, tax, total,
			payment_method, payment_status, notes, created_by, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.InvoiceNumber, s.CustomerID, s.Subtotal, s.Discount, s.Tax, s.Total,
		s.PaymentMethod, s.PaymentStatus, s.Notes, s.CreatedBy, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) InsertItem(ctx context.Context, it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, position, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, it.ID, it.SaleID, it.ProductID, it.Position, it.Quantity, it.UnitPrice, it.LineTotal)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert sale item: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	list, err := r.list(ctx, "list sales by customer",
		`SELECT `+saleColumns+` FROM sales WHERE customer_id = $1 ORDER BY created_at DESC, id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SaleRepo) ListByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	return r.list(ctx, "list sales by date",
		`SELECT `+saleColumns+` FROM sales WHERE created_at >= $1 AND created_at < $2
		 ORDER BY created_at DESC, id DESC `+pageClause(3, 4), from, to, limit, offset)
}

func (r *SaleRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// attachItems carga las líneas de todas las ventas en una sola consulta.
func (r *SaleRepo) attachItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, position, quantity, unit_price, line_total
		FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Position, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return fmt.Errorf("list sale items scan: %w", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}
