package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

var _ repository.CashLedgerAppender = (*CashTransactionRepo)(nil)

// CashTransactionRepo escribe el libro de caja. Igual que stock_movements, solo INSERT.
type CashTransactionRepo struct {
	q Querier
}

func NewCashTransactionRepository(q Querier) *CashTransactionRepo {
	return &CashTransactionRepo{q: q}
}

const insertCashTransactionSQL = `
	INSERT INTO cash_transactions (id, type, payment_method, amount, sale_id, description, created_by, created_at)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8)`

func (r *CashTransactionRepo) Append(ctx context.Context, t *entity.CashTransaction) error {
	_, err := r.q.Exec(ctx, insertCashTransactionSQL,
		t.ID, t.Type, t.PaymentMethod, t.Amount, t.SaleID, t.Description, t.CreatedBy, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("append cash transaction: cobro duplicado para venta %s: %w", t.SaleID, err)
		}
		return fmt.Errorf("append cash transaction: %w", err)
	}
	return nil
}
