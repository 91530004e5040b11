package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Tienda-POS/internal/application/checkout"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool        *pgxpool.Pool
	isoLevel    pgx.TxIsoLevel
	lockTimeout time.Duration
}

// NewTxRunner construye el runner. lockTimeout se aplica con SET LOCAL en cada transacción;
// con READ COMMITTED, SELECT ... FOR UPDATE devuelve la fila ya confirmada por quien tenía el bloqueo.
func NewTxRunner(pool *pgxpool.Pool, isoLevel pgx.TxIsoLevel, lockTimeout time.Duration) *TxRunner {
	if isoLevel == "" {
		isoLevel = pgx.ReadCommitted
	}
	return &TxRunner{pool: pool, isoLevel: isoLevel, lockTimeout: lockTimeout}
}

// RunCheckout inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	products repository.ProductStockRepository,
	customers repository.CustomerLedgerRepository,
	sales repository.SaleWriter,
	movements repository.StockMovementAppender,
	cash repository.CashLedgerAppender,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: r.isoLevel})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		ms := fmt.Sprintf("%dms", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, ms); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(
		NewProductRepository(tx),
		NewCustomerRepository(tx),
		NewSaleRepository(tx),
		NewStockMovementRepository(tx),
		NewCashTransactionRepository(tx),
	); err != nil {
		return translateTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// ParseIsoLevel traduce el valor de configuración al nivel de aislamiento de pgx.
func ParseIsoLevel(s string) (pgx.TxIsoLevel, error) {
	switch s {
	case "", "read_committed":
		return pgx.ReadCommitted, nil
	case "repeatable_read":
		return pgx.RepeatableRead, nil
	case "serializable":
		return pgx.Serializable, nil
	}
	return "", fmt.Errorf("nivel de aislamiento desconocido %q", s)
}
