package repository

import (
	"context"

	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
)

// CashLedgerAppender registra cobros en el libro de caja. Solo existe dentro de un cierre.
type CashLedgerAppender interface {
	Append(ctx context.Context, tx *entity.CashTransaction) error
}
