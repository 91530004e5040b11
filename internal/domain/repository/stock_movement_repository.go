package repository

import (
	"context"

	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
)

// StockMovementRepository consulta el libro de movimientos (append-only).
type StockMovementRepository interface {
	// SumForProduct suma los deltas del producto; 0 si no tiene movimientos.
	SumForProduct(ctx context.Context, productID string) (int, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListBySale(ctx context.Context, saleID string) ([]*entity.StockMovement, error)
}

// StockMovementAppender agrega entradas al libro. Solo existe dentro de un cierre.
type StockMovementAppender interface {
	Append(ctx context.Context, movement *entity.StockMovement) error
}
