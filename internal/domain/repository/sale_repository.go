package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
)

// SaleRepository es el puerto de lectura de ventas.
type SaleRepository interface {
	// GetByID devuelve la cabecera con sus líneas, o nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// ListByCustomer devuelve las ventas del cliente, más recientes primero, con sus líneas.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error)
	// ListByDateRange devuelve cabeceras (sin líneas) en [from, to).
	ListByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.Sale, error)
}

// SaleWriter inserta cabecera y líneas. Solo existe dentro de un cierre.
type SaleWriter interface {
	Insert(ctx context.Context, sale *entity.Sale) error
	InsertItem(ctx context.Context, item *entity.SaleItem) error
}
