package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
)

// UseReorderThreshold en ListLowStock compara contra el umbral propio de cada producto.
const UseReorderThreshold = -1

// ProductRepository define el puerto de catálogo para Product (DIP).
// No expone escritura de Quantity: eso solo ocurre dentro de un cierre (ver ProductStockRepository).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// Update modifica datos de catálogo; ignora Quantity, InitialQuantity y PurchasePrice.
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// ListLowStock devuelve productos activos con quantity <= threshold,
	// o <= reorder_threshold si threshold es UseReorderThreshold.
	ListLowStock(ctx context.Context, threshold int) ([]*entity.Product, error)
	// ListAll incluye productos inactivos; lo usa la conciliación.
	ListAll(ctx context.Context) ([]*entity.Product, error)
	// Delete es lógico: el producto queda inactivo y sigue referenciado por las ventas.
	Delete(ctx context.Context, id string) error
}

// ProductStockRepository es el lado de escritura de existencias.
// Solo se obtiene dentro de una transacción de cierre.
type ProductStockRepository interface {
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). nil, nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	ApplyDelta(ctx context.Context, id string, delta int) error
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
}
