package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	// Update modifica datos de contacto; ignora TotalPurchases y LoyaltyPoints.
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
}

// CustomerLedgerRepository acumula compras y puntos. Solo existe dentro de un cierre.
type CustomerLedgerRepository interface {
	GetForUpdate(ctx context.Context, id string) (*entity.Customer, error)
	ApplyPurchase(ctx context.Context, id string, amount decimal.Decimal, points int) error
}
