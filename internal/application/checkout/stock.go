package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/inventory"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

// StockReceipt es una entrada de mercancía.
type StockReceipt struct {
	ProductID string
	Quantity  int
	UnitCost  decimal.Decimal // cero = conservar el costo actual
	Notes     string
	UserID    string
}

// StockAdjustment corrige la existencia tras un conteo físico.
type StockAdjustment struct {
	ProductID string
	Delta     int
	Notes     string
	UserID    string
}

// ReceiveStock suma existencias, recalcula el costo promedio ponderado y registra un movimiento "in".
func (c *Coordinator) ReceiveStock(ctx context.Context, in StockReceipt) (*entity.StockMovement, error) {
	ctx, span := c.tracer.Start(ctx, "checkout.ReceiveStock")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", in.ProductID), attribute.Int("quantity", in.Quantity))

	if in.ProductID == "" {
		return nil, c.fail(span, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput))
	}
	if in.Quantity <= 0 {
		return nil, c.fail(span, &domain.InvalidQuantityError{ProductID: in.ProductID, Quantity: in.Quantity})
	}
	if in.UnitCost.IsNegative() {
		return nil, c.fail(span, fmt.Errorf("%w: costo unitario negativo", domain.ErrInvalidInput))
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      entity.MovementTypeIn,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Notes:     in.Notes,
		CreatedAt: c.now(),
		CreatedBy: in.UserID,
	}
	err := c.txRunner.RunCheckout(ctx, func(
		products repository.ProductStockRepository,
		_ repository.CustomerLedgerRepository,
		_ repository.SaleWriter,
		movements repository.StockMovementAppender,
		_ repository.CashLedgerAppender,
	) error {
		p, err := lockProduct(ctx, products, in.ProductID)
		if err != nil {
			return err
		}
		if in.UnitCost.IsPositive() {
			cost := inventory.CostCalculator(p.Quantity, p.PurchasePrice, in.Quantity, in.UnitCost)
			if err := products.UpdateCost(ctx, p.ID, cost); err != nil {
				return fmt.Errorf("actualizar costo: %w", err)
			}
		}
		return applyMovement(ctx, products, movements, mov)
	})
	if err != nil {
		return nil, c.fail(span, err)
	}
	return mov, nil
}

// AdjustStock aplica un delta con signo y registra un movimiento "adjustment".
// Sin stock negativo habilitado, el resultado no puede quedar por debajo de cero.
func (c *Coordinator) AdjustStock(ctx context.Context, in StockAdjustment) (*entity.StockMovement, error) {
	ctx, span := c.tracer.Start(ctx, "checkout.AdjustStock")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", in.ProductID), attribute.Int("delta", in.Delta))

	if in.ProductID == "" {
		return nil, c.fail(span, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput))
	}
	if in.Delta == 0 {
		return nil, c.fail(span, &domain.InvalidQuantityError{ProductID: in.ProductID, Quantity: in.Delta})
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      entity.MovementTypeAdjustment,
		Quantity:  in.Delta,
		Notes:     in.Notes,
		CreatedAt: c.now(),
		CreatedBy: in.UserID,
	}
	err := c.txRunner.RunCheckout(ctx, func(
		products repository.ProductStockRepository,
		_ repository.CustomerLedgerRepository,
		_ repository.SaleWriter,
		movements repository.StockMovementAppender,
		_ repository.CashLedgerAppender,
	) error {
		p, err := lockProduct(ctx, products, in.ProductID)
		if err != nil {
			return err
		}
		if !c.settings.AllowNegativeStock && p.Quantity+in.Delta < 0 {
			return &domain.InsufficientStockError{ProductID: p.ID, Requested: -in.Delta, Available: p.Quantity}
		}
		return applyMovement(ctx, products, movements, mov)
	})
	if err != nil {
		return nil, c.fail(span, err)
	}
	return mov, nil
}

func lockProduct(ctx context.Context, products repository.ProductStockRepository, id string) (*entity.Product, error) {
	p, err := products.GetForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("bloquear producto %s: %w", id, err)
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// applyMovement es el par inseparable delta + entrada del libro.
func applyMovement(ctx context.Context, products repository.ProductStockRepository, movements repository.StockMovementAppender, mov *entity.StockMovement) error {
	if err := products.ApplyDelta(ctx, mov.ProductID, mov.Quantity); err != nil {
		return fmt.Errorf("aplicar delta %s: %w", mov.ProductID, err)
	}
	if err := movements.Append(ctx, mov); err != nil {
		return fmt.Errorf("registrar movimiento %s: %w", mov.ProductID, err)
	}
	return nil
}
