// Package inventory expone las operaciones de bodega: entradas, ajustes, consulta del libro
// de movimientos, conciliación y sugerencias de reposición.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Tienda-POS/internal/application/checkout"
	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

// StockWriter es el lado de escritura de existencias (checkout.Coordinator).
type StockWriter interface {
	ReceiveStock(ctx context.Context, in checkout.StockReceipt) (*entity.StockMovement, error)
	AdjustStock(ctx context.Context, in checkout.StockAdjustment) (*entity.StockMovement, error)
}

// InventoryUseCase entradas, ajustes y lecturas del libro de movimientos.
type InventoryUseCase struct {
	writer      StockWriter
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	now         func() time.Time
}

func NewInventoryUseCase(writer StockWriter, productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) *InventoryUseCase {
	return &InventoryUseCase{writer: writer, productRepo: productRepo, movRepo: movRepo, now: time.Now}
}

// Receive registra una entrada de mercancía.
func (uc *InventoryUseCase) Receive(ctx context.Context, userID string, in dto.StockReceiptRequest) (*dto.StockMovementResponse, error) {
	mov, err := uc.writer.ReceiveStock(ctx, checkout.StockReceipt{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Notes:     in.Notes,
		UserID:    userID,
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// Adjust corrige la existencia con un delta con signo.
func (uc *InventoryUseCase) Adjust(ctx context.Context, userID string, in dto.StockAdjustmentRequest) (*dto.StockMovementResponse, error) {
	mov, err := uc.writer.AdjustStock(ctx, checkout.StockAdjustment{
		ProductID: in.ProductID,
		Delta:     in.Delta,
		Notes:     in.Notes,
		UserID:    userID,
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// ListMovements devuelve el libro del producto, más reciente primero.
func (uc *InventoryUseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]dto.StockMovementResponse, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// Reconcile compara quantity contra initial_quantity + Σ movimientos para cada producto,
// incluidos los inactivos. Una lista vacía de diferencias significa libro consistente.
func (uc *InventoryUseCase) Reconcile(ctx context.Context) (*dto.ReconciliationReportDTO, error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	report := &dto.ReconciliationReportDTO{
		CheckedProducts: len(products),
		Mismatches:      []dto.ReconciliationLineDTO{},
		GeneratedAt:     uc.now(),
	}
	for _, p := range products {
		sum, err := uc.movRepo.SumForProduct(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("conciliar %s: %w", p.ID, err)
		}
		expected := p.InitialQuantity + sum
		if expected == p.Quantity {
			continue
		}
		report.Mismatches = append(report.Mismatches, dto.ReconciliationLineDTO{
			ProductID:       p.ID,
			ProductName:     p.Name,
			Quantity:        p.Quantity,
			InitialQuantity: p.InitialQuantity,
			MovementsSum:    sum,
			Expected:        expected,
			Difference:      p.Quantity - expected,
		})
	}
	return report, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		SaleID:    m.SaleID,
		Notes:     m.Notes,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}
