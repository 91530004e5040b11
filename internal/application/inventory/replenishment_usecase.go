package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

const salesWindowDays = 30

// ReplenishmentUseCase genera la lista de reposición.
// Combina existencias bajo umbral con el volumen vendido reciente para priorizar.
type ReplenishmentUseCase struct {
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository, analyticsRepo repository.AnalyticsRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo, analyticsRepo: analyticsRepo, now: time.Now}
}

// GenerateReplenishmentList devuelve los productos en o bajo su umbral de reorden con la cantidad
// sugerida max(umbral*2 - existencia, 1), ordenados por volumen vendido en los últimos 30 días.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Productos bajo su umbral
	low, err := uc.productRepo.ListLowStock(ctx, repository.UseReorderThreshold)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Ventas recientes por producto (todas las filas)
	end := uc.now()
	start := end.AddDate(0, 0, -salesWindowDays)
	sold, err := uc.analyticsRepo.GetTopProducts(ctx, start, end, 0)
	if err != nil {
		return nil, err
	}
	soldByID := make(map[string]int, len(sold))
	for _, s := range sold {
		soldByID[s.ProductID] = s.UnitsSold
	}

	// 3. Sugerencias
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		qty := p.ReorderThreshold*2 - p.Quantity
		if qty < 1 {
			qty = 1
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			ProductName:        p.Name,
			Barcode:            p.Barcode,
			CurrentStock:       p.Quantity,
			ReorderThreshold:   p.ReorderThreshold,
			SuggestedOrderQty:  qty,
			UnitCost:           p.PurchasePrice,
			EstimatedOrderCost: p.PurchasePrice.Mul(decimal.NewFromInt(int64(qty))).Round(2),
			UnitsSoldLast30d:   soldByID[p.ID],
		})
	}

	// 4. Ordenar: más vendido primero, luego mayor déficit, luego nombre.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSoldLast30d != b.UnitsSoldLast30d {
			return a.UnitsSoldLast30d > b.UnitsSoldLast30d
		}
		defA := a.ReorderThreshold - a.CurrentStock
		defB := b.ReorderThreshold - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.ProductName < b.ProductName
	})

	// 5. Prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
