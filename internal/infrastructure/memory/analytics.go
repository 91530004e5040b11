package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

// AnalyticsRepository calcula las consultas del tablero sobre el estado confirmado.
type AnalyticsRepository struct{ s *Store }

func (r *AnalyticsRepository) GetSalesSummary(_ context.Context, startDate, endDate time.Time) (int, decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count, total := 0, decimal.Zero
	for _, sale := range r.s.sales {
		if !sale.CreatedAt.Before(startDate) && sale.CreatedAt.Before(endDate) {
			count++
			total = total.Add(sale.Total)
		}
	}
	return count, total, nil
}

func (r *AnalyticsRepository) GetInventorySummary(_ context.Context) (repository.InventorySummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := repository.InventorySummary{StockValue: decimal.Zero}
	for _, p := range r.s.products {
		if !p.Active {
			continue
		}
		sum.TotalProducts++
		sum.TotalUnits += p.Quantity
		if p.IsLowStock(p.ReorderThreshold) {
			sum.LowStockCount++
		}
		if p.Quantity > 0 {
			sum.StockValue = sum.StockValue.Add(p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
		}
	}
	return sum, nil
}

func (r *AnalyticsRepository) CountCustomers(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.customers), nil
}

func (r *AnalyticsRepository) GetTopProducts(_ context.Context, startDate, endDate time.Time, limit int) ([]repository.TopProductResult, error) {
	r.s.mu.RLock()
	byProduct := make(map[string]*repository.TopProductResult)
	for saleID, sale := range r.s.sales {
		if sale.CreatedAt.Before(startDate) || !sale.CreatedAt.Before(endDate) {
			continue
		}
		for _, it := range r.s.items[saleID] {
			row, ok := byProduct[it.ProductID]
			if !ok {
				row = &repository.TopProductResult{
					ProductID:   it.ProductID,
					ProductName: r.s.products[it.ProductID].Name,
					Revenue:     decimal.Zero,
				}
				byProduct[it.ProductID] = row
			}
			row.UnitsSold += it.Quantity
			row.Revenue = row.Revenue.Add(it.LineTotal)
		}
	}
	r.s.mu.RUnlock()

	out := make([]repository.TopProductResult, 0, len(byProduct))
	for _, row := range byProduct {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitsSold != out[j].UnitsSold {
			return out[i].UnitsSold > out[j].UnitsSold
		}
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AnalyticsRepository) GetPaymentMethodSummary(_ context.Context, startDate, endDate time.Time) ([]repository.PaymentMethodSummary, error) {
	r.s.mu.RLock()
	byMethod := make(map[string]*repository.PaymentMethodSummary)
	for i := range r.s.cash {
		c := &r.s.cash[i]
		if c.CreatedAt.Before(startDate) || !c.CreatedAt.Before(endDate) {
			continue
		}
		row, ok := byMethod[c.PaymentMethod]
		if !ok {
			row = &repository.PaymentMethodSummary{PaymentMethod: c.PaymentMethod, Balance: decimal.Zero}
			byMethod[c.PaymentMethod] = row
		}
		row.Transactions++
		row.Balance = row.Balance.Add(c.SignedAmount())
	}
	r.s.mu.RUnlock()

	out := make([]repository.PaymentMethodSummary, 0, len(byMethod))
	for _, row := range byMethod {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentMethod < out[j].PaymentMethod })
	return out, nil
}
