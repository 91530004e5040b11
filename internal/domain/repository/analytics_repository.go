package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult fila cruda de productos más vendidos.
type TopProductResult struct {
	ProductID   string
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// InventorySummary totales de existencias de productos activos.
type InventorySummary struct {
	TotalProducts int
	TotalUnits    int
	LowStockCount int // quantity <= reorder_threshold
	StockValue    decimal.Decimal
}

// PaymentMethodSummary saldo del libro de caja para un método de pago.
type PaymentMethodSummary struct {
	PaymentMethod string
	Transactions  int
	Balance       decimal.Decimal // ingresos - egresos
}

// AnalyticsRepository define las consultas de lectura del tablero.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetSalesSummary cuenta y suma las ventas en [startDate, endDate).
	// Usa COALESCE para devolver cero si no hay ventas.
	GetSalesSummary(ctx context.Context, startDate, endDate time.Time) (count int, total decimal.Decimal, err error)

	GetInventorySummary(ctx context.Context) (InventorySummary, error)

	CountCustomers(ctx context.Context) (int, error)

	// GetTopProducts devuelve los `limit` productos con más unidades vendidas en el período (0 = todos).
	GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProductResult, error)

	// GetPaymentMethodSummary agrupa el libro de caja en [startDate, endDate) por método de pago,
	// ordenado por método.
	GetPaymentMethodSummary(ctx context.Context, startDate, endDate time.Time) ([]PaymentMethodSummary, error)
}
