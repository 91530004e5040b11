package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
// Es una foto de estado confirmado; puede no incluir una venta cerrada milisegundos antes.
type DashboardStatsResponse struct {
	// Día actual (00:00 – 23:59)
	TodaySalesCount int             `json:"today_sales_count"`
	TodaySales      decimal.Decimal `json:"today_sales"`

	// Mes en curso (día 1 – hoy)
	MonthSalesCount int             `json:"month_sales_count"`
	MonthSales      decimal.Decimal `json:"month_sales"`

	LowStockCount  int             `json:"low_stock_count"` // quantity <= reorder_threshold
	TotalCustomers int             `json:"total_customers"`
	TotalProducts  int             `json:"total_products"`
	TotalUnits     int             `json:"total_units"`
	StockValue     decimal.Decimal `json:"stock_value"` // unidades * costo promedio

	// Top productos del mes por unidades vendidas
	TopProducts []TopProductDTO `json:"top_products"`

	// Caja del día por método de pago
	PaymentMethods []PaymentMethodDTO `json:"payment_methods"`

	DateLabel   string    `json:"date_label"` // ej: "Febrero 2026"
	GeneratedAt time.Time `json:"generated_at"`
}

// TopProductDTO fila del widget de más vendidos.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// PaymentMethodDTO saldo de caja de un método de pago.
type PaymentMethodDTO struct {
	PaymentMethod string          `json:"payment_method"`
	Transactions  int             `json:"transactions"`
	Balance       decimal.Decimal `json:"balance"`
}
