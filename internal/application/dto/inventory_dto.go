package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReceiptRequest body de POST /api/inventory/receipts.
type StockReceiptRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Notes     string          `json:"notes,omitempty"`
}

// StockAdjustmentRequest body de POST /api/inventory/adjustments. Delta con signo.
type StockAdjustmentRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
	Notes     string `json:"notes"`
}

type StockMovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	SaleID    string          `json:"sale_id,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReconciliationLineDTO producto cuya existencia no cuadra con el libro.
type ReconciliationLineDTO struct {
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	Quantity        int    `json:"quantity"`
	InitialQuantity int    `json:"initial_quantity"`
	MovementsSum    int    `json:"movements_sum"`
	Expected        int    `json:"expected"` // initial_quantity + movements_sum
	Difference      int    `json:"difference"`
}

type ReconciliationReportDTO struct {
	CheckedProducts int                     `json:"checked_products"`
	Mismatches      []ReconciliationLineDTO `json:"mismatches"`
	GeneratedAt     time.Time               `json:"generated_at"`
}

// ReplenishmentSuggestionDTO sugerencia de pedido para un producto bajo su umbral.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Barcode            string          `json:"barcode,omitempty"`
	CurrentStock       int             `json:"current_stock"`
	ReorderThreshold   int             `json:"reorder_threshold"`
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // max(umbral*2 - existencia, 1)
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	UnitsSoldLast30d   int             `json:"units_sold_last_30d"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
