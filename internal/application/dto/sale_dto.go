package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body de POST /api/sales.
// El precio unitario lo fija el producto al momento del cierre; no se recibe del cliente.
type CreateSaleRequest struct {
	CustomerID    string          `json:"customer_id,omitempty"`
	Items         []SaleItemInput `json:"items"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	PaymentMethod string          `json:"payment_method"` // cash | card | transfer
	Notes         string          `json:"notes,omitempty"`
}

type SaleItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// SaleResponse venta confirmada con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    string             `json:"customer_id,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	PaymentStatus string             `json:"payment_status"`
	Notes         string             `json:"notes,omitempty"`
	CreatedBy     string             `json:"created_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Position  int             `json:"position"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SalesReportResponse listado por rango de fechas con totales del período.
type SalesReportResponse struct {
	From  time.Time       `json:"from"`
	To    time.Time       `json:"to"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
	Items []SaleResponse  `json:"items"`
	Page  PageResponse    `json:"page"`
}
