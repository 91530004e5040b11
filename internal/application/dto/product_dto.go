package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialQuantity es la existencia de apertura; después solo cambia por movimientos.
type CreateProductRequest struct {
	Name             string          `json:"name"`
	Brand            string          `json:"brand"`
	Model            string          `json:"model"`
	Category         string          `json:"category"`
	Barcode          string          `json:"barcode"`
	Description      string          `json:"description"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	InitialQuantity  int             `json:"initial_quantity"`
	ReorderThreshold *int            `json:"reorder_threshold,omitempty"` // nil = umbral por defecto
}

// UpdateProductRequest entrada para actualizar un producto (sin existencia ni costo).
type UpdateProductRequest struct {
	Name             *string          `json:"name"`
	Brand            *string          `json:"brand"`
	Model            *string          `json:"model"`
	Category         *string          `json:"category"`
	Barcode          *string          `json:"barcode"`
	Description      *string          `json:"description"`
	SellingPrice     *decimal.Decimal `json:"selling_price"`
	ReorderThreshold *int             `json:"reorder_threshold"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Brand            string          `json:"brand"`
	Model            string          `json:"model,omitempty"`
	Category         string          `json:"category"`
	Barcode          string          `json:"barcode,omitempty"`
	Description      string          `json:"description,omitempty"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	Quantity         int             `json:"quantity"`
	InitialQuantity  int             `json:"initial_quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
