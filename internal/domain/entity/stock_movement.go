package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeSale       = "sale"       // salida por venta, siempre con SaleID
	MovementTypeIn         = "in"         // entrada de mercancía
	MovementTypeAdjustment = "adjustment" // ajuste por conteo físico
)

// StockMovement es una entrada inmutable del libro: explica un cambio en Product.Quantity.
// Nunca se actualiza ni se borra.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int             // delta con signo; negativo en ventas
	UnitCost  decimal.Decimal // costo unitario de la entrada (solo "in")
	SaleID    string          // vacío si el movimiento no proviene de una venta
	Notes     string
	CreatedAt time.Time
	CreatedBy string // UserID
}
