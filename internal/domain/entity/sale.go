package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Estados de pago.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
)

// Sale es la cabecera de una venta confirmada. Es inmutable.
// Invariante: Σ Items.LineTotal == Subtotal; Total = Subtotal - Discount + Tax.
type Sale struct {
	ID            string
	InvoiceNumber string
	CustomerID    string // vacío para venta de mostrador
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	PaymentStatus string
	Notes         string
	CreatedBy     string // UserID del cajero
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem es una línea de la venta. UnitPrice es una copia del precio al momento de vender.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Position  int
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// ItemsTotal suma los totales de línea cargados en Items.
func (s *Sale) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range s.Items {
		sum = sum.Add(it.LineTotal)
	}
	return sum
}

// IsValidPaymentMethod indica si el método de pago es uno de los aceptados en caja.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}
