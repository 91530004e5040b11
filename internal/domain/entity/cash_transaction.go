package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de caja.
const (
	CashTransactionIn  = "in"  // ingreso (cobro de una venta)
	CashTransactionOut = "out" // egreso
)

// CashTransaction es una entrada del libro de caja. Como el libro de movimientos, no se modifica.
// Amount es siempre positivo; el signo lo da Type.
type CashTransaction struct {
	ID            string
	Type          string
	PaymentMethod string
	Amount        decimal.Decimal
	SaleID        string // vacío si no proviene de una venta
	Description   string
	CreatedBy     string
	CreatedAt     time.Time
}

// SignedAmount devuelve Amount con signo: negativo para egresos.
func (t *CashTransaction) SignedAmount() decimal.Decimal {
	if t.Type == CashTransactionOut {
		return t.Amount.Neg()
	}
	return t.Amount
}
