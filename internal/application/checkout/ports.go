package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una única transacción con los repositorios de escritura del cierre.
// Si fn devuelve error, la implementación descarta todo lo escrito.
// Los bloqueos tomados con GetForUpdate se sueltan al terminar la transacción.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		products repository.ProductStockRepository,
		customers repository.CustomerLedgerRepository,
		sales repository.SaleWriter,
		movements repository.StockMovementAppender,
		cash repository.CashLedgerAppender,
	) error) error
}

// EventPublisher publica eventos de venta hacia consumidores externos.
// Se invoca después del commit; un fallo no revierte la venta.
type EventPublisher interface {
	PublishSaleCommitted(ctx context.Context, evt SaleCommitted) error
}

// SaleCommitted describe una venta ya confirmada.
type SaleCommitted struct {
	SaleID        string              `json:"sale_id"`
	InvoiceNumber string              `json:"invoice_number"`
	CustomerID    string              `json:"customer_id,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"payment_method"`
	LoyaltyPoints int                 `json:"loyalty_points"`
	Items         []SaleCommittedItem `json:"items"`
	OccurredAt    time.Time           `json:"occurred_at"`
}

type SaleCommittedItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
