package kafka

import (
	"encoding/json"
	"time"
)

const (
	EventSaleCommitted = "SaleCommitted"
	producerName       = "tienda-pos"
)

// Envelope es el sobre común de los eventos publicados.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // id de la venta
	Payload       json.RawMessage `json:"payload"`
}
