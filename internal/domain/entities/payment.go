package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.

type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

// Payment is a charge collected for a service order through the payment
// provider.
//
// Storage model (DynamoDB):
//   - PK: id (provider payment id)
//   - GSI1 (order_id-index): order_id
//
// ProviderPayloadRaw keeps the original provider response (JSON) for
// traceability; ProviderPayload is an optional parsed view for debugging.

type Payment struct {
	ID      string        `json:"id"`
	OrderID string        `json:"order_id"`
	Date    time.Time     `json:"date"`
	Status  PaymentStatus `json:"status"`
	Amount  float64       `json:"amount"`

	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]any  `json:"provider_payload,omitempty"`
}
