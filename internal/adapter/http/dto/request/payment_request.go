package request

import "encoding/json"

// PaymentCreateRequest is the payload for charging an approved order.
//
// `provider_payload` is forwarded as-is (raw JSON) to support varying
// Mercado Pago schemas; the charge amount itself always comes from the
// stored budget.

type PaymentCreateRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}
