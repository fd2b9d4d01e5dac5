package response

import (
	"time"

	"os_service_api/internal/domain/entities"
)

type PaymentResponse struct {
	ID      string         `json:"id"`
	OrderID string         `json:"orderId"`
	Date    time.Time      `json:"date"`
	Status  string         `json:"status"`
	Amount  float64        `json:"amount"`
	Payload map[string]any `json:"providerPayload,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:      p.ID,
		OrderID: p.OrderID,
		Date:    p.Date,
		Status:  string(p.Status),
		Amount:  p.Amount,
		Payload: p.ProviderPayload,
	}
}
