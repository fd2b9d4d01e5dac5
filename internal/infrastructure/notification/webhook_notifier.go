package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"os_service_api/internal/events"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// WebhookNotifier informs the external notification system (email/WhatsApp
// dispatcher) that an order changed status. It is strictly best-effort: the
// caller treats any error as log-only.
type WebhookNotifier struct {
	client *http.Client
	url    string
	logger *zap.Logger
}

// NewWebhookNotifier builds a notifier posting to url. An empty url disables
// delivery, which keeps local setups working without a notification stack.
func NewWebhookNotifier(url string, logger *zap.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		client: &http.Client{Timeout: defaultTimeout},
		url:    url,
		logger: logger,
	}
}

type statusChangedPayload struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	OldStatus   string `json:"oldStatus"`
	NewStatus   string `json:"newStatus"`
}

func (n *WebhookNotifier) NotifyStatusChanged(ctx context.Context, e events.OrderStatusChangedEvent) error {
	if n.url == "" {
		n.logger.Debug("notification webhook not configured; skipping",
			zap.String("order_id", e.OrderID),
		)
		return nil
	}

	body, err := json.Marshal(statusChangedPayload{
		OrderID:     e.OrderID,
		OrderNumber: e.OrderNumber,
		OldStatus:   string(e.OldStatus),
		NewStatus:   string(e.NewStatus),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned %d", resp.StatusCode)
	}
	return nil
}
