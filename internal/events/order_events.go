package events

import "os_service_api/internal/domain/entities"

// OrderStatusChangedEvent is published after a status transition has been
// persisted. External notifiers (email, WhatsApp, webhooks) subscribe to it;
// this core never formats or delivers messages itself.
type OrderStatusChangedEvent struct {
	OrderID     string
	OrderNumber string
	OldStatus   entities.OrderStatus
	NewStatus   entities.OrderStatus
}

func (e OrderStatusChangedEvent) Name() string {
	return "order.status.changed"
}
