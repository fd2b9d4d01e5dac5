package listeners

import (
	"context"

	"os_service_api/internal/events"
	"os_service_api/pkg/eventbus"

	"go.uber.org/zap"
)

// Notifier is the outbound boundary to the external notification system.
type Notifier interface {
	NotifyStatusChanged(ctx context.Context, e events.OrderStatusChangedEvent) error
}

// NotificationListener forwards status-changed events to the notifier.
// Delivery failures are logged by the bus and never reach the update that
// triggered them.
type NotificationListener struct {
	notifier Notifier
	logger   *zap.Logger
}

func NewNotificationListener(notifier Notifier, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{notifier: notifier, logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderStatusChangedEvent{}.Name(), l.handleStatusChanged)
	l.logger.Info("notification listener subscribed", zap.String("event", events.OrderStatusChangedEvent{}.Name()))
}

func (l *NotificationListener) handleStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderStatusChangedEvent)
	if !ok {
		l.logger.Warn("unexpected event type on status-changed subscription")
		return nil
	}

	l.logger.Debug("dispatching status-changed notification",
		zap.String("order_id", e.OrderID),
		zap.String("old_status", string(e.OldStatus)),
		zap.String("new_status", string(e.NewStatus)),
	)
	return l.notifier.NotifyStatusChanged(ctx, e)
}
