package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"os_service_api/internal/domain/entities"
	"os_service_api/internal/events"

	"go.uber.org/zap"
)

func TestWebhookNotifier_NotifyStatusChanged(t *testing.T) {
	ctx := context.Background()
	event := events.OrderStatusChangedEvent{
		OrderID:     "order-1",
		OrderNumber: "OS-2025-7",
		OldStatus:   entities.OrderStatusSemVer,
		NewStatus:   entities.OrderStatusOrcamentar,
	}

	t.Run("posts the status change", func(t *testing.T) {
		var got statusChangedPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Fatalf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Fatalf("unexpected content type: %s", ct)
			}
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		n := NewWebhookNotifier(srv.URL, zap.NewNop())
		if err := n.NotifyStatusChanged(ctx, event); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.OrderNumber != "OS-2025-7" || got.NewStatus != "ORCAMENTAR" {
			t.Fatalf("unexpected payload: %+v", got)
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		n := NewWebhookNotifier(srv.URL, zap.NewNop())
		if err := n.NotifyStatusChanged(ctx, event); err == nil {
			t.Fatalf("expected an error for a 502 response")
		}
	})

	t.Run("unconfigured url skips delivery", func(t *testing.T) {
		n := NewWebhookNotifier("", zap.NewNop())
		if err := n.NotifyStatusChanged(ctx, event); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
