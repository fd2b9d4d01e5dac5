package request

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestUpdateServiceOrderRequest_ToCommand(t *testing.T) {
	t.Run("accepts RFC 3339 and bare ISO dates", func(t *testing.T) {
		r := UpdateServiceOrderRequest{
			ArrivalDate:    strPtr("2025-03-14T10:00:00Z"),
			CompletionDate: strPtr("2025-03-20"),
		}

		cmd, details := r.ToCommand()
		if len(details) != 0 {
			t.Fatalf("unexpected details: %v", details)
		}
		if cmd.ArrivalDate == nil || !cmd.ArrivalDate.Equal(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected arrival date: %v", cmd.ArrivalDate)
		}
		if cmd.CompletionDate == nil || !cmd.CompletionDate.Equal(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected completion date: %v", cmd.CompletionDate)
		}
	})

	t.Run("empty date strings are treated as absent", func(t *testing.T) {
		r := UpdateServiceOrderRequest{DeliveryDate: strPtr("   ")}

		cmd, details := r.ToCommand()
		if len(details) != 0 {
			t.Fatalf("unexpected details: %v", details)
		}
		if cmd.DeliveryDate != nil {
			t.Fatalf("expected nil delivery date, got %v", cmd.DeliveryDate)
		}
	})

	t.Run("collects one detail per bad date", func(t *testing.T) {
		r := UpdateServiceOrderRequest{
			OpeningDate: strPtr("14/03/2025"),
			PaymentDate: strPtr("amanhã"),
		}

		_, details := r.ToCommand()
		if len(details) != 2 {
			t.Fatalf("expected 2 details, got %v", details)
		}
		if details[0] != `openingDate: invalid date "14/03/2025"` {
			t.Fatalf("unexpected detail: %q", details[0])
		}
	})

	t.Run("absent fields stay nil", func(t *testing.T) {
		cmd, details := UpdateServiceOrderRequest{}.ToCommand()
		if len(details) != 0 {
			t.Fatalf("unexpected details: %v", details)
		}
		if cmd.Status != nil || cmd.BudgetItems != nil || cmd.ClientID != nil {
			t.Fatalf("expected zero command, got %+v", cmd)
		}
	})
}

func TestCreateServiceOrderRequest_ToCommand(t *testing.T) {
	r := CreateServiceOrderRequest{
		ClientID:    "client-1",
		Brand:       "Dell",
		ArrivalDate: strPtr("2025-03-10"),
	}

	cmd, details := r.ToCommand()
	if len(details) != 0 {
		t.Fatalf("unexpected details: %v", details)
	}
	if cmd.ClientID != "client-1" || cmd.Brand != "Dell" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.ArrivalDate == nil || !cmd.ArrivalDate.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected arrival date: %v", cmd.ArrivalDate)
	}
}
