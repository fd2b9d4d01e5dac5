package entities

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestSanitizeBudgetItems(t *testing.T) {
	t.Run("coerces numeric strings and trims whitespace", func(t *testing.T) {
		items := SanitizeBudgetItems([]map[string]any{
			{"type": "PECA", "title": "Correia", "quantity": " 2 ", "unitCost": "12.5"},
		})
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		got := items[0]
		if got.Quantity != 2 || got.UnitCost != 12.5 {
			t.Fatalf("unexpected coercion: %+v", got)
		}
		if got.UnitPrice != nil || got.EstimatedDays != nil {
			t.Fatalf("absent optional fields must stay nil: %+v", got)
		}
	})

	t.Run("falls back to description when title is missing", func(t *testing.T) {
		items := SanitizeBudgetItems([]map[string]any{
			{"type": "SERVICO", "description": "Troca de óleo", "quantity": 1.0, "unitCost": 30.0},
		})
		if items[0].Title != "Troca de óleo" {
			t.Fatalf("expected description fallback, got %q", items[0].Title)
		}
	})

	t.Run("invalid numbers become zero", func(t *testing.T) {
		items := SanitizeBudgetItems([]map[string]any{
			{"quantity": "abc", "unitCost": -3.0},
			{"quantity": math.NaN(), "unitCost": math.Inf(1)},
			{"quantity": true, "unitCost": nil},
		})
		for i, it := range items {
			if it.Quantity != 0 || it.UnitCost != 0 {
				t.Fatalf("element %d: expected zeros, got %+v", i, it)
			}
		}
	})

	t.Run("explicit null unitPrice folds into cost-based pricing", func(t *testing.T) {
		items := SanitizeBudgetItems([]map[string]any{
			{"quantity": 2.0, "unitCost": 10.0, "unitPrice": nil},
			{"quantity": 2.0, "unitCost": 10.0, "unitPrice": 15.0},
			{"quantity": 2.0, "unitCost": 10.0, "unitPrice": "bogus"},
		})
		if items[0].UnitPrice != nil {
			t.Fatalf("null unitPrice must stay nil")
		}
		if items[1].UnitPrice == nil || *items[1].UnitPrice != 15 {
			t.Fatalf("numeric unitPrice must be kept: %+v", items[1])
		}
		if items[2].UnitPrice != nil {
			t.Fatalf("unparseable unitPrice must fall back to nil")
		}
		if items[0].EffectiveUnitPrice() != 10 || items[1].EffectiveUnitPrice() != 15 {
			t.Fatalf("effective unit price wrong: %v / %v",
				items[0].EffectiveUnitPrice(), items[1].EffectiveUnitPrice())
		}
	})

	t.Run("estimatedHours is kept when present even if invalid", func(t *testing.T) {
		items := SanitizeBudgetItems([]map[string]any{
			{"estimatedHours": 2.5},
			{"estimatedHours": "junk"},
			{"title": "sem prazo"},
		})
		if items[0].EstimatedDays == nil || *items[0].EstimatedDays != 2.5 {
			t.Fatalf("expected estimated days 2.5: %+v", items[0])
		}
		if items[1].EstimatedDays == nil || *items[1].EstimatedDays != 0 {
			t.Fatalf("invalid estimate must coerce to 0: %+v", items[1])
		}
		if items[2].EstimatedDays != nil {
			t.Fatalf("absent estimate must stay nil: %+v", items[2])
		}
	})

	t.Run("sanitizing is a fixed point", func(t *testing.T) {
		first := SanitizeBudgetItems([]map[string]any{
			{"type": "PECA", "title": "Filtro", "quantity": "3", "unitCost": 7.0, "unitPrice": 9.0, "estimatedHours": "x"},
			{"description": "Mão de obra", "quantity": -1.0, "unitCost": "50"},
		})

		// Round-trip through JSON the way a client echoing the stored order
		// back on update would.
		encoded, err := json.Marshal(first)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var raw []map[string]any
		if err := json.Unmarshal(encoded, &raw); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		second := SanitizeBudgetItems(raw)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("sanitize is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
		}
	})
}

func TestComputeBudgetTotals(t *testing.T) {
	t.Run("aggregates price, cost and profit", func(t *testing.T) {
		items := []BudgetItem{
			{Type: "PECA", Quantity: 2, UnitCost: 10, UnitPrice: floatPtr(15)},
			{Type: "SERVICO", Quantity: 1, UnitCost: 5, EstimatedDays: floatPtr(2)},
		}
		totals := ComputeBudgetTotals(items)
		if totals.TotalPrice != 35 {
			t.Fatalf("expected totalPrice 35, got %v", totals.TotalPrice)
		}
		if totals.TotalCost != 25 {
			t.Fatalf("expected totalCost 25, got %v", totals.TotalCost)
		}
		if totals.Profit != 10 {
			t.Fatalf("expected profit 10, got %v", totals.Profit)
		}
		if totals.TotalEstimatedDays != 2 {
			t.Fatalf("expected 2 estimated days, got %v", totals.TotalEstimatedDays)
		}
		if totals.ProfitPerDay != 5 {
			t.Fatalf("expected profitPerDay 5, got %v", totals.ProfitPerDay)
		}
	})

	t.Run("profit per day is zero without estimated days", func(t *testing.T) {
		totals := ComputeBudgetTotals([]BudgetItem{
			{Quantity: 1, UnitCost: 10, UnitPrice: floatPtr(20)},
		})
		if totals.ProfitPerDay != 0 {
			t.Fatalf("expected profitPerDay 0, got %v", totals.ProfitPerDay)
		}
	})

	t.Run("empty budget yields zero totals", func(t *testing.T) {
		totals := ComputeBudgetTotals(nil)
		if totals != (BudgetTotals{}) {
			t.Fatalf("expected zero totals, got %+v", totals)
		}
	})
}
