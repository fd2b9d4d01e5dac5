package entities

import (
	"math"
	"strconv"
	"strings"
)

// BudgetItemType distinguishes parts from labor on a budget line.
type BudgetItemType string

const (
	BudgetItemTypePeca    BudgetItemType = "PECA"
	BudgetItemTypeServico BudgetItemType = "SERVICO"
)

// BudgetItem is a priced line (part or service) on a service-order budget.
//
// Wire shape notes:
//   - UnitPrice nil means "not specified; charge the cost". An explicit JSON
//     null carries the same pricing semantics and is folded into nil.
//   - EstimatedDays travels as "estimatedHours" for compatibility with the
//     legacy web client, but the business reads it as days.
//
// Line totals are always computed, never stored pre-multiplied.

type BudgetItem struct {
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Quantity      float64  `json:"quantity"`
	UnitCost      float64  `json:"unitCost"`
	UnitPrice     *float64 `json:"unitPrice,omitempty"`
	EstimatedDays *float64 `json:"estimatedHours,omitempty"`
}

// EffectiveUnitPrice is the price charged per unit: UnitPrice when provided,
// otherwise the unit cost.
func (i BudgetItem) EffectiveUnitPrice() float64 {
	if i.UnitPrice != nil {
		return *i.UnitPrice
	}
	return i.UnitCost
}

// LineTotal is quantity times the effective unit price.
func (i BudgetItem) LineTotal() float64 {
	return i.Quantity * i.EffectiveUnitPrice()
}

// SanitizeBudgetItems normalizes raw decoded JSON objects into canonical
// budget items.
//
// The function is deliberately lenient: shop fronts have historically sent
// half-filled rows, and a malformed element must never abort the whole batch.
// Numeric fields fall back to 0, type/title to the empty string. It never
// fails; shape validation ("budgetItems must be a sequence") happens upstream
// at request binding.
func SanitizeBudgetItems(raw []map[string]any) []BudgetItem {
	items := make([]BudgetItem, 0, len(raw))
	for _, el := range raw {
		items = append(items, sanitizeBudgetItem(el))
	}
	return items
}

func sanitizeBudgetItem(el map[string]any) BudgetItem {
	item := BudgetItem{
		Type:     coerceString(el["type"]),
		Title:    coerceString(firstPresent(el, "title", "description")),
		Quantity: coerceNumber(el["quantity"]),
		UnitCost: coerceNumber(el["unitCost"]),
	}

	// unitPrice and estimatedHours keep their "absent vs provided"
	// distinction: the keys only appear in the output when the caller sent
	// them, and an unparseable unitPrice falls back to cost-based pricing.
	if v, ok := el["unitPrice"]; ok {
		if n, valid := tryNumber(v); valid {
			item.UnitPrice = &n
		}
	}
	if _, ok := el["estimatedHours"]; ok {
		n := coerceNumber(el["estimatedHours"])
		item.EstimatedDays = &n
	}
	return item
}

func firstPresent(el map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := el[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}

// coerceNumber mirrors the legacy front-end coercion: anything that does not
// parse as a finite, non-negative number becomes 0.
func coerceNumber(v any) float64 {
	n, ok := tryNumber(v)
	if !ok {
		return 0
	}
	return n
}

func tryNumber(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return n, true
}

// BudgetTotals aggregates the priced lines of an order. ProfitPerDay is the
// technician efficiency metric shown next to every budget.
type BudgetTotals struct {
	TotalPrice         float64 `json:"totalPrice"`
	TotalCost          float64 `json:"totalCost"`
	TotalEstimatedDays float64 `json:"totalEstimatedDays"`
	Profit             float64 `json:"profit"`
	ProfitPerDay       float64 `json:"profitPerDay"`
}

// ComputeBudgetTotals derives the aggregate figures from sanitized items.
// All arithmetic stays in full float64 precision; rounding to two decimals is
// a presentation concern and happens at the HTTP boundary only.
func ComputeBudgetTotals(items []BudgetItem) BudgetTotals {
	var totals BudgetTotals
	for _, it := range items {
		totals.TotalPrice += it.LineTotal()
		totals.TotalCost += it.Quantity * it.UnitCost
		if it.EstimatedDays != nil {
			totals.TotalEstimatedDays += *it.EstimatedDays
		}
	}
	totals.Profit = totals.TotalPrice - totals.TotalCost
	if totals.TotalEstimatedDays > 0 {
		totals.ProfitPerDay = totals.Profit / totals.TotalEstimatedDays
	}
	return totals
}
