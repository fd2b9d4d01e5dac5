package entities

import "testing"

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.IsValid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}

	for _, raw := range []string{"", "FOO", "sem_ver", "Aprovado", "TERMINADO "} {
		if OrderStatus(raw).IsValid() {
			t.Fatalf("expected %q to be invalid", raw)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	s, ok := ParseOrderStatus("ESPERANDO_PECAS")
	if !ok || s != OrderStatusEsperandoPecas {
		t.Fatalf("expected ESPERANDO_PECAS, got %q ok=%v", s, ok)
	}

	if _, ok := ParseOrderStatus("esperando_pecas"); ok {
		t.Fatalf("expected case-sensitive matching to reject lowercase")
	}
	if _, ok := ParseOrderStatus("APROVADA"); ok {
		t.Fatalf("expected unknown value to be rejected")
	}
}

func TestOrderStatus_SemVerTransitions(t *testing.T) {
	allowed := map[OrderStatus]bool{
		OrderStatusSemVer:     true, // identity
		OrderStatusOrcamentar: true,
		OrderStatusDevolvido:  true,
		OrderStatusDescarte:   true,
	}

	for _, target := range AllStatuses() {
		got := OrderStatusSemVer.CanTransitionTo(target)
		if got != allowed[target] {
			t.Fatalf("SEM_VER -> %s: expected %v, got %v", target, allowed[target], got)
		}
	}
}

func TestOrderStatus_IdentityTransitionAlwaysAllowed(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.CanTransitionTo(s) {
			t.Fatalf("expected identity transition for %s", s)
		}
	}
}

func TestOrderStatus_BudgetingTransitions(t *testing.T) {
	if OrderStatusOrcamentar.CanTransitionTo(OrderStatusTerminado) {
		t.Fatalf("ORCAMENTAR -> TERMINADO must be rejected")
	}
	if !OrderStatusOrcamentar.CanTransitionTo(OrderStatusAprovado) {
		t.Fatalf("ORCAMENTAR -> APROVADO must be allowed")
	}
	if OrderStatusAprovado.CanTransitionTo(OrderStatusOrcamentar) {
		t.Fatalf("APROVADO -> ORCAMENTAR must be rejected")
	}
	if !OrderStatusAprovado.CanTransitionTo(OrderStatusEsperandoPecas) {
		t.Fatalf("APROVADO -> ESPERANDO_PECAS must be allowed")
	}

	// Workshop statuses stay open for administrative moves.
	if !OrderStatusComprado.CanTransitionTo(OrderStatusTerminado) {
		t.Fatalf("COMPRADO -> TERMINADO must be allowed")
	}
	if !OrderStatusEsperandoCliente.CanTransitionTo(OrderStatusDevolvido) {
		t.Fatalf("ESPERANDO_CLIENTE -> DEVOLVIDO must be allowed")
	}
}

func TestOrderStatus_UnknownStatusNeverTransitions(t *testing.T) {
	if OrderStatus("FOO").CanTransitionTo(OrderStatusOrcamentar) {
		t.Fatalf("unknown source must not transition")
	}
	if OrderStatusSemVer.CanTransitionTo(OrderStatus("FOO")) {
		t.Fatalf("unknown target must not be reachable")
	}
}

func TestOrderStatus_RequiresTechnician(t *testing.T) {
	for _, s := range AllStatuses() {
		want := s == OrderStatusAprovado || s == OrderStatusMelhorar
		if s.RequiresTechnician() != want {
			t.Fatalf("RequiresTechnician(%s): expected %v", s, want)
		}
	}
}

func TestOrderStatus_Label(t *testing.T) {
	if OrderStatusOrcamentar.Label() != "Orçamentar" {
		t.Fatalf("unexpected label: %s", OrderStatusOrcamentar.Label())
	}
	if OrderStatus("FOO").Label() != "FOO" {
		t.Fatalf("unknown status should fall back to its raw value")
	}
}
