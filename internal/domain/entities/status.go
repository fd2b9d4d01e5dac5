package entities

// OrderStatus represents the lifecycle state of a service order (OS).
//
// Domain notes:
//   - The os-service-api is the source of truth for OS state.
//   - Wire values are the exact uppercase strings used by the web client and
//     must round-trip unchanged through the API.
type OrderStatus string

const (
	OrderStatusSemVer           OrderStatus = "SEM_VER"
	OrderStatusOrcamentar       OrderStatus = "ORCAMENTAR"
	OrderStatusAprovado         OrderStatus = "APROVADO"
	OrderStatusEsperandoPecas   OrderStatus = "ESPERANDO_PECAS"
	OrderStatusComprado         OrderStatus = "COMPRADO"
	OrderStatusMelhorar         OrderStatus = "MELHORAR"
	OrderStatusTerminado        OrderStatus = "TERMINADO"
	OrderStatusSemProblema      OrderStatus = "SEM_PROBLEMA"
	OrderStatusSemConserto      OrderStatus = "SEM_CONSERTO"
	OrderStatusDevolver         OrderStatus = "DEVOLVER"
	OrderStatusDevolvido        OrderStatus = "DEVOLVIDO"
	OrderStatusDescarte         OrderStatus = "DESCARTE"
	OrderStatusVendido          OrderStatus = "VENDIDO"
	OrderStatusEsperandoCliente OrderStatus = "ESPERANDO_CLIENTE"
)

// statusLabels maps each status to its human display label (pt-BR).
var statusLabels = map[OrderStatus]string{
	OrderStatusSemVer:           "Sem ver",
	OrderStatusOrcamentar:       "Orçamentar",
	OrderStatusAprovado:         "Aprovado",
	OrderStatusEsperandoPecas:   "Esperando peças",
	OrderStatusComprado:         "Comprado",
	OrderStatusMelhorar:         "Melhorar",
	OrderStatusTerminado:        "Terminado",
	OrderStatusSemProblema:      "Sem problema",
	OrderStatusSemConserto:      "Sem conserto",
	OrderStatusDevolver:         "Devolver",
	OrderStatusDevolvido:        "Devolvido",
	OrderStatusDescarte:         "Descarte",
	OrderStatusVendido:          "Vendido",
	OrderStatusEsperandoCliente: "Esperando cliente",
}

// orderedStatuses keeps a stable listing order for AllStatuses and for the
// "unrestricted" transition rows below.
var orderedStatuses = []OrderStatus{
	OrderStatusSemVer,
	OrderStatusOrcamentar,
	OrderStatusAprovado,
	OrderStatusEsperandoPecas,
	OrderStatusComprado,
	OrderStatusMelhorar,
	OrderStatusTerminado,
	OrderStatusSemProblema,
	OrderStatusSemConserto,
	OrderStatusDevolver,
	OrderStatusDevolvido,
	OrderStatusDescarte,
	OrderStatusVendido,
	OrderStatusEsperandoCliente,
}

// AllStatuses returns every known status in display order.
func AllStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderedStatuses))
	copy(out, orderedStatuses)
	return out
}

// IsValid reports whether s is one of the fourteen known statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label for the status, or the raw value when the
// status is unknown.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseOrderStatus validates a wire value. The zero status and ok=false are
// returned for anything outside the catalog; matching is case-sensitive.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(raw)
	if !s.IsValid() {
		return "", false
	}
	return s, true
}

// transitionTable is the single server-side authority over which target
// statuses each source status accepts. The intake status and the two
// budgeting statuses carry the constrained sets used by the shop; every other
// row stays open so that administrators can move orders freely between the
// workshop statuses.
var transitionTable = map[OrderStatus][]OrderStatus{
	OrderStatusSemVer: {
		OrderStatusOrcamentar,
		OrderStatusDevolvido,
		OrderStatusDescarte,
	},
	OrderStatusOrcamentar: {
		OrderStatusAprovado,
		OrderStatusSemConserto,
		OrderStatusDevolvido,
		OrderStatusDescarte,
	},
	OrderStatusAprovado: {
		OrderStatusEsperandoPecas,
		OrderStatusSemConserto,
		OrderStatusDevolvido,
		OrderStatusDescarte,
	},
	OrderStatusEsperandoPecas:   orderedStatuses,
	OrderStatusComprado:         orderedStatuses,
	OrderStatusMelhorar:         orderedStatuses,
	OrderStatusTerminado:        orderedStatuses,
	OrderStatusSemProblema:      orderedStatuses,
	OrderStatusSemConserto:      orderedStatuses,
	OrderStatusDevolver:         orderedStatuses,
	OrderStatusDevolvido:        orderedStatuses,
	OrderStatusDescarte:         orderedStatuses,
	OrderStatusVendido:          orderedStatuses,
	OrderStatusEsperandoCliente: orderedStatuses,
}

// CanTransitionTo reports whether the status may move to target. Keeping the
// current status is always allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	if s == target {
		return true
	}
	for _, allowed := range transitionTable[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedNext returns the target statuses reachable from s, excluding the
// identity transition.
func (s OrderStatus) AllowedNext() []OrderStatus {
	allowed := transitionTable[s]
	out := make([]OrderStatus, 0, len(allowed))
	for _, next := range allowed {
		if next != s {
			out = append(out, next)
		}
	}
	return out
}

// RequiresTechnician reports whether moving an order into s demands an
// assigned technician. Depended upon by document generation downstream.
func (s OrderStatus) RequiresTechnician() bool {
	return s == OrderStatusAprovado || s == OrderStatusMelhorar
}
