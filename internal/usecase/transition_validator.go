package usecase

import (
	"fmt"
	"strings"
	"time"

	"os_service_api/internal/domain/entities"
)

// BusinessRuleError carries the human-readable wording shown to the shop
// front when a lifecycle rule blocks an update.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

func newBusinessRuleError(format string, args ...any) error {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

// TransitionRequest is everything the validator needs to judge one requested
// status change: the stored order state plus the values resolved from the
// incoming update.
type TransitionRequest struct {
	Current entities.OrderStatus
	Target  entities.OrderStatus

	// TechnicianID is the technician that would be assigned after the update
	// (the request value when supplied, otherwise the stored one).
	TechnicianID string

	// CompletionDate/DeliveryDate likewise reflect the post-update values
	// before side effects are applied.
	CompletionDate *time.Time
	DeliveryDate   *time.Time
}

// TransitionEffects are the dates the validator stamps as transition side
// effects. Nil fields mean "leave as is".
type TransitionEffects struct {
	CompletionDate *time.Time
	DeliveryDate   *time.Time
}

// TransitionValidator enforces the status state machine: the transition
// table, the technician guards, and the auto-date side effects. It is pure
// apart from the injected clock.
type TransitionValidator struct {
	now func() time.Time
}

func NewTransitionValidator() *TransitionValidator {
	return &TransitionValidator{now: func() time.Time { return time.Now().UTC() }}
}

// NewTransitionValidatorWithClock is used by tests that need a fixed "now".
func NewTransitionValidatorWithClock(now func() time.Time) *TransitionValidator {
	return &TransitionValidator{now: now}
}

// Validate judges the requested transition. The returned effects are only
// meaningful on success.
//
// Guards (applied whenever the target status is being set, regardless of the
// source):
//   - APROVADO and MELHORAR demand an assigned technician.
//   - the first move to TERMINADO stamps completionDate, the first move to
//     DEVOLVIDO stamps deliveryDate; existing dates are never overwritten.
func (v *TransitionValidator) Validate(req TransitionRequest) (TransitionEffects, error) {
	if !req.Current.CanTransitionTo(req.Target) {
		return TransitionEffects{}, newBusinessRuleError(
			"Do estado %s só pode mudar para %s",
			req.Current.Label(), labelList(req.Current.AllowedNext()),
		)
	}

	if req.Target.RequiresTechnician() && req.TechnicianID == "" {
		return TransitionEffects{}, newBusinessRuleError(
			"Para mover para %s é necessário atribuir um técnico.", req.Target.Label(),
		)
	}

	var effects TransitionEffects
	if req.Target == entities.OrderStatusTerminado && req.CompletionDate == nil {
		t := v.now()
		effects.CompletionDate = &t
	}
	if req.Target == entities.OrderStatusDevolvido && req.DeliveryDate == nil {
		t := v.now()
		effects.DeliveryDate = &t
	}
	return effects, nil
}

// labelList renders status labels as "A, B ou C" for business-rule messages.
func labelList(statuses []entities.OrderStatus) string {
	labels := make([]string, len(statuses))
	for i, s := range statuses {
		labels[i] = s.Label()
	}
	switch len(labels) {
	case 0:
		return "nenhum outro estado"
	case 1:
		return labels[0]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + " ou " + labels[len(labels)-1]
	}
}
