package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"os_service_api/internal/domain/entities"
	"os_service_api/internal/events"
	"os_service_api/internal/usecase/interfaces"
	"os_service_api/pkg/eventbus"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound      = errors.New("service order not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrTechnicianNotFound = errors.New("technician not found")
	ErrUnknownStatus      = errors.New("unknown status")
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrInvalidClientID    = errors.New("invalid client id")
)

// CreateOrderCommand carries the intake fields. Descriptive fields are fixed
// at creation; everything else flows through Update.
type CreateOrderCommand struct {
	ClientID            string
	TechnicianID        string
	EquipmentType       string
	Brand               string
	Model               string
	SerialNumber        string
	ReportedDefect      string
	ReceivedAccessories string
	ArrivalDate         *time.Time
	CreatedByID         string
}

// UpdateOrderCommand is the partial-update payload: nil means "leave the
// field alone". BudgetItems arrives as raw decoded JSON and goes through the
// sanitizer before persistence.
type UpdateOrderCommand struct {
	ClientID     *string
	TechnicianID *string

	EquipmentType       *string
	Brand               *string
	Model               *string
	SerialNumber        *string
	ReportedDefect      *string
	ReceivedAccessories *string

	BudgetNote           *string
	TechnicalExplanation *string
	BudgetItems          *[]map[string]any

	Price *float64
	Cost  *float64

	Status *string

	ArrivalDate    *time.Time
	OpeningDate    *time.Time
	CompletionDate *time.Time
	DeliveryDate   *time.Time
	PaymentDate    *time.Time
}

// ServiceOrderDetails is an order with its resolved client/technician
// summaries, as returned by every read path.
type ServiceOrderDetails struct {
	Order      entities.ServiceOrder
	Client     entities.Client
	Technician entities.Technician
}

// IServiceOrderUseCase exposes the service-order lifecycle operations.

type IServiceOrderUseCase interface {
	Create(ctx context.Context, cmd CreateOrderCommand) (ServiceOrderDetails, error)
	GetByID(ctx context.Context, id string) (ServiceOrderDetails, error)
	List(ctx context.Context) ([]ServiceOrderDetails, error)
	Update(ctx context.Context, id string, cmd UpdateOrderCommand) (ServiceOrderDetails, error)
	Delete(ctx context.Context, id string) error
}

type ServiceOrderUseCase struct {
	repo       interfaces.IServiceOrderRepository
	sequence   interfaces.IOrderSequence
	clientRepo interfaces.IClientRepository
	techRepo   interfaces.ITechnicianRepository
	validator  *TransitionValidator
	bus        *eventbus.Bus
	logger     *zap.Logger
	now        func() time.Time
}

var _ IServiceOrderUseCase = (*ServiceOrderUseCase)(nil)

func NewServiceOrderUseCase(
	repo interfaces.IServiceOrderRepository,
	sequence interfaces.IOrderSequence,
	clientRepo interfaces.IClientRepository,
	techRepo interfaces.ITechnicianRepository,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{
		repo:       repo,
		sequence:   sequence,
		clientRepo: clientRepo,
		techRepo:   techRepo,
		validator:  NewTransitionValidator(),
		bus:        bus,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a new order: SEM_VER, openingDate = now, order number drawn
// from the atomic yearly sequence.
func (u *ServiceOrderUseCase) Create(ctx context.Context, cmd CreateOrderCommand) (ServiceOrderDetails, error) {
	clientID := strings.TrimSpace(cmd.ClientID)
	if clientID == "" {
		return ServiceOrderDetails{}, ErrInvalidClientID
	}

	client, err := u.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return ServiceOrderDetails{}, err
	}
	if client.ID == "" {
		return ServiceOrderDetails{}, ErrClientNotFound
	}

	technicianID := strings.TrimSpace(cmd.TechnicianID)
	var technician entities.Technician
	if technicianID != "" {
		technician, err = u.techRepo.GetByID(ctx, technicianID)
		if err != nil {
			return ServiceOrderDetails{}, err
		}
		if technician.ID == "" {
			return ServiceOrderDetails{}, ErrTechnicianNotFound
		}
	}

	now := u.now()
	seq, err := u.sequence.Next(ctx, now.Year())
	if err != nil {
		return ServiceOrderDetails{}, err
	}

	opening := now
	o := entities.ServiceOrder{
		ID:                  uuid.NewString(),
		OrderNumber:         fmt.Sprintf("OS-%d-%d", now.Year(), seq),
		ClientID:            clientID,
		TechnicianID:        technicianID,
		Status:              entities.OrderStatusSemVer,
		EquipmentType:       strings.TrimSpace(cmd.EquipmentType),
		Brand:               strings.TrimSpace(cmd.Brand),
		Model:               strings.TrimSpace(cmd.Model),
		SerialNumber:        strings.TrimSpace(cmd.SerialNumber),
		ReportedDefect:      cmd.ReportedDefect,
		ReceivedAccessories: cmd.ReceivedAccessories,
		ArrivalDate:         cmd.ArrivalDate,
		OpeningDate:         &opening,
		CreatedByID:         strings.TrimSpace(cmd.CreatedByID),
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		return ServiceOrderDetails{}, err
	}
	u.logger.Info("service order opened",
		zap.String("order_id", created.ID),
		zap.String("order_number", created.OrderNumber),
	)
	return ServiceOrderDetails{Order: created, Client: client, Technician: technician}, nil
}

func (u *ServiceOrderUseCase) GetByID(ctx context.Context, id string) (ServiceOrderDetails, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ServiceOrderDetails{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return ServiceOrderDetails{}, err
	}
	if o.ID == "" {
		return ServiceOrderDetails{}, ErrOrderNotFound
	}
	return u.resolveDetails(ctx, o)
}

func (u *ServiceOrderUseCase) List(ctx context.Context) ([]ServiceOrderDetails, error) {
	orders, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]ServiceOrderDetails, 0, len(orders))
	for _, o := range orders {
		d, err := u.resolveDetails(ctx, o)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// Update applies a partial update to an order: referential checks, status
// transition validation, budget-item sanitation, auto-date side effects, and
// an optimistic-concurrency write. A successful status change is announced on
// the event bus after the write commits.
func (u *ServiceOrderUseCase) Update(ctx context.Context, id string, cmd UpdateOrderCommand) (ServiceOrderDetails, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ServiceOrderDetails{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return ServiceOrderDetails{}, err
	}
	if o.ID == "" {
		return ServiceOrderDetails{}, ErrOrderNotFound
	}
	loadedVersion := o.Version
	oldStatus := o.Status

	if cmd.ClientID != nil {
		clientID := strings.TrimSpace(*cmd.ClientID)
		if clientID == "" {
			return ServiceOrderDetails{}, ErrInvalidClientID
		}
		client, err := u.clientRepo.GetByID(ctx, clientID)
		if err != nil {
			return ServiceOrderDetails{}, err
		}
		if client.ID == "" {
			return ServiceOrderDetails{}, ErrClientNotFound
		}
		o.ClientID = clientID
	}

	if cmd.TechnicianID != nil {
		technicianID := strings.TrimSpace(*cmd.TechnicianID)
		if technicianID != "" {
			technician, err := u.techRepo.GetByID(ctx, technicianID)
			if err != nil {
				return ServiceOrderDetails{}, err
			}
			if technician.ID == "" {
				return ServiceOrderDetails{}, ErrTechnicianNotFound
			}
		}
		o.TechnicianID = technicianID
	}

	applyString(&o.EquipmentType, cmd.EquipmentType)
	applyString(&o.Brand, cmd.Brand)
	applyString(&o.Model, cmd.Model)
	applyString(&o.SerialNumber, cmd.SerialNumber)
	applyString(&o.ReportedDefect, cmd.ReportedDefect)
	applyString(&o.ReceivedAccessories, cmd.ReceivedAccessories)
	applyString(&o.BudgetNote, cmd.BudgetNote)

	if cmd.TechnicalExplanation != nil && *cmd.TechnicalExplanation != o.TechnicalExplanation {
		if oldStatus == entities.OrderStatusAprovado {
			return ServiceOrderDetails{}, newBusinessRuleError(
				"A explicação técnica não pode ser alterada após a aprovação do orçamento.")
		}
		o.TechnicalExplanation = *cmd.TechnicalExplanation
	}

	if cmd.BudgetItems != nil {
		o.BudgetItems = entities.SanitizeBudgetItems(*cmd.BudgetItems)
	}
	if cmd.Price != nil {
		o.Price = cmd.Price
	}
	if cmd.Cost != nil {
		o.Cost = cmd.Cost
	}

	applyDate(&o.ArrivalDate, cmd.ArrivalDate)
	applyDate(&o.OpeningDate, cmd.OpeningDate)
	applyDate(&o.CompletionDate, cmd.CompletionDate)
	applyDate(&o.DeliveryDate, cmd.DeliveryDate)
	applyDate(&o.PaymentDate, cmd.PaymentDate)

	if cmd.Status != nil {
		target, ok := entities.ParseOrderStatus(strings.TrimSpace(*cmd.Status))
		if !ok {
			return ServiceOrderDetails{}, ErrUnknownStatus
		}

		effects, err := u.validator.Validate(TransitionRequest{
			Current:        oldStatus,
			Target:         target,
			TechnicianID:   o.TechnicianID,
			CompletionDate: o.CompletionDate,
			DeliveryDate:   o.DeliveryDate,
		})
		if err != nil {
			return ServiceOrderDetails{}, err
		}
		if effects.CompletionDate != nil {
			o.CompletionDate = effects.CompletionDate
		}
		if effects.DeliveryDate != nil {
			o.DeliveryDate = effects.DeliveryDate
		}
		o.Status = target
	} else if o.Status.RequiresTechnician() && o.TechnicianID == "" {
		// Without a status change the validator never runs, but the stored
		// status still demands a technician; an update may not clear it.
		return ServiceOrderDetails{}, newBusinessRuleError(
			"Para mover para %s é necessário atribuir um técnico.", o.Status.Label())
	}

	o.UpdatedAt = u.now()
	updated, err := u.repo.Update(ctx, o, loadedVersion)
	if err != nil {
		return ServiceOrderDetails{}, err
	}

	if updated.Status != oldStatus {
		u.bus.Publish(ctx, events.OrderStatusChangedEvent{
			OrderID:     updated.ID,
			OrderNumber: updated.OrderNumber,
			OldStatus:   oldStatus,
			NewStatus:   updated.Status,
		})
		u.logger.Info("service order status changed",
			zap.String("order_id", updated.ID),
			zap.String("order_number", updated.OrderNumber),
			zap.String("old_status", string(oldStatus)),
			zap.String("new_status", string(updated.Status)),
		)
	}

	return u.resolveDetails(ctx, updated)
}

// Delete removes an order. Terminated orders are kept for the shop's records
// and may never be deleted.
func (u *ServiceOrderUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.ID == "" {
		return ErrOrderNotFound
	}
	if o.Status == entities.OrderStatusTerminado {
		return newBusinessRuleError("Uma OS terminada não pode ser excluída.")
	}
	return u.repo.Delete(ctx, id)
}

func (u *ServiceOrderUseCase) resolveDetails(ctx context.Context, o entities.ServiceOrder) (ServiceOrderDetails, error) {
	d := ServiceOrderDetails{Order: o}

	if o.ClientID != "" {
		client, err := u.clientRepo.GetByID(ctx, o.ClientID)
		if err != nil {
			return ServiceOrderDetails{}, err
		}
		d.Client = client
	}
	if o.TechnicianID != "" {
		technician, err := u.techRepo.GetByID(ctx, o.TechnicianID)
		if err != nil {
			return ServiceOrderDetails{}, err
		}
		d.Technician = technician
	}
	return d, nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func applyDate(dst **time.Time, v *time.Time) {
	if v != nil {
		*dst = v
	}
}
