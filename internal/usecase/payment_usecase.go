package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"os_service_api/internal/domain/entities"
	"os_service_api/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrInvalidPaymentPayload  = errors.New("invalid payment payload")
	ErrOrderNotApproved       = errors.New("service order budget not approved")
	ErrNoChargeableAmount     = errors.New("service order has no chargeable amount")
	ErrPaymentGatewayRejected = errors.New("payment gateway rejected the charge")
)

// IPaymentUseCase charges an approved service-order budget and records the
// outcome.
//
// The amount is never taken from the caller: the source of truth is the
// budget-item total (or the legacy aggregate price) stored on the order.

type IPaymentUseCase interface {
	ChargeOrder(ctx context.Context, orderID string, providerPayload json.RawMessage) (entities.Payment, error)
	GetLatestByOrderID(ctx context.Context, orderID string) (entities.Payment, error)
}

type PaymentUseCase struct {
	repo      interfaces.IPaymentRepository
	orderRepo interfaces.IServiceOrderRepository
	gateway   interfaces.IPaymentGateway
	logger    *zap.Logger
	now       func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	orderRepo interfaces.IServiceOrderRepository,
	gateway interfaces.IPaymentGateway,
	logger *zap.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		repo:      repo,
		orderRepo: orderRepo,
		gateway:   gateway,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ChargeOrder creates the provider payment for an approved order, persists
// the receipt and stamps paymentDate on the order.
func (u *PaymentUseCase) ChargeOrder(ctx context.Context, orderID string, providerPayload json.RawMessage) (entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}
	if len(providerPayload) == 0 {
		providerPayload = json.RawMessage("{}")
	}
	if !json.Valid(providerPayload) {
		return entities.Payment{}, ErrInvalidPaymentPayload
	}
	if u.gateway == nil {
		return entities.Payment{}, errors.New("payment gateway not configured")
	}

	o, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return entities.Payment{}, err
	}
	if o.ID == "" {
		return entities.Payment{}, ErrOrderNotFound
	}
	if o.Status != entities.OrderStatusAprovado {
		return entities.Payment{}, ErrOrderNotApproved
	}

	amount := chargeableAmount(o)
	if amount <= 0 {
		return entities.Payment{}, ErrNoChargeableAmount
	}

	payload, err := enrichProviderPayload(providerPayload, o, amount)
	if err != nil {
		return entities.Payment{}, ErrInvalidPaymentPayload
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		u.logger.Error("payment gateway failed",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		return entities.Payment{}, err
	}
	if providerStatus != "approved" {
		u.logger.Warn("payment not approved by provider",
			zap.String("order_id", o.ID),
			zap.String("provider_status", providerStatus),
		)
		return entities.Payment{}, ErrPaymentGatewayRejected
	}

	var parsed map[string]any
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		parsed = nil
	}

	now := u.now()
	p := entities.Payment{
		ID:                 providerPaymentID,
		OrderID:            o.ID,
		Date:               now,
		Status:             entities.PaymentStatusAprovado,
		Amount:             amount,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return entities.Payment{}, err
	}

	if o.PaymentDate == nil {
		if err := u.orderRepo.StampPaymentDate(ctx, o.ID, now); err != nil {
			// The charge already went through; keep the receipt and let the
			// stamp be corrected manually.
			u.logger.Error("failed stamping payment date",
				zap.String("order_id", o.ID),
				zap.String("payment_id", created.ID),
				zap.Error(err),
			)
		}
	}

	u.logger.Info("payment approved",
		zap.String("order_id", o.ID),
		zap.String("payment_id", created.ID),
		zap.Float64("amount", amount),
	)
	return created, nil
}

func (u *PaymentUseCase) GetLatestByOrderID(ctx context.Context, orderID string) (entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}

	payments, err := u.repo.ListByOrderID(ctx, orderID)
	if err != nil {
		return entities.Payment{}, err
	}
	if len(payments) == 0 {
		return entities.Payment{}, ErrPaymentNotFound
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	return latest, nil
}

// chargeableAmount prefers the itemized budget total and falls back to the
// legacy aggregate price for pre-itemization orders.
func chargeableAmount(o entities.ServiceOrder) float64 {
	if totals := o.BudgetTotals(); totals.TotalPrice > 0 {
		return totals.TotalPrice
	}
	if o.Price != nil {
		return *o.Price
	}
	return 0
}

// enrichProviderPayload links the charge back to the order and pins the
// amount to the stored budget total.
func enrichProviderPayload(payload json.RawMessage, o entities.ServiceOrder, amount float64) (json.RawMessage, error) {
	var req map[string]any
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, err
	}

	if _, ok := req["external_reference"]; !ok {
		req["external_reference"] = o.OrderNumber
	}
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Ordem de serviço %s", o.OrderNumber)
	}
	req["transaction_amount"] = amount

	return json.Marshal(req)
}
