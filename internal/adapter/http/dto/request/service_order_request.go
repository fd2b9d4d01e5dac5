package request

import (
	"fmt"
	"strings"
	"time"

	"os_service_api/internal/usecase"
)

// CreateServiceOrderRequest is the intake payload. Only the client is
// mandatory; everything about the equipment may be filled in later.
type CreateServiceOrderRequest struct {
	ClientID            string  `json:"clientId" binding:"required"`
	TechnicianID        string  `json:"technicianId"`
	EquipmentType       string  `json:"equipmentType"`
	Brand               string  `json:"brand"`
	Model               string  `json:"model"`
	SerialNumber        string  `json:"serialNumber"`
	ReportedDefect      string  `json:"reportedDefect"`
	ReceivedAccessories string  `json:"receivedAccessories"`
	ArrivalDate         *string `json:"arrivalDate"`
	CreatedByID         string  `json:"createdById"`
}

// ToCommand converts the payload, collecting field-level problems into
// details for the validation error body.
func (r CreateServiceOrderRequest) ToCommand() (usecase.CreateOrderCommand, []string) {
	var details []string

	cmd := usecase.CreateOrderCommand{
		ClientID:            r.ClientID,
		TechnicianID:        r.TechnicianID,
		EquipmentType:       r.EquipmentType,
		Brand:               r.Brand,
		Model:               r.Model,
		SerialNumber:        r.SerialNumber,
		ReportedDefect:      r.ReportedDefect,
		ReceivedAccessories: r.ReceivedAccessories,
		CreatedByID:         r.CreatedByID,
	}
	cmd.ArrivalDate = parseDateField("arrivalDate", r.ArrivalDate, &details)

	return cmd, details
}

// UpdateServiceOrderRequest is the partial-update payload: absent keys leave
// the stored value alone. budgetItems must be a JSON array; each element is
// normalized leniently downstream.
type UpdateServiceOrderRequest struct {
	ClientID     *string `json:"clientId"`
	TechnicianID *string `json:"technicianId"`

	EquipmentType       *string `json:"equipmentType"`
	Brand               *string `json:"brand"`
	Model               *string `json:"model"`
	SerialNumber        *string `json:"serialNumber"`
	ReportedDefect      *string `json:"reportedDefect"`
	ReceivedAccessories *string `json:"receivedAccessories"`

	BudgetNote           *string           `json:"budgetNote"`
	TechnicalExplanation *string           `json:"technicalExplanation"`
	BudgetItems          *[]map[string]any `json:"budgetItems"`

	Price *float64 `json:"price"`
	Cost  *float64 `json:"cost"`

	Status *string `json:"status"`

	ArrivalDate    *string `json:"arrivalDate"`
	OpeningDate    *string `json:"openingDate"`
	CompletionDate *string `json:"completionDate"`
	DeliveryDate   *string `json:"deliveryDate"`
	PaymentDate    *string `json:"paymentDate"`
}

func (r UpdateServiceOrderRequest) ToCommand() (usecase.UpdateOrderCommand, []string) {
	var details []string

	cmd := usecase.UpdateOrderCommand{
		ClientID:             r.ClientID,
		TechnicianID:         r.TechnicianID,
		EquipmentType:        r.EquipmentType,
		Brand:                r.Brand,
		Model:                r.Model,
		SerialNumber:         r.SerialNumber,
		ReportedDefect:       r.ReportedDefect,
		ReceivedAccessories:  r.ReceivedAccessories,
		BudgetNote:           r.BudgetNote,
		TechnicalExplanation: r.TechnicalExplanation,
		BudgetItems:          r.BudgetItems,
		Price:                r.Price,
		Cost:                 r.Cost,
		Status:               r.Status,
	}
	cmd.ArrivalDate = parseDateField("arrivalDate", r.ArrivalDate, &details)
	cmd.OpeningDate = parseDateField("openingDate", r.OpeningDate, &details)
	cmd.CompletionDate = parseDateField("completionDate", r.CompletionDate, &details)
	cmd.DeliveryDate = parseDateField("deliveryDate", r.DeliveryDate, &details)
	cmd.PaymentDate = parseDateField("paymentDate", r.PaymentDate, &details)

	return cmd, details
}

// parseDateField accepts RFC 3339 timestamps and bare ISO dates, the two
// shapes the web client sends.
func parseDateField(field string, raw *string, details *[]string) *time.Time {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		t = t.UTC()
		return &t
	}
	*details = append(*details, fmt.Sprintf("%s: invalid date %q", field, s))
	return nil
}
