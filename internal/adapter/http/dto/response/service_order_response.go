package response

import (
	"math"
	"time"

	"os_service_api/internal/domain/entities"
	"os_service_api/internal/usecase"
)

// PersonSummary is the client/technician projection embedded in order
// responses.
type PersonSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BudgetTotalsResponse carries the derived pricing figures rounded to two
// decimals. This is the only place rounding happens; the engine itself works
// in full precision.
type BudgetTotalsResponse struct {
	TotalPrice         float64 `json:"totalPrice"`
	TotalCost          float64 `json:"totalCost"`
	TotalEstimatedDays float64 `json:"totalEstimatedDays"`
	Profit             float64 `json:"profit"`
	ProfitPerDay       float64 `json:"profitPerDay"`
}

type ServiceOrderResponse struct {
	ID           string         `json:"id"`
	OrderNumber  string         `json:"orderNumber"`
	ClientID     string         `json:"clientId"`
	TechnicianID string         `json:"technicianId,omitempty"`
	Client       *PersonSummary `json:"client,omitempty"`
	Technician   *PersonSummary `json:"technician,omitempty"`

	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`

	EquipmentType       string `json:"equipmentType"`
	Brand               string `json:"brand"`
	Model               string `json:"model"`
	SerialNumber        string `json:"serialNumber"`
	ReportedDefect      string `json:"reportedDefect"`
	ReceivedAccessories string `json:"receivedAccessories"`

	BudgetNote           string                `json:"budgetNote,omitempty"`
	TechnicalExplanation string                `json:"technicalExplanation,omitempty"`
	BudgetItems          []entities.BudgetItem `json:"budgetItems,omitempty"`
	BudgetTotals         *BudgetTotalsResponse `json:"budgetTotals,omitempty"`

	Price *float64 `json:"price,omitempty"`
	Cost  *float64 `json:"cost,omitempty"`

	ArrivalDate    *time.Time `json:"arrivalDate,omitempty"`
	OpeningDate    *time.Time `json:"openingDate,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	DeliveryDate   *time.Time `json:"deliveryDate,omitempty"`
	PaymentDate    *time.Time `json:"paymentDate,omitempty"`

	CreatedByID string    `json:"createdById,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromServiceOrderDetails(d usecase.ServiceOrderDetails) ServiceOrderResponse {
	o := d.Order
	resp := ServiceOrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		ClientID:             o.ClientID,
		TechnicianID:         o.TechnicianID,
		Status:               string(o.Status),
		StatusLabel:          o.Status.Label(),
		EquipmentType:        o.EquipmentType,
		Brand:                o.Brand,
		Model:                o.Model,
		SerialNumber:         o.SerialNumber,
		ReportedDefect:       o.ReportedDefect,
		ReceivedAccessories:  o.ReceivedAccessories,
		BudgetNote:           o.BudgetNote,
		TechnicalExplanation: o.TechnicalExplanation,
		BudgetItems:          o.BudgetItems,
		Price:                o.Price,
		Cost:                 o.Cost,
		ArrivalDate:          o.ArrivalDate,
		OpeningDate:          o.OpeningDate,
		CompletionDate:       o.CompletionDate,
		DeliveryDate:         o.DeliveryDate,
		PaymentDate:          o.PaymentDate,
		CreatedByID:          o.CreatedByID,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}

	if d.Client.ID != "" {
		resp.Client = &PersonSummary{ID: d.Client.ID, Name: d.Client.Name}
	}
	if d.Technician.ID != "" {
		resp.Technician = &PersonSummary{ID: d.Technician.ID, Name: d.Technician.Name}
	}
	if len(o.BudgetItems) > 0 {
		totals := o.BudgetTotals()
		resp.BudgetTotals = &BudgetTotalsResponse{
			TotalPrice:         round2(totals.TotalPrice),
			TotalCost:          round2(totals.TotalCost),
			TotalEstimatedDays: round2(totals.TotalEstimatedDays),
			Profit:             round2(totals.Profit),
			ProfitPerDay:       round2(totals.ProfitPerDay),
		}
	}
	return resp
}

func FromServiceOrderDetailsList(details []usecase.ServiceOrderDetails) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, 0, len(details))
	for _, d := range details {
		out = append(out, FromServiceOrderDetails(d))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
