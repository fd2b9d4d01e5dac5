package entities

import "time"

// ServiceOrder is the aggregate root of the repair shop: one piece of
// equipment moving through intake, diagnosis, budgeting, repair and delivery.
//
// Storage model (DynamoDB):
//   - PK: id
//   - order_number is unique per shop and assigned once at intake from the
//     yearly counter (OS-<year>-<n>).
//   - version implements optimistic concurrency: every update must supply the
//     version it read, and the write is rejected when another update landed
//     in between.

type ServiceOrder struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"orderNumber"`
	ClientID     string      `json:"clientId"`
	TechnicianID string      `json:"technicianId,omitempty"`
	Status       OrderStatus `json:"status"`

	EquipmentType       string `json:"equipmentType"`
	Brand               string `json:"brand"`
	Model               string `json:"model"`
	SerialNumber        string `json:"serialNumber"`
	ReportedDefect      string `json:"reportedDefect"`
	ReceivedAccessories string `json:"receivedAccessories"`

	BudgetNote           string       `json:"budgetNote,omitempty"`
	TechnicalExplanation string       `json:"technicalExplanation,omitempty"`
	BudgetItems          []BudgetItem `json:"budgetItems,omitempty"`

	// Price and Cost are the legacy aggregate figures kept for orders quoted
	// before itemized budgets existed; budget-item totals are derived, never
	// stored.
	Price *float64 `json:"price,omitempty"`
	Cost  *float64 `json:"cost,omitempty"`

	ArrivalDate    *time.Time `json:"arrivalDate,omitempty"`
	OpeningDate    *time.Time `json:"openingDate,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	DeliveryDate   *time.Time `json:"deliveryDate,omitempty"`
	PaymentDate    *time.Time `json:"paymentDate,omitempty"`

	CreatedByID string `json:"createdById,omitempty"`
	Version     int64  `json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasTechnician reports whether a technician is assigned.
func (o ServiceOrder) HasTechnician() bool {
	return o.TechnicianID != ""
}

// BudgetTotals computes the aggregate pricing of the order's budget items.
func (o ServiceOrder) BudgetTotals() BudgetTotals {
	return ComputeBudgetTotals(o.BudgetItems)
}
