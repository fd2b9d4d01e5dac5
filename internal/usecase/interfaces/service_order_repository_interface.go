package interfaces

import (
	"context"
	"errors"
	"time"

	"os_service_api/internal/domain/entities"
)

// ErrVersionConflict is returned by Update when the stored order no longer
// carries the version the caller read. The caller should surface it as a 409.
var ErrVersionConflict = errors.New("service order version conflict")

// IServiceOrderRepository abstracts DynamoDB persistence for ServiceOrder.
//
// Lookup methods return a zero-value order (ID == "") when nothing matches;
// errors are reserved for infrastructure failures.

type IServiceOrderRepository interface {
	Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	List(ctx context.Context) ([]entities.ServiceOrder, error)
	// Update persists o and bumps its version; expectedVersion is the version
	// the caller loaded and the write fails with ErrVersionConflict when it
	// no longer matches.
	Update(ctx context.Context, o entities.ServiceOrder, expectedVersion int64) (entities.ServiceOrder, error)
	Delete(ctx context.Context, id string) error
	// StampPaymentDate sets payment_date without touching the rest of the
	// record (used by the payment flow after the provider approves).
	StampPaymentDate(ctx context.Context, id string, paidAt time.Time) error
}
