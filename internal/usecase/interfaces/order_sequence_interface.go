package interfaces

import "context"

// IOrderSequence hands out the yearly order-number sequence backing
// OS-<year>-<n>. Next must be atomic: two concurrent intakes may never see
// the same value for the same year.
type IOrderSequence interface {
	Next(ctx context.Context, year int) (int64, error)
}
