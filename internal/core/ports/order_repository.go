package ports

import (
	"context"
	"errors"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned by the compare-and-set repository
// operations when the stored row no longer matches the expected state, i.e.
// another request changed the order between read and write.
var ErrConcurrentModification = errors.New("order was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
// Besides plain CRUD it offers compare-and-set mutations for the two
// contended fields, status and driver assignment, so concurrent updates of
// the same order fail cleanly instead of silently overwriting each other.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus moves the order from the expected status to the target
	// status. Returns ErrConcurrentModification when the stored status is no
	// longer the expected one.
	UpdateStatus(ctx context.Context, id kernel.UUID, from, to order.Status) error

	// AssignDriver sets the order's driver if none is assigned yet.
	// Returns ErrConcurrentModification when a driver beat this one to it.
	AssignDriver(ctx context.Context, id kernel.UUID, driverID kernel.UUID) error
}
