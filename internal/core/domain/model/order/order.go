package order

import (
	"errors"
	"fmt"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDriverAlreadyAssigned is returned when assigning a driver to an order
	// that already has one. Orders keep their first driver for their whole life.
	ErrDriverAlreadyAssigned = errors.New("order already has a driver")
)

// Order represents a placed food order. It is the aggregate root that manages
// the order lifecycle from placement through cooking and delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must contain at least one item selection
//   - Total is resolved once at creation time from the catalog and is never
//     recomputed, even if catalog prices later change
//   - The customer, restaurant, and owner references are nullable snapshots:
//     removing a user clears the reference rather than cascading to the order
//   - A driver, once assigned, is never replaced
//
// Status is the only mutable field besides the driver reference; which actor
// may move it where is decided by services.TransitionPolicy, not by the
// aggregate itself.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the ordering customer, nil if the account was removed
	customerID *kernel.UUID

	// restaurantID is the restaurant cooking the order, nil if removed
	restaurantID *kernel.UUID

	// restaurantOwnerID is a snapshot of the restaurant's owner, taken at
	// creation time; it drives owner visibility without a catalog lookup
	restaurantOwnerID *kernel.UUID

	// driverID is the assigned driver, nil until a driver takes the order
	driverID *kernel.UUID

	// items are the order lines in placement order
	items []ItemSelection

	// total is the resolved price in minor currency units, immutable
	total int64

	// status is the current lifecycle state
	status Status

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status.
// The total must already be resolved by the pricing service; the aggregate
// does not consult the catalog.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	restaurantOwnerID kernel.UUID,
	items []ItemSelection,
	total int64,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurant(restaurantID, restaurantOwnerID),
		o.setItems(items),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage.
// Unlike NewOrder it accepts nil references (removed accounts) and an
// arbitrary valid status.
func RestoreOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	restaurantID *kernel.UUID,
	restaurantOwnerID *kernel.UUID,
	driverID *kernel.UUID,
	items []ItemSelection,
	total int64,
	status Status,
) (*Order, error) {
	o := &Order{
		customerID:        customerID,
		restaurantID:      restaurantID,
		restaurantOwnerID: restaurantOwnerID,
		driverID:          driverID,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		o.setTotal(total),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Call it when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's id, nil if the account was removed.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

// RestaurantID returns the restaurant's id, nil if the restaurant was removed.
func (o *Order) RestaurantID() *kernel.UUID {
	return o.restaurantID
}

// RestaurantOwnerID returns the snapshot of the restaurant owner's id taken at
// creation time, nil if the restaurant was removed.
func (o *Order) RestaurantOwnerID() *kernel.UUID {
	return o.restaurantOwnerID
}

// DriverID returns the assigned driver's id, nil while unassigned.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

// Items returns the order lines in placement order.
func (o *Order) Items() []ItemSelection {
	return o.items
}

// Total returns the resolved order price in minor currency units.
func (o *Order) Total() int64 {
	return o.total
}

// Status returns the current lifecycle state of the order.
func (o *Order) Status() Status {
	return o.status
}

// ChangeStatus moves the order to the target status.
// The aggregate only checks that the target is a valid status value; which
// actor may request which target is authorized by services.TransitionPolicy
// before this method is called.
func (o *Order) ChangeStatus(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	o.status = target
	return nil
}

// AssignDriver assigns the order to a driver.
// Returns ErrDriverAlreadyAssigned if a driver is already set; orders are
// never reassigned.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.driverID != nil {
		return ErrDriverAlreadyAssigned
	}

	o.driverID = &driverID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = &customerID
	return nil
}

func (o *Order) setRestaurant(restaurantID, restaurantOwnerID kernel.UUID) error {
	if err := errors.Join(restaurantID.Validate(), restaurantOwnerID.Validate()); err != nil {
		return err
	}
	o.restaurantID = &restaurantID
	o.restaurantOwnerID = &restaurantOwnerID
	return nil
}

func (o *Order) setItems(items []ItemSelection) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = items
	return nil
}

func (o *Order) setTotal(total int64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d is negative", total))
	}
	o.total = total
	return nil
}
