package notifications

import (
	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/services"
)

// Filter decides whether a subscriber receives an event. Filters run on the
// publishing goroutine and must be fast and side-effect free.
type Filter func(Event) bool

// All passes every event. Useful for diagnostics and tests.
func All() Filter {
	return func(Event) bool { return true }
}

// OrderCreatedForOwner passes creation events for orders placed against a
// restaurant owned by the given owner.
func OrderCreatedForOwner(ownerID kernel.UUID) Filter {
	return func(e Event) bool {
		o := e.Order()
		if o == nil || o.RestaurantOwnerID() == nil {
			return false
		}
		return o.RestaurantOwnerID().IsEqual(ownerID)
	}
}

// CookedOrdersForDrivers passes every cooked-order event: any delivery driver
// may watch the cooked feed to find work, so there is nothing to narrow by.
func CookedOrdersForDrivers() Filter {
	return func(e Event) bool {
		return e.Order() != nil
	}
}

// OrderChangesFor passes change events for one specific order, but only while
// the actor is allowed to see that order. Visibility is re-evaluated per event
// against the order snapshot the event carries, so a driver starts receiving
// updates the moment an assignment makes the order theirs.
func OrderChangesFor(actor kernel.Actor, orderID kernel.UUID) Filter {
	access := services.NewAccessPolicy()
	return func(e Event) bool {
		o := e.Order()
		if o == nil || !o.ID().IsEqual(orderID) {
			return false
		}
		return access.CanSee(actor, o)
	}
}
