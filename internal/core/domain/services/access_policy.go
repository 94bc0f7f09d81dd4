package services

import (
	"errors"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"
)

// ErrOrderNotVisible is returned when an actor is not allowed to see an order
// at all. It is deliberately distinct from ErrTransitionNotAllowed so callers
// can tell "not your business" apart from "not authorized to change that".
var ErrOrderNotVisible = errors.New("order is not visible to this actor")

// AccessPolicy decides whether an actor may see an order. The same predicate
// gates direct reads and subscription event filtering, so a user can never
// observe through a subscription an order they could not query directly.
type AccessPolicy struct{}

// NewAccessPolicy creates the visibility service.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanSee reports whether the actor may see the order:
//   - a Client sees orders they placed
//   - a Delivery driver sees orders assigned to them
//   - an Owner sees orders against restaurants they own
//
// The switch is exhaustive over the closed Role enumeration; an invalid role
// sees nothing.
func (AccessPolicy) CanSee(actor kernel.Actor, o *order.Order) bool {
	switch actor.Role() {
	case kernel.RoleClient:
		return matchesActor(actor, o.CustomerID())
	case kernel.RoleDelivery:
		return matchesActor(actor, o.DriverID())
	case kernel.RoleOwner:
		return matchesActor(actor, o.RestaurantOwnerID())
	case kernel.RoleUnknown:
		return false
	}
	return false
}

func matchesActor(actor kernel.Actor, id *kernel.UUID) bool {
	return id != nil && actor.ID().IsEqual(*id)
}
