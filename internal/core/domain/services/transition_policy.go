package services

import (
	"errors"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"
)

// ErrTransitionNotAllowed is returned when an actor who can see an order
// requests a status it is not entitled to set.
var ErrTransitionNotAllowed = errors.New("status transition is not allowed for this actor")

// TransitionPolicy authorizes order status changes per actor role.
//
// Allowed targets by role:
//   - Client: none; customers only read their orders
//   - Owner: Cooking, Cooked, on orders against restaurants they own
//   - Delivery: PickedUp, Delivered, on orders assigned to them
//
// The policy gates visibility before the role check so that callers receive
// ErrOrderNotVisible for orders that are none of their business, and
// ErrTransitionNotAllowed only when they could see the order.
//
// The policy intentionally does not force the linear Pending → Cooking →
// Cooked → PickedUp → Delivered chain: an owner may mark an order Cooked
// straight from Pending. Tightening this would change observable behavior for
// existing callers.
type TransitionPolicy struct {
	access AccessPolicy
}

// NewTransitionPolicy creates the transition authorization service.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{access: NewAccessPolicy()}
}

// Authorize decides whether actor may move the order to target.
// Returns nil when allowed, ErrOrderNotVisible when the actor may not see the
// order, and ErrTransitionNotAllowed when the actor sees the order but the
// role does not permit the target status.
func (p TransitionPolicy) Authorize(actor kernel.Actor, o *order.Order, target order.Status) error {
	if err := errors.Join(actor.Validate(), o.Validate(), target.Validate()); err != nil {
		return err
	}

	if !p.access.CanSee(actor, o) {
		return ErrOrderNotVisible
	}

	switch actor.Role() {
	case kernel.RoleClient:
		return ErrTransitionNotAllowed
	case kernel.RoleOwner:
		if target == order.StatusCooking || target == order.StatusCooked {
			return nil
		}
		return ErrTransitionNotAllowed
	case kernel.RoleDelivery:
		if target == order.StatusPickedUp || target == order.StatusDelivered {
			return nil
		}
		return ErrTransitionNotAllowed
	case kernel.RoleUnknown:
		return ErrTransitionNotAllowed
	}
	return ErrTransitionNotAllowed
}
