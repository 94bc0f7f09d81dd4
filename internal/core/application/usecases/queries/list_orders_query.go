package queries

import (
	"errors"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"
	"eats/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves the orders an actor is involved in, optionally
// narrowed to one lifecycle status. The scope depends on the role: customers
// list their own orders, drivers their assigned ones, and owners every order
// placed against any restaurant they own.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	actor  kernel.Actor
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a role-scoped order listing query.
// status is optional; pass nil to list orders in every status.
func NewListOrdersQuery(actor kernel.Actor, status *order.Status) (ListOrdersQuery, error) {
	listQuery := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		listQuery.setActor(actor),
		listQuery.setStatus(status),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return listQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the party listing orders.
func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

// Status returns the optional status filter, nil for all statuses.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q *ListOrdersQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

func (q *ListOrdersQuery) setStatus(status *order.Status) error {
	if status != nil {
		if err := status.Validate(); err != nil {
			return err
		}
	}

	q.status = status
	return nil
}
