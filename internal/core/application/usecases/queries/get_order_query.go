// Package queries contains read operations over the order store.
// Implements the Query side of the CQRS architecture: handlers bypass the
// aggregates' repositories and read with raw SQL tuned for each screen.
package queries

import (
	"errors"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order on behalf of an actor.
// The handler applies the same visibility rules that gate subscriptions:
// an order the actor may not see yields an error, never partial data.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order as seen by the given actor.
func NewGetOrderQuery(actor kernel.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	orderQuery := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderQuery.setActor(actor),
		orderQuery.setOrderID(orderID),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return orderQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Actor returns the party reading the order.
func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// OrderResponse is the read model for a single order.
// Cleared account references come back as nil pointers.
type OrderResponse struct {
	ID                kernel.UUID
	CustomerID        *kernel.UUID
	RestaurantID      *kernel.UUID
	RestaurantOwnerID *kernel.UUID
	DriverID          *kernel.UUID
	Items             []OrderItemResponse
	Total             int64
	Status            string
}

// OrderItemResponse is one order line: the dish plus the option picks the
// customer made at placement time.
type OrderItemResponse struct {
	DishID kernel.UUID
	Picks  []OptionPickResponse
}

// OptionPickResponse is a selected option group and, when the group offers
// choices, the chosen choice name.
type OptionPickResponse struct {
	Option string
	Choice string
}
