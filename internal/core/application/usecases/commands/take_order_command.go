package commands

import (
	"errors"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/pkg/guard"
)

var (
	ErrTakeOrderCommandIsNotConstructed = errors.New(
		"TakeOrderCommand must be created via NewTakeOrderCommand constructor",
	)
	ErrActorMustBeDriver = errors.New("only delivery drivers may take orders")
)

// TakeOrderCommand represents a delivery driver claiming an order from the
// cooked feed. Taking an order is a distinct assignment action, not a status
// change: the order's status is untouched and the driver reference is set
// exactly once for the order's whole life.
type TakeOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTakeOrderCommand creates a command for a driver to claim an order.
// Returns ErrActorMustBeDriver when the actor is not a delivery driver.
func NewTakeOrderCommand(actor kernel.Actor, orderID kernel.UUID) (TakeOrderCommand, error) {
	takeCommand := TakeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		takeCommand.setActor(actor),
		takeCommand.setOrderID(orderID),
	); err != nil {
		return TakeOrderCommand{}, err
	}

	return takeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTakeOrderCommandIsNotConstructed if validation fails.
func (c TakeOrderCommand) Validate() error {
	return c.guard.Validate(ErrTakeOrderCommandIsNotConstructed)
}

// Actor returns the driver claiming the order.
func (c TakeOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the identifier of the order being claimed.
func (c TakeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *TakeOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleDelivery {
		return ErrActorMustBeDriver
	}

	c.actor = actor
	return nil
}

func (c *TakeOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
