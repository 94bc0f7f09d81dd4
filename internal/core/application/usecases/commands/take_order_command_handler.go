package commands

import (
	"context"
	"errors"

	"eats/internal/core/domain/model/order"
	"eats/internal/core/ports"
	"eats/internal/notifications"
	"eats/internal/pkg/errs"
)

// TakeOrderCommandHandler handles driver self-assignment.
// The driver reference is written with a NULL-guarded update so that when two
// drivers grab the same order at once, exactly one of them gets it.
//
// Example:
//
//	handler := NewTakeOrderCommandHandler(uowFactory, bus)
//	cmd, _ := NewTakeOrderCommand(driver, orderID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderNotFound):
//	    // unknown order
//	case errors.Is(err, order.ErrDriverAlreadyAssigned):
//	    // someone else took it
//	}
type TakeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
}

// NewTakeOrderCommandHandler creates a handler for driver self-assignment.
func NewTakeOrderCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) TakeOrderCommandHandler {
	return TakeOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the take-order command.
// Returns order.ErrDriverAlreadyAssigned both when the loaded order already
// has a driver and when a concurrent take wins the persistence race: either
// way, the order belongs to someone else. Publishes OrderChanged after
// commit; the assignment event is the first one the new driver's own
// per-order subscription receives.
func (h TakeOrderCommandHandler) Handle(ctx context.Context, command TakeOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.AssignDriver(command.Actor().ID()); err != nil {
		return err
	}

	err = orderRepo.AssignDriver(ctx, command.OrderID(), command.Actor().ID())
	if errors.Is(err, ports.ErrConcurrentModification) {
		return order.ErrDriverAlreadyAssigned
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, notifications.NewOrderChanged(aggregate))
	return nil
}
