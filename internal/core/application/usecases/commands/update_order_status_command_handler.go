package commands

import (
	"context"
	"errors"

	"eats/internal/core/domain/model/order"
	"eats/internal/core/domain/services"
	"eats/internal/core/ports"
	"eats/internal/notifications"
	"eats/internal/pkg/errs"
)

var (
	// ErrOrderNotFound is returned when the targeted order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderConflict is returned when a concurrent update won the race for
	// the same order. The caller should re-read and retry.
	ErrOrderConflict = errors.New("order was updated concurrently")
)

// UpdateOrderStatusCommandHandler orchestrates order status changes.
// Gates the change through the transition policy, persists it with a
// compare-and-set so parallel updates of the same order produce exactly one
// winner, and notifies watchers after commit.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, bus)
//	cmd, _ := NewUpdateOrderStatusCommand(owner, orderID, order.StatusCooked)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderNotFound):
//	    // unknown order
//	case errors.Is(err, services.ErrOrderNotVisible):
//	    // not this actor's order
//	case errors.Is(err, services.ErrTransitionNotAllowed):
//	    // role may not set this status
//	case errors.Is(err, ErrOrderConflict):
//	    // lost the race, retry
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher EventPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status change command.
// Publishes OrderChanged on every successful change, plus OrderCooked when
// the new status is Cooked so waiting drivers learn about the pickup.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) error {
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

	if err = services.NewTransitionPolicy().Authorize(command.Actor(), aggregate, command.Target()); err != nil {
		return err
	}

	previous := aggregate.Status()
	if err = aggregate.ChangeStatus(command.Target()); err != nil {
		return err
	}

	err = orderRepo.UpdateStatus(ctx, command.OrderID(), previous, command.Target())
	if errors.Is(err, ports.ErrConcurrentModification) {
		return ErrOrderConflict
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if command.Target() == order.StatusCooked {
		h.publisher.Publish(ctx, notifications.NewOrderCooked(aggregate))
	}
	h.publisher.Publish(ctx, notifications.NewOrderChanged(aggregate))
	return nil
}
