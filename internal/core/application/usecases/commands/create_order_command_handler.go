package commands

import (
	"context"
	"errors"

	"eats/internal/core/domain/model/order"
	"eats/internal/core/domain/services"
	"eats/internal/notifications"
	"eats/internal/pkg/errs"
)

// ErrRestaurantNotFound is returned when an order targets a restaurant that
// does not exist.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// CreateOrderCommandHandler handles the business logic for order placement.
// Prices the customer's selections against the restaurant's current menu,
// snapshots the owner reference, and persists the order in Pending status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, bus)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), customer, restaurantID, items)
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrRestaurantNotFound):
//	    // unknown restaurant
//	case errors.Is(err, services.ErrDishNotFound):
//	    // a selected dish is not on this menu
//	case err != nil:
//	    // persistence failure
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory for transactional persistence and an EventPublisher
// for the owner's creation notification.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, publisher EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order placement command.
// Loads the restaurant and its menu, resolves the total via the pricing
// service, and persists the order. The total is fixed here: later menu edits
// never change what this order costs. Publishes OrderCreated after commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
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

	catalogRepo := uow.CatalogRepository()
	orderRepo := uow.OrderRepository()

	restaurant, err := catalogRepo.GetRestaurant(ctx, command.RestaurantID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRestaurantNotFound
	}
	if err != nil {
		return err
	}

	dishes, err := catalogRepo.GetDishes(ctx, command.RestaurantID())
	if err != nil {
		return err
	}

	_, total, err := services.NewPricer().Total(dishes, command.Items())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		command.OrderID(),
		command.CustomerID(),
		restaurant.ID(),
		restaurant.OwnerID(),
		command.Items(),
		total,
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, notifications.NewOrderCreated(newOrder))
	return nil
}
