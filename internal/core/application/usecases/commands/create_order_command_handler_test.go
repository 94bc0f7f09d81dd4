package commands_test

import (
	"errors"
	"testing"

	"eats/internal/core/application/usecases/commands"
	"eats/internal/core/domain/model/catalog"
	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"
	"eats/internal/core/domain/services"
	"eats/internal/notifications"
	"eats/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createOrderFixture struct {
	restaurant *catalog.Restaurant
	dish       *catalog.Dish
	cmd        commands.CreateOrderCommand
}

func newCreateOrderFixture(t *testing.T) createOrderFixture {
	t.Helper()

	restaurant, err := catalog.NewRestaurant(kernel.NewUUID(), "Pasta Place", kernel.NewUUID())
	require.NoError(t, err)
	dish, err := catalog.NewDish(kernel.NewUUID(), restaurant.ID(), "Carbonara", 1200, nil)
	require.NoError(t, err)

	sel, err := order.NewItemSelection(dish.ID(), nil)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), restaurant.ID(), []order.ItemSelection{sel})
	require.NoError(t, err)

	return createOrderFixture{restaurant: restaurant, dish: dish, cmd: cmd}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	catalogRepo := new(MockCatalogRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(catalogRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		catalogRepo.On("GetRestaurant", mock.Anything, f.cmd.RestaurantID()).Return(f.restaurant, nil).Once(),
		catalogRepo.On("GetDishes", mock.Anything, f.cmd.RestaurantID()).
			Return([]*catalog.Dish{f.dish}, nil).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Once()

	h := commands.NewCreateOrderCommandHandler(factory, publisher)
	err := h.Handle(ctx, f.cmd)
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	event := publisher.published[0]
	require.Equal(t, notifications.KindOrderCreated, event.Kind())
	require.True(t, event.Order().ID().IsEqual(f.cmd.OrderID()))
	require.Equal(t, int64(1200), event.Order().Total())
	require.Equal(t, order.StatusPending, event.Order().Status())
	require.True(t, event.Order().RestaurantOwnerID().IsEqual(f.restaurant.OwnerID()))

	catalogRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockEventPublisher))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_RestaurantNotFound(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	catalogRepo := new(MockCatalogRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(catalogRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		catalogRepo.On("GetRestaurant", mock.Anything, f.cmd.RestaurantID()).
			Return(nil, errs.NewObjectNotFoundError("restaurantID", f.cmd.RestaurantID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, publisher)
	err := h.Handle(ctx, f.cmd)
	require.ErrorIs(t, err, commands.ErrRestaurantNotFound)
	require.Empty(t, publisher.published)
}

func TestCreateOrderCommandHandler_Handle_DishNotFound(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	otherDish, err := catalog.NewDish(kernel.NewUUID(), f.restaurant.ID(), "Tiramisu", 500, nil)
	require.NoError(t, err)

	catalogRepo := new(MockCatalogRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(catalogRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		catalogRepo.On("GetRestaurant", mock.Anything, f.cmd.RestaurantID()).Return(f.restaurant, nil).Once(),
		catalogRepo.On("GetDishes", mock.Anything, f.cmd.RestaurantID()).
			Return([]*catalog.Dish{otherDish}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, publisher)
	err = h.Handle(ctx, f.cmd)
	require.ErrorIs(t, err, services.ErrDishNotFound)
	require.Empty(t, publisher.published)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	catalogRepo := new(MockCatalogRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(catalogRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		catalogRepo.On("GetRestaurant", mock.Anything, f.cmd.RestaurantID()).Return(f.restaurant, nil).Once(),
		catalogRepo.On("GetDishes", mock.Anything, f.cmd.RestaurantID()).
			Return([]*catalog.Dish{f.dish}, nil).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, publisher)
	err := h.Handle(ctx, f.cmd)
	require.Error(t, err)
	require.Empty(t, publisher.published, "no event may leak for an uncommitted order")
}
