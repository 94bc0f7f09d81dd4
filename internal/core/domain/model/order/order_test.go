package order_test

import (
	"testing"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItems(t *testing.T) []order.ItemSelection {
	t.Helper()

	pick, err := order.NewOptionPick("Size", "Large")
	require.NoError(t, err)
	selection, err := order.NewItemSelection(kernel.NewUUID(), []order.OptionPick{pick})
	require.NoError(t, err)

	return []order.ItemSelection{selection}
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	ownerID := kernel.NewUUID()

	t.Run("should create valid order in Pending status", func(t *testing.T) {
		items := validItems(t)

		o, err := order.NewOrder(validID, customerID, restaurantID, ownerID, items, 1200)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		require.NotNil(t, o.CustomerID())
		assert.True(t, o.CustomerID().IsEqual(customerID))
		require.NotNil(t, o.RestaurantOwnerID())
		assert.True(t, o.RestaurantOwnerID().IsEqual(ownerID))
		assert.Nil(t, o.DriverID())
		assert.Equal(t, int64(1200), o.Total())
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(validID, customerID, restaurantID, ownerID, nil, 1200)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should fail with negative total", func(t *testing.T) {
		o, err := order.NewOrder(validID, customerID, restaurantID, ownerID, validItems(t), -1)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail with zero-value customer id", func(t *testing.T) {
		var invalid kernel.UUID

		o, err := order.NewOrder(validID, invalid, restaurantID, ownerID, validItems(t), 1200)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalid kernel.UUID

		o, err := order.NewOrder(invalid, customerID, restaurantID, ownerID, nil, -5)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "items")
		assert.Contains(t, err.Error(), "total")
	})

	t.Run("zero value order is not constructed", func(t *testing.T) {
		var o order.Order

		require.Error(t, o.Validate())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores nullable references and status", func(t *testing.T) {
		id := kernel.NewUUID()
		driverID := kernel.NewUUID()

		o, err := order.RestoreOrder(id, nil, nil, nil, &driverID, validItems(t), 900, order.StatusPickedUp)

		require.NoError(t, err)
		assert.Nil(t, o.CustomerID())
		assert.Nil(t, o.RestaurantID())
		require.NotNil(t, o.DriverID())
		assert.True(t, o.DriverID().IsEqual(driverID))
		assert.Equal(t, order.StatusPickedUp, o.Status())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), nil, nil, nil, nil, validItems(t), 900, order.StatusUnknown)

		require.Error(t, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	newOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), validItems(t), 1000)
		require.NoError(t, err)
		return o
	}

	t.Run("moves to any valid status", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.ChangeStatus(order.StatusCooking))
		assert.Equal(t, order.StatusCooking, o.Status())

		// the aggregate itself is permissive; authorization limits targets per role
		require.NoError(t, o.ChangeStatus(order.StatusDelivered))
		assert.Equal(t, order.StatusDelivered, o.Status())
	})

	t.Run("rejects invalid status value", func(t *testing.T) {
		o := newOrder(t)

		require.Error(t, o.ChangeStatus(order.Status(42)))
		assert.Equal(t, order.StatusPending, o.Status())
	})
}

func TestOrder_AssignDriver(t *testing.T) {
	newOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), validItems(t), 1000)
		require.NoError(t, err)
		return o
	}

	t.Run("assigns first driver", func(t *testing.T) {
		o := newOrder(t)
		driverID := kernel.NewUUID()

		require.NoError(t, o.AssignDriver(driverID))
		require.NotNil(t, o.DriverID())
		assert.True(t, o.DriverID().IsEqual(driverID))
	})

	t.Run("rejects second driver", func(t *testing.T) {
		o := newOrder(t)
		firstDriver := kernel.NewUUID()
		require.NoError(t, o.AssignDriver(firstDriver))

		err := o.AssignDriver(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrDriverAlreadyAssigned)
		assert.True(t, o.DriverID().IsEqual(firstDriver))
	})

	t.Run("rejects zero-value driver id", func(t *testing.T) {
		o := newOrder(t)
		var invalid kernel.UUID

		require.Error(t, o.AssignDriver(invalid))
		assert.Nil(t, o.DriverID())
	})
}
