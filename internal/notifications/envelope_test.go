package notifications

import (
	"testing"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventEnvelope_RoundTrip(t *testing.T) {
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	ownerID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	sizePick, err := order.NewOptionPick("Size", "Large")
	require.NoError(t, err)
	picklesPick, err := order.NewOptionPick("Add pickles", "")
	require.NoError(t, err)
	sel, err := order.NewItemSelection(kernel.NewUUID(), []order.OptionPick{sizePick, picklesPick})
	require.NoError(t, err)
	bare, err := order.NewItemSelection(kernel.NewUUID(), nil)
	require.NoError(t, err)

	original, err := order.RestoreOrder(kernel.NewUUID(), &customerID, &restaurantID,
		&ownerID, &driverID, []order.ItemSelection{sel, bare}, 1350, order.StatusPickedUp)
	require.NoError(t, err)

	payload, err := encodeEvent(NewOrderChanged(original))
	require.NoError(t, err)

	decoded, err := decodeEvent(payload)
	require.NoError(t, err)

	assert.Equal(t, KindOrderChanged, decoded.Kind())
	restored := decoded.Order()
	require.NotNil(t, restored)
	assert.True(t, restored.IsEqual(original))
	assert.True(t, restored.CustomerID().IsEqual(customerID))
	assert.True(t, restored.RestaurantOwnerID().IsEqual(ownerID))
	assert.True(t, restored.DriverID().IsEqual(driverID))
	assert.Equal(t, int64(1350), restored.Total())
	assert.Equal(t, order.StatusPickedUp, restored.Status())
	require.Len(t, restored.Items(), 2)
	require.Len(t, restored.Items()[0].Picks(), 2)
	assert.Equal(t, "Size", restored.Items()[0].Picks()[0].Option())
	assert.Equal(t, "Large", restored.Items()[0].Picks()[0].Choice())
	assert.Empty(t, restored.Items()[1].Picks())
}

func TestEventEnvelope_ClearedReferences(t *testing.T) {
	sel, err := order.NewItemSelection(kernel.NewUUID(), nil)
	require.NoError(t, err)
	orphan, err := order.RestoreOrder(kernel.NewUUID(), nil, nil, nil, nil,
		[]order.ItemSelection{sel}, 500, order.StatusPending)
	require.NoError(t, err)

	payload, err := encodeEvent(NewOrderCreated(orphan))
	require.NoError(t, err)

	decoded, err := decodeEvent(payload)
	require.NoError(t, err)

	restored := decoded.Order()
	assert.Nil(t, restored.CustomerID())
	assert.Nil(t, restored.RestaurantID())
	assert.Nil(t, restored.RestaurantOwnerID())
	assert.Nil(t, restored.DriverID())
}

func TestDecodeEvent_UnknownKind(t *testing.T) {
	_, err := decodeEvent([]byte(`{"kind":"order.vanished","order":{"id":"not-a-uuid"}}`))
	assert.Error(t, err)
}
