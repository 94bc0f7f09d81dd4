package order_test

import (
	"testing"

	"eats/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass validation", func(t *testing.T) {
		valid := []order.Status{
			order.StatusPending,
			order.StatusCooking,
			order.StatusCooked,
			order.StatusPickedUp,
			order.StatusDelivered,
		}
		for _, s := range valid {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown status fails validation", func(t *testing.T) {
		require.Error(t, order.StatusUnknown.Validate())
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.StatusPending.String())
	assert.Equal(t, "Cooking", order.StatusCooking.String())
	assert.Equal(t, "Cooked", order.StatusCooked.String())
	assert.Equal(t, "PickedUp", order.StatusPickedUp.String())
	assert.Equal(t, "Delivered", order.StatusDelivered.String())
	assert.Equal(t, "Unknown", order.StatusUnknown.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses every valid name", func(t *testing.T) {
		for _, name := range []string{"Pending", "Cooking", "Cooked", "PickedUp", "Delivered"} {
			s, err := order.StatusFromString(name)

			require.NoError(t, err)
			assert.Equal(t, name, s.String())
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("Burnt")

		require.Error(t, err)
	})
}
