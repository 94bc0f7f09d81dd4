package catalog_test

import (
	"testing"
	"time"

	"eats/internal/core/domain/model/catalog"
	"eats/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRestaurant(t *testing.T) {
	validID := kernel.NewUUID()
	validOwnerID := kernel.NewUUID()

	t.Run("should create valid restaurant", func(t *testing.T) {
		r, err := catalog.NewRestaurant(validID, "Sushi Place", validOwnerID)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(validID))
		assert.Equal(t, "Sushi Place", r.Name())
		assert.True(t, r.OwnerID().IsEqual(validOwnerID))
		assert.False(t, r.IsPromoted())
		assert.Nil(t, r.PromotedUntil())
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		r, err := catalog.NewRestaurant(validID, "", validOwnerID)

		require.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("should fail with zero-value owner id", func(t *testing.T) {
		var invalidOwner kernel.UUID

		r, err := catalog.NewRestaurant(validID, "Sushi Place", invalidOwner)

		require.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("zero value restaurant is not constructed", func(t *testing.T) {
		var r catalog.Restaurant

		require.Error(t, r.Validate())
	})
}

func TestRestaurant_Promotion(t *testing.T) {
	t.Run("promote then expire", func(t *testing.T) {
		r, err := catalog.NewRestaurant(kernel.NewUUID(), "Sushi Place", kernel.NewUUID())
		require.NoError(t, err)

		until := time.Now().Add(7 * 24 * time.Hour)
		r.Promote(until)

		assert.True(t, r.IsPromoted())
		require.NotNil(t, r.PromotedUntil())
		assert.True(t, r.PromotedUntil().Equal(until))

		r.ExpirePromotion()

		assert.False(t, r.IsPromoted())
		assert.Nil(t, r.PromotedUntil())
	})

	t.Run("expire is safe on unpromoted restaurant", func(t *testing.T) {
		r, err := catalog.NewRestaurant(kernel.NewUUID(), "Sushi Place", kernel.NewUUID())
		require.NoError(t, err)

		r.ExpirePromotion()

		assert.False(t, r.IsPromoted())
	})
}

func TestRestoreRestaurant(t *testing.T) {
	t.Run("restores promotion state", func(t *testing.T) {
		id := kernel.NewUUID()
		ownerID := kernel.NewUUID()
		until := time.Now().Add(time.Hour)

		r, err := catalog.RestoreRestaurant(id, "Sushi Place", ownerID, true, &until)

		require.NoError(t, err)
		assert.True(t, r.IsPromoted())
		require.NotNil(t, r.PromotedUntil())
	})
}
