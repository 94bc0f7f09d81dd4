package notifications_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"
	"eats/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type orderRefs struct {
	customerID kernel.UUID
	ownerID    kernel.UUID
	driverID   *kernel.UUID
}

func buildOrder(t *testing.T, refs orderRefs, status order.Status) *order.Order {
	t.Helper()

	sel, err := order.NewItemSelection(kernel.NewUUID(), nil)
	require.NoError(t, err)
	restaurantID := kernel.NewUUID()

	o, err := order.RestoreOrder(kernel.NewUUID(), &refs.customerID, &restaurantID,
		&refs.ownerID, refs.driverID, []order.ItemSelection{sel}, 1000, status)
	require.NoError(t, err)
	return o
}

func receiveEvent(t *testing.T, sub *notifications.Subscription) notifications.Event {
	t.Helper()

	select {
	case event, ok := <-sub.Events():
		require.True(t, ok, "subscription channel closed unexpectedly")
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func requireNoEvent(t *testing.T, sub *notifications.Subscription) {
	t.Helper()

	select {
	case event := <-sub.Events():
		t.Fatalf("unexpected event: %v", event.Kind())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("should deliver creation events only to the matching owner", func(t *testing.T) {
		bus := notifications.NewBus(testLogger())
		defer bus.Close()

		refs := orderRefs{customerID: kernel.NewUUID(), ownerID: kernel.NewUUID()}
		ownerSub, err := notifications.SubscribeOrderCreated(bus, refs.ownerID)
		require.NoError(t, err)
		otherSub, err := notifications.SubscribeOrderCreated(bus, kernel.NewUUID())
		require.NoError(t, err)

		bus.Publish(ctx, notifications.NewOrderCreated(buildOrder(t, refs, order.StatusPending)))

		event := receiveEvent(t, ownerSub)
		assert.Equal(t, notifications.KindOrderCreated, event.Kind())
		requireNoEvent(t, otherSub)
	})

	t.Run("should not cross event kinds", func(t *testing.T) {
		bus := notifications.NewBus(testLogger())
		defer bus.Close()

		cookedSub, err := notifications.SubscribeOrderCooked(bus)
		require.NoError(t, err)

		refs := orderRefs{customerID: kernel.NewUUID(), ownerID: kernel.NewUUID()}
		bus.Publish(ctx, notifications.NewOrderCreated(buildOrder(t, refs, order.StatusPending)))

		requireNoEvent(t, cookedSub)
	})

	t.Run("should deliver cooked events to every driver subscriber", func(t *testing.T) {
		bus := notifications.NewBus(testLogger())
		defer bus.Close()

		first, err := notifications.SubscribeOrderCooked(bus)
		require.NoError(t, err)
		second, err := notifications.SubscribeOrderCooked(bus)
		require.NoError(t, err)

		refs := orderRefs{customerID: kernel.NewUUID(), ownerID: kernel.NewUUID()}
		bus.Publish(ctx, notifications.NewOrderCooked(buildOrder(t, refs, order.StatusCooked)))

		assert.Equal(t, notifications.KindOrderCooked, receiveEvent(t, first).Kind())
		assert.Equal(t, notifications.KindOrderCooked, receiveEvent(t, second).Kind())
	})

	t.Run("should preserve publish order per subscriber", func(t *testing.T) {
		bus := notifications.NewBus(testLogger())
		defer bus.Close()

		sub, err := notifications.SubscribeOrderCooked(bus)
		require.NoError(t, err)

		refs := orderRefs{customerID: kernel.NewUUID(), ownerID: kernel.NewUUID()}
		published := make([]*order.Order, 5)
		for i := range published {
			published[i] = buildOrder(t, refs, order.StatusCooked)
			bus.Publish(ctx, notifications.NewOrderCooked(published[i]))
		}

		for i := range published {
			event := receiveEvent(t, sub)
			assert.True(t, event.Order().IsEqual(published[i]), "event %d out of order", i)
		}
	})

	t.Run("should drop the oldest event when a mailbox overflows", func(t *testing.T) {
		bus := notifications.NewBusWithMailboxSize(testLogger(), 2)
		defer bus.Close()

		sub, err := notifications.SubscribeOrderCooked(bus)
		require.NoError(t, err)

		refs := orderRefs{customerID: kernel.NewUUID(), ownerID: kernel.NewUUID()}
		published := make([]*order.Order, 3)
		for i := range published {
			published[i] = buildOrder(t, refs, order.StatusCooked)
			bus.Publish(ctx, notifications.NewOrderCooked(published[i]))
		}

		// mailbox of two: the first event made way for the third
		assert.True(t, receiveEvent(t, sub).Order().IsEqual(published[1]))
		assert.True(t, receiveEvent(t, sub).Order().IsEqual(published[2]))
		requireNoEvent(t, sub)
	})

	t.Run("should keep serving fast subscribers while one is saturated", func(t *testing.T) {
		bus := notifications.NewBusWithMailboxSize(testLogger(), 1)
		defer bus.Close()

		slow, err := notifications.SubscribeOrderCooked(bus)
		require.NoError(t, err)
		_ = slow // never drained

		fast, err := notifications.SubscribeOrderCooked(bus)
		require.NoError(t, err)

		refs := orderRefs{customerID: kernel.NewUUID(), ownerID: kernel.NewUUID()}
		for range 10 {
			bus.Publish(ctx, notifications.NewOrderCooked(buildOrder(t, refs, order.StatusCooked)))
			receiveEvent(t, fast)
		}
	})
}

func TestBus_Subscriptions(t *testing.T) {
	ctx := context.Background()

	t.Run("should not replay events published before subscribing", func(t *testing.T) {
		bus := notifications.NewBus(testLogger())
		defer bus.Close()

		refs := orderRefs{customerID: kernel.NewUUID(), ownerID: kernel.NewUUID()}
		bus.Publish(ctx, notifications.NewOrderCooked(buildOrder(t, refs, order.StatusCooked)))

		sub, err := notifications.SubscribeOrderCooked(bus)
		require.NoError(t, err)

		requireNoEvent(t, sub)
	})

	t.Run("should close the channel on unsubscribe and tolerate repeats", func(t *testing.T) {
		bus := notifications.NewBus(testLogger())
		defer bus.Close()

		sub, err := notifications.SubscribeOrderCooked(bus)
		require.NoError(t, err)

		bus.Unsubscribe(sub)
		bus.Unsubscribe(sub)

		_, open := <-sub.Events()
		assert.False(t, open)
	})

	t.Run("should refuse subscriptions after close", func(t *testing.T) {
		bus := notifications.NewBus(testLogger())
		require.NoError(t, bus.Close())

		_, err := notifications.SubscribeOrderCooked(bus)
		assert.ErrorIs(t, err, notifications.ErrBusClosed)
	})

	t.Run("should gate per-order subscriptions by visibility", func(t *testing.T) {
		bus := notifications.NewBus(testLogger())
		defer bus.Close()

		driverID := kernel.NewUUID()
		driver, err := kernel.NewActor(driverID, kernel.RoleDelivery)
		require.NoError(t, err)

		refs := orderRefs{customerID: kernel.NewUUID(), ownerID: kernel.NewUUID()}
		unassigned := buildOrder(t, refs, order.StatusCooked)

		sub, err := notifications.SubscribeOrderChanged(bus, driver, unassigned.ID())
		require.NoError(t, err)

		// not the driver's order yet
		bus.Publish(ctx, notifications.NewOrderChanged(unassigned))
		requireNoEvent(t, sub)

		// the assignment event itself is the first one the driver sees
		require.NoError(t, unassigned.AssignDriver(driverID))
		bus.Publish(ctx, notifications.NewOrderChanged(unassigned))
		event := receiveEvent(t, sub)
		assert.Equal(t, notifications.KindOrderChanged, event.Kind())
	})

	t.Run("should survive concurrent publishes and unsubscribes", func(t *testing.T) {
		bus := notifications.NewBus(testLogger())
		defer bus.Close()

		refs := orderRefs{customerID: kernel.NewUUID(), ownerID: kernel.NewUUID()}
		subs := make([]*notifications.Subscription, 20)
		for i := range subs {
			sub, err := notifications.SubscribeOrderCooked(bus)
			require.NoError(t, err)
			subs[i] = sub
		}

		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 50 {
					bus.Publish(ctx, notifications.NewOrderCooked(buildOrder(t, refs, order.StatusCooked)))
				}
			}()
		}
		for _, sub := range subs[:10] {
			wg.Add(1)
			go func() {
				defer wg.Done()
				bus.Unsubscribe(sub)
			}()
		}
		wg.Wait()
	})
}
