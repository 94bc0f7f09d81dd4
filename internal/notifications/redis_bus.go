package notifications

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// channelPrefix namespaces the event channels in redis.
const channelPrefix = "eats:events:"

func channelFor(kind EventKind) string {
	return channelPrefix + string(kind)
}

// RedisBus is the multi-instance Broker. Publishing sends the event through
// redis pub/sub, so subscribers on every instance receive it; local delivery
// semantics (filters, bounded mailboxes, drop-oldest) are identical to Bus
// because RedisBus dispatches received events through an embedded Bus.
//
// Like redis pub/sub itself, delivery is at-most-once with no history: events
// published while an instance is down are gone.
type RedisBus struct {
	client *redis.Client
	inner  *Bus
	pubsub *redis.PubSub
	logger *slog.Logger
}

// NewRedisBus creates a broker backed by redis pub/sub and starts consuming
// the event channels. The caller owns the client's lifecycle.
func NewRedisBus(client *redis.Client, logger *slog.Logger) *RedisBus {
	b := &RedisBus{
		client: client,
		inner:  NewBus(logger),
		logger: logger,
	}

	b.pubsub = client.Subscribe(context.Background(),
		channelFor(KindOrderCreated),
		channelFor(KindOrderCooked),
		channelFor(KindOrderChanged),
	)
	go b.pump()

	return b
}

// Publish encodes the event and sends it through redis. Errors are logged,
// not returned: notification delivery is best-effort and must never fail the
// command that produced the event.
func (b *RedisBus) Publish(ctx context.Context, event Event) {
	payload, err := encodeEvent(event)
	if err != nil {
		b.logger.Error("encode notification event", "kind", string(event.Kind()), "error", err)
		return
	}

	if err := b.client.Publish(ctx, channelFor(event.Kind()), payload).Err(); err != nil {
		b.logger.Error("publish notification event",
			"kind", string(event.Kind()),
			"orderId", event.Order().ID().String(),
			"error", err,
		)
	}
}

// Subscribe registers a local mailbox; the filter runs on this instance
// against events received from redis.
func (b *RedisBus) Subscribe(kind EventKind, filter Filter) (*Subscription, error) {
	return b.inner.Subscribe(kind, filter)
}

// Unsubscribe removes the subscription and closes its channel. Idempotent.
func (b *RedisBus) Unsubscribe(sub *Subscription) {
	b.inner.Unsubscribe(sub)
}

// Close stops consuming from redis and closes all subscriber channels.
func (b *RedisBus) Close() error {
	err := b.pubsub.Close()
	if innerErr := b.inner.Close(); err == nil {
		err = innerErr
	}
	return err
}

// pump moves events from redis into the local dispatch. It exits when the
// pubsub connection is closed.
func (b *RedisBus) pump() {
	for msg := range b.pubsub.Channel() {
		event, err := decodeEvent([]byte(msg.Payload))
		if err != nil {
			b.logger.Error("decode notification event", "channel", msg.Channel, "error", err)
			continue
		}
		b.inner.Publish(context.Background(), event)
	}
}
