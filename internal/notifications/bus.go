package notifications

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"eats/internal/core/domain/model/kernel"
)

// DefaultMailboxSize bounds each subscriber's buffer. When a subscriber falls
// behind, the oldest queued event is dropped to make room for the newest one.
const DefaultMailboxSize = 16

// ErrBusClosed is returned when subscribing to a bus that was shut down.
var ErrBusClosed = errors.New("notification bus is closed")

// Broker delivers order events to interested subscribers. The in-process Bus
// serves a single instance; RedisBus fans events out across instances with the
// same contract.
type Broker interface {
	// Publish delivers the event to every matching subscriber. Publish never
	// blocks on slow subscribers and never fails the caller: delivery is
	// best-effort by design, so a notification problem cannot fail the
	// command that produced it.
	Publish(ctx context.Context, event Event)

	// Subscribe registers a mailbox for events of the given kind that pass
	// the filter.
	Subscribe(kind EventKind, filter Filter) (*Subscription, error)

	// Unsubscribe removes the subscription and closes its channel. Safe to
	// call more than once.
	Unsubscribe(sub *Subscription)

	// Close shuts the broker down and closes all subscriber channels.
	Close() error
}

// Subscription is one subscriber's mailbox. Events arrive in publish order;
// the channel is closed by Unsubscribe or by the broker shutting down.
type Subscription struct {
	id     uint64
	kind   EventKind
	filter Filter

	mu     sync.Mutex
	ch     chan Event
	closed bool
}

// Events returns the subscription's event channel.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// deliver enqueues the event, dropping the oldest queued one when the mailbox
// is full. Holding s.mu for the whole operation keeps per-subscriber ordering
// intact under concurrent publishes.
func (s *Subscription) deliver(event Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	dropped := false
	if len(s.ch) == cap(s.ch) {
		select {
		case <-s.ch:
			dropped = true
		default:
		}
	}
	s.ch <- event
	return dropped
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// Bus is the in-process Broker. Publishing touches subscribers directly, so a
// Bus only reaches subscribers of its own process; deployments with several
// instances use RedisBus instead.
//
// Publish is O(subscribers) under a read lock and safe for concurrent use.
// There is no event history: a subscriber only sees events published after it
// subscribed.
type Bus struct {
	mu          sync.RWMutex
	subs        map[uint64]*Subscription
	nextID      uint64
	closed      bool
	mailboxSize int
	logger      *slog.Logger
}

// NewBus creates an in-process bus with the default mailbox size.
func NewBus(logger *slog.Logger) *Bus {
	return NewBusWithMailboxSize(logger, DefaultMailboxSize)
}

// NewBusWithMailboxSize creates a bus with a custom per-subscriber buffer.
func NewBusWithMailboxSize(logger *slog.Logger, mailboxSize int) *Bus {
	if mailboxSize < 1 {
		mailboxSize = 1
	}
	return &Bus{
		subs:        make(map[uint64]*Subscription),
		mailboxSize: mailboxSize,
		logger:      logger,
	}
}

// Publish delivers the event to every subscriber of the event's kind whose
// filter passes. See Broker.Publish for the delivery guarantees.
func (b *Bus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	matched := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.kind == event.Kind() && sub.filter(event) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range matched {
		if sub.deliver(event) {
			b.logger.Warn("subscriber mailbox full, dropped oldest event",
				"kind", string(event.Kind()),
				"orderId", event.Order().ID().String(),
			)
		}
	}
}

// Subscribe registers a mailbox for events of the given kind passing filter.
func (b *Bus) Subscribe(kind EventKind, filter Filter) (*Subscription, error) {
	if filter == nil {
		filter = All()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	b.nextID++
	sub := &Subscription{
		id:     b.nextID,
		kind:   kind,
		filter: filter,
		ch:     make(chan Event, b.mailboxSize),
	}
	b.subs[sub.id] = sub
	return sub, nil
}

// Unsubscribe removes the subscription and closes its channel. Idempotent.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	delete(b.subs, sub.id)
	b.mu.Unlock()

	sub.close()
}

// Close shuts the bus down. Further Subscribe calls fail with ErrBusClosed;
// Publish becomes a no-op.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.subs = make(map[uint64]*Subscription)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
	return nil
}

// SubscribeOrderCreated subscribes a restaurant owner to creation events for
// their restaurants.
func SubscribeOrderCreated(b Broker, ownerID kernel.UUID) (*Subscription, error) {
	return b.Subscribe(KindOrderCreated, OrderCreatedForOwner(ownerID))
}

// SubscribeOrderCooked subscribes a delivery driver to the cooked-orders feed.
func SubscribeOrderCooked(b Broker) (*Subscription, error) {
	return b.Subscribe(KindOrderCooked, CookedOrdersForDrivers())
}

// SubscribeOrderChanged subscribes an actor to updates of one order, gated by
// the same visibility rules that gate reads.
func SubscribeOrderChanged(b Broker, actor kernel.Actor, orderID kernel.UUID) (*Subscription, error) {
	return b.Subscribe(KindOrderChanged, OrderChangesFor(actor, orderID))
}
