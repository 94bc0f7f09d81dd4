package notifications

import "eats/internal/core/domain/model/order"

// EventKind discriminates notification events. The kind doubles as the redis
// channel suffix when events cross process boundaries.
type EventKind string

const (
	// KindOrderCreated fires once when a customer places an order.
	KindOrderCreated EventKind = "order.created"

	// KindOrderCooked fires when an order reaches the Cooked status.
	KindOrderCooked EventKind = "order.cooked"

	// KindOrderChanged fires on every order mutation: status changes and
	// driver assignment.
	KindOrderChanged EventKind = "order.changed"
)

// Event is a notification about an order. Events carry the full aggregate so
// subscribers can render the order without a follow-up read.
type Event interface {
	Kind() EventKind
	Order() *order.Order
}

// OrderCreated announces a freshly placed order to the restaurant's owner.
type OrderCreated struct {
	order *order.Order
}

// NewOrderCreated wraps a just-placed order into its creation event.
func NewOrderCreated(o *order.Order) OrderCreated {
	return OrderCreated{order: o}
}

func (e OrderCreated) Kind() EventKind     { return KindOrderCreated }
func (e OrderCreated) Order() *order.Order { return e.order }

// OrderCooked announces that the kitchen finished an order. Drivers watch this
// feed to pick up work.
type OrderCooked struct {
	order *order.Order
}

// NewOrderCooked wraps a cooked order into its event.
func NewOrderCooked(o *order.Order) OrderCooked {
	return OrderCooked{order: o}
}

func (e OrderCooked) Kind() EventKind     { return KindOrderCooked }
func (e OrderCooked) Order() *order.Order { return e.order }

// OrderChanged announces any order mutation to the parties watching that
// specific order.
type OrderChanged struct {
	order *order.Order
}

// NewOrderChanged wraps a mutated order into its change event.
func NewOrderChanged(o *order.Order) OrderChanged {
	return OrderChanged{order: o}
}

func (e OrderChanged) Kind() EventKind     { return KindOrderChanged }
func (e OrderChanged) Order() *order.Order { return e.order }
