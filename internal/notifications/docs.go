// Package notifications delivers real-time order events to connected parties.
//
// Three feeds exist: restaurant owners watch creations against their
// restaurants, delivery drivers watch the shared cooked-orders feed, and any
// party visible on an order may watch that order's changes. Visibility for the
// per-order feed reuses the same access rules that gate reads.
//
// Delivery is best-effort: each subscriber owns a bounded mailbox, slow
// subscribers lose their oldest events rather than stalling publishers, and
// there is no history replay. Bus serves a single process; RedisBus spans
// instances over redis pub/sub with the same subscriber contract.
package notifications
