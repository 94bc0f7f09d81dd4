// Package order provides domain entities and business logic for order
// management in the food ordering system. It implements the Order aggregate
// root with lifecycle management.
//
// The package includes:
//   - Order: the aggregate root holding identity, references, items, resolved
//     total, and status
//   - ItemSelection / OptionPick: immutable snapshots of what was ordered,
//     storing names only so catalog price changes never drift past totals
//   - Status: the lifecycle enumeration Pending, Cooking, Cooked, PickedUp,
//     Delivered
//
// Key business rules:
//   - Orders must have at least one item and a non-negative resolved total
//   - The total is computed once at creation and never recomputed
//   - A driver, once assigned, is never replaced
//   - Which actor may move status where is an authorization concern and lives
//     in the services package, not in the aggregate
package order
