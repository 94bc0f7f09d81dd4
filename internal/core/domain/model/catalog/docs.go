// Package catalog provides domain entities for the restaurant menu catalog.
//
// The package includes:
//   - Restaurant: identity, owner, and time-boxed promotion state
//   - Dish: a priced catalog entry with configurable option groups
//   - Option / Choice: modifier groups and their picks, each optionally
//     carrying an extra charge in minor currency units
//
// Pricing semantics live in the services package; catalog entries only expose
// lookups. Orders snapshot option and choice names, never prices, so a dish's
// catalog price can change without affecting already-placed orders.
package catalog
