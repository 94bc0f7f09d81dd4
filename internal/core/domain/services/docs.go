// Package services provides stateless domain services for the ordering system.
//
// The package includes:
//   - Pricer: resolves order totals from the catalog and customer selections
//   - AccessPolicy: decides order visibility per actor role
//   - TransitionPolicy: authorizes status changes per actor role
//
// All services are pure: they hold no state, take domain values in, and return
// decisions out, which makes them safe under arbitrary concurrency. They
// implement the business logic that spans aggregates and therefore does not
// belong to any single aggregate root.
package services
