// Package kernel provides shared value objects used across all domain models
// in the ordering system.
//
// The package includes:
//   - UUID: A validated wrapper around github.com/google/uuid for entity identity
//   - Role: The closed enumeration of account roles (Client, Owner, Delivery)
//   - Actor: The authenticated identity (id + role) performing an operation
//
// All types are immutable value objects constructed through factory functions.
// Zero values are invalid and detected by Validate methods, preventing
// accidentally uninitialized identities from flowing into authorization
// decisions.
package kernel
