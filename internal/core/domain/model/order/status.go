package order

import (
	"fmt"

	"eats/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The intended progression is linear:
//
//	Pending ──> Cooking ──> Cooked ──> PickedUp ──> Delivered
//
// The domain does not force every intermediate step: authorization limits which
// statuses each role may set (see services.TransitionPolicy), and an owner may
// for example mark an order Cooked straight from Pending. Callers relying on a
// strict chain would change observable behavior for existing clients.
//
// Status is a value object that provides validation and string representations
// for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is placed and is
	// waiting for the restaurant to start cooking.
	StatusPending

	// StatusCooking indicates the restaurant has started preparing the order.
	StatusCooking

	// StatusCooked indicates the food is ready and waiting for pickup.
	// Reaching this status notifies all drivers.
	StatusCooked

	// StatusPickedUp indicates the assigned driver has collected the order.
	StatusPickedUp

	// StatusDelivered indicates the order reached the customer.
	// This is the final state.
	StatusDelivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusCooking:   "Cooking",
		StatusCooked:    "Cooked",
		StatusPickedUp:  "PickedUp",
		StatusDelivered: "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "Pending",
		StatusCooking:   "Cooking",
		StatusCooked:    "Cooked",
		StatusPickedUp:  "PickedUp",
		StatusDelivered: "Delivered",
	}
}

// StatusFromString parses a status name ("Pending", "Cooking", "Cooked",
// "PickedUp", "Delivered"). Returns an error for any other input.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
