package kernel

import (
	"fmt"

	"eats/internal/pkg/errs"
)

// Role represents the fixed account role of a user.
// It is a closed enumeration: every authorization decision in the system
// switches exhaustively over the three valid roles, so adding a role forces
// every decision point to be revisited.
//
// Role is a value object; the zero value (RoleUnknown) is invalid and helps
// catch uninitialized values coming from persistence or transport layers.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleClient is a customer placing orders. Clients may read their own
	// orders but never change order status.
	RoleClient

	// RoleOwner is a restaurant owner. Owners see and update orders placed
	// against restaurants they own.
	RoleOwner

	// RoleDelivery is a driver. Drivers see orders assigned to them and may
	// take unassigned orders.
	RoleDelivery
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleClient:   "Client",
		RoleOwner:    "Owner",
		RoleDelivery: "Delivery",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleClient:   "Client",
		RoleOwner:    "Owner",
		RoleDelivery: "Delivery",
	}
}

// RoleFromString parses a role name ("Client", "Owner", "Delivery").
// Returns an error for any other input, including the empty string.
func RoleFromString(s string) (Role, error) {
	for role, name := range getValidRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Valid roles are: Client, Owner, Delivery.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Safe to call on any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
