package catalog

import (
	"errors"
	"time"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/pkg/errs"
)

var (
	// ErrRestaurantIsNotConstructed is returned when a Restaurant instance was not
	// created through the NewRestaurant or RestoreRestaurant factory functions.
	ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")
)

// Restaurant represents a restaurant in the catalog. It carries the identity of
// its owner, which drives every visibility and authorization decision over the
// restaurant's orders, and an optional time-boxed promotion.
//
// Restaurant follows these invariants:
//   - Must have a valid unique identifier and a valid owner identifier
//   - Name must not be empty
//   - A promoted restaurant carries the instant its promotion expires
type Restaurant struct {
	// id is the unique identifier for the restaurant
	id kernel.UUID

	// name is the display name of the restaurant
	name string

	// ownerID identifies the user account that owns this restaurant
	ownerID kernel.UUID

	// isPromoted reports whether the restaurant currently holds a paid promotion
	isPromoted bool

	// promotedUntil is the promotion expiry instant, nil when not promoted
	promotedUntil *time.Time

	// isConstructed ensures the restaurant was created via a constructor
	isConstructed bool
}

// NewRestaurant creates a new Restaurant with validation.
// The restaurant starts without a promotion.
func NewRestaurant(id kernel.UUID, name string, ownerID kernel.UUID) (*Restaurant, error) {
	restaurant := &Restaurant{
		isConstructed: true,
	}

	if err := errors.Join(
		restaurant.setID(id),
		restaurant.setName(name),
		restaurant.setOwnerID(ownerID),
	); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// RestoreRestaurant reconstructs a Restaurant from persistent storage,
// including its promotion state.
func RestoreRestaurant(
	id kernel.UUID,
	name string,
	ownerID kernel.UUID,
	isPromoted bool,
	promotedUntil *time.Time,
) (*Restaurant, error) {
	restaurant, err := NewRestaurant(id, name, ownerID)
	if err != nil {
		return nil, err
	}

	restaurant.isPromoted = isPromoted
	restaurant.promotedUntil = promotedUntil
	return restaurant, nil
}

// Validate ensures the Restaurant instance was properly constructed.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

// ID returns the restaurant's unique identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// Name returns the restaurant's display name.
func (r *Restaurant) Name() string {
	return r.name
}

// OwnerID returns the identifier of the owning user account.
func (r *Restaurant) OwnerID() kernel.UUID {
	return r.ownerID
}

// IsPromoted reports whether the restaurant currently holds a promotion.
func (r *Restaurant) IsPromoted() bool {
	return r.isPromoted
}

// PromotedUntil returns the promotion expiry instant, nil when not promoted.
func (r *Restaurant) PromotedUntil() *time.Time {
	return r.promotedUntil
}

// Promote marks the restaurant as promoted until the given instant.
func (r *Restaurant) Promote(until time.Time) {
	r.isPromoted = true
	r.promotedUntil = &until
}

// ExpirePromotion clears the restaurant's promotion.
// Safe to call on a restaurant that is not promoted.
func (r *Restaurant) ExpirePromotion() {
	r.isPromoted = false
	r.promotedUntil = nil
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Restaurant) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	r.ownerID = ownerID
	return nil
}
