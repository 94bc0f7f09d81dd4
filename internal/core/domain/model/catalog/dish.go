package catalog

import (
	"errors"
	"fmt"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/pkg/errs"
)

var (
	// ErrDishIsNotConstructed is returned when a Dish instance was not created
	// through the NewDish factory function.
	ErrDishIsNotConstructed = errors.New("Dish must be created via NewDish constructor")
)

// Choice is a specific pick within an option group, e.g. "Large" within "Size".
// A choice may carry an extra charge in minor currency units.
//
// Choice is an immutable value object.
type Choice struct {
	name  string
	extra *int64
}

// NewChoice creates a choice with an optional extra charge.
// extra, when present, must not be negative.
func NewChoice(name string, extra *int64) (Choice, error) {
	if name == "" {
		return Choice{}, errs.NewValueIsRequiredError("choice name")
	}
	if extra != nil && *extra < 0 {
		return Choice{}, errs.NewValueIsInvalidErrorWithCause("choice extra",
			fmt.Errorf("%d is negative", *extra))
	}
	return Choice{name: name, extra: extra}, nil
}

// Name returns the choice name.
func (c Choice) Name() string {
	return c.name
}

// Extra returns the choice's extra charge, nil when the choice is free.
func (c Choice) Extra() *int64 {
	return c.extra
}

// Option is a dish-level modifier group, e.g. "Size" or "Add pickles".
// An option either carries a flat extra charge that applies regardless of any
// sub-choice, or offers a list of choices each with their own extra.
//
// Option is an immutable value object.
type Option struct {
	name    string
	extra   *int64
	choices []Choice
}

// NewOption creates an option group with an optional flat extra charge and an
// ordered list of choices. extra, when present, must not be negative.
func NewOption(name string, extra *int64, choices []Choice) (Option, error) {
	if name == "" {
		return Option{}, errs.NewValueIsRequiredError("option name")
	}
	if extra != nil && *extra < 0 {
		return Option{}, errs.NewValueIsInvalidErrorWithCause("option extra",
			fmt.Errorf("%d is negative", *extra))
	}
	return Option{name: name, extra: extra, choices: choices}, nil
}

// Name returns the option group name.
func (o Option) Name() string {
	return o.name
}

// Extra returns the option's flat extra charge, nil when the option prices
// through its choices instead.
func (o Option) Extra() *int64 {
	return o.extra
}

// Choices returns the option's choices in catalog order.
func (o Option) Choices() []Choice {
	return o.choices
}

// Choice looks up a choice by name within this option group.
func (o Option) Choice(name string) (Choice, bool) {
	for _, choice := range o.choices {
		if choice.name == name {
			return choice, true
		}
	}
	return Choice{}, false
}

// Dish represents a catalog entry that customers order: a base price plus
// configurable option groups. Orders never store dish prices; they resolve the
// price once at creation time so later menu changes cannot drift past totals.
type Dish struct {
	// id is the unique identifier for the dish
	id kernel.UUID

	// restaurantID identifies the restaurant offering this dish
	restaurantID kernel.UUID

	// name is the display name of the dish
	name string

	// price is the base price in minor currency units
	price int64

	// options are the configurable modifier groups in catalog order
	options []Option

	// isConstructed ensures the dish was created via NewDish
	isConstructed bool
}

// NewDish creates a new Dish with validation.
// Price is in minor currency units and must not be negative.
func NewDish(
	id kernel.UUID,
	restaurantID kernel.UUID,
	name string,
	price int64,
	options []Option,
) (*Dish, error) {
	dish := &Dish{
		options:       options,
		isConstructed: true,
	}

	if err := errors.Join(
		dish.setID(id),
		dish.setRestaurantID(restaurantID),
		dish.setName(name),
		dish.setPrice(price),
	); err != nil {
		return nil, err
	}

	return dish, nil
}

// Validate ensures the Dish instance was properly constructed.
func (d *Dish) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDishIsNotConstructed
	}
	return nil
}

// ID returns the dish's unique identifier.
func (d *Dish) ID() kernel.UUID {
	return d.id
}

// RestaurantID returns the identifier of the offering restaurant.
func (d *Dish) RestaurantID() kernel.UUID {
	return d.restaurantID
}

// Name returns the dish's display name.
func (d *Dish) Name() string {
	return d.name
}

// Price returns the base price in minor currency units.
func (d *Dish) Price() int64 {
	return d.price
}

// Options returns the dish's option groups in catalog order.
func (d *Dish) Options() []Option {
	return d.options
}

// Option looks up an option group by name.
func (d *Dish) Option(name string) (Option, bool) {
	for _, option := range d.options {
		if option.name == name {
			return option, true
		}
	}
	return Option{}, false
}

func (d *Dish) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Dish) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	d.restaurantID = restaurantID
	return nil
}

func (d *Dish) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

func (d *Dish) setPrice(price int64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%d is negative", price))
	}
	d.price = price
	return nil
}
