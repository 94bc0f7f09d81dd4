package order

import (
	"eats/internal/core/domain/model/kernel"
	"eats/internal/pkg/errs"
)

// OptionPick records one option selected for an ordered dish: the option group
// name plus, when the group offers choices, the chosen choice name. Only names
// are stored, never prices, so later menu edits cannot change what a placed
// order cost.
//
// OptionPick is an immutable value object.
type OptionPick struct {
	option string
	choice string
}

// NewOptionPick creates a pick of an option group. choice may be empty for
// options that carry a flat extra charge rather than sub-choices.
func NewOptionPick(option, choice string) (OptionPick, error) {
	if option == "" {
		return OptionPick{}, errs.NewValueIsRequiredError("option")
	}
	return OptionPick{option: option, choice: choice}, nil
}

// Option returns the selected option group name.
func (p OptionPick) Option() string {
	return p.option
}

// Choice returns the selected choice name, empty for flat-extra options.
func (p OptionPick) Choice() string {
	return p.choice
}

// ItemSelection is one line of an order: a dish reference plus the customer's
// option picks. Selections are created at order-creation time and never
// mutated afterward.
type ItemSelection struct {
	dishID kernel.UUID
	picks  []OptionPick
}

// NewItemSelection creates a selection of a dish with its option picks.
// picks may be empty for a dish ordered without modifiers.
func NewItemSelection(dishID kernel.UUID, picks []OptionPick) (ItemSelection, error) {
	if err := dishID.Validate(); err != nil {
		return ItemSelection{}, err
	}
	return ItemSelection{dishID: dishID, picks: picks}, nil
}

// DishID returns the identifier of the ordered dish.
func (s ItemSelection) DishID() kernel.UUID {
	return s.dishID
}

// Picks returns the option picks in selection order.
func (s ItemSelection) Picks() []OptionPick {
	return s.picks
}
