package services

import (
	"errors"

	"eats/internal/core/domain/model/catalog"
	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"
)

// ErrDishNotFound is returned when a selection references a dish id that does
// not exist in the catalog. Unlike unknown option or choice names, a missing
// dish is fatal: the order cannot be priced.
var ErrDishNotFound = errors.New("dish not found")

// PricedItem is one resolved order line: the dish plus the price after
// applying all recognized option and choice extras.
type PricedItem struct {
	DishID kernel.UUID
	Price  int64
}

// Pricer resolves the price of an order from the restaurant's catalog and the
// customer's selections. It is a pure domain service with no state; prices are
// integer minor-currency-unit amounts, so totals are deterministic.
//
// Pricing rules per selection:
//   - Start from the dish's base price.
//   - For each picked option present in the dish's option list: an option
//     carrying a flat extra adds it unconditionally; otherwise the picked
//     choice is looked up within the option and its extra, if any, is added.
//   - Option or choice names absent from the catalog are silently ignored.
//     Menus can change between browsing and ordering, and an order must not
//     fail because a modifier disappeared.
type Pricer struct{}

// NewPricer creates the pricing service.
func NewPricer() Pricer {
	return Pricer{}
}

// Total resolves each selection against the dishes of one restaurant and
// returns the per-item prices together with their sum.
// Returns ErrDishNotFound if any selection references a dish absent from dishes.
func (Pricer) Total(
	dishes []*catalog.Dish,
	selections []order.ItemSelection,
) ([]PricedItem, int64, error) {
	byID := make(map[kernel.UUID]*catalog.Dish, len(dishes))
	for _, dish := range dishes {
		byID[dish.ID()] = dish
	}

	items := make([]PricedItem, 0, len(selections))
	var total int64

	for _, selection := range selections {
		dish, ok := byID[selection.DishID()]
		if !ok {
			return nil, 0, ErrDishNotFound
		}

		price := dish.Price()
		for _, pick := range selection.Picks() {
			option, found := dish.Option(pick.Option())
			if !found {
				continue
			}

			if extra := option.Extra(); extra != nil {
				price += *extra
				continue
			}

			choice, found := option.Choice(pick.Choice())
			if !found {
				continue
			}
			if extra := choice.Extra(); extra != nil {
				price += *extra
			}
		}

		items = append(items, PricedItem{DishID: dish.ID(), Price: price})
		total += price
	}

	return items, total, nil
}
