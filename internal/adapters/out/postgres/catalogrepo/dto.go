// Package catalogrepo provides data transfer objects and mapping functions for
// catalog persistence: restaurants and the dishes on their menus.
package catalogrepo

import (
	"time"

	"eats/internal/core/domain/model/catalog"
	"eats/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for persisting restaurants.
type RestaurantDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	OwnerID       uuid.UUID `gorm:"type:uuid;index"`
	IsPromoted    bool      `gorm:"index"`
	PromotedUntil *time.Time
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// DishDTO represents the database structure for persisting dishes.
// The option groups live in a JSON column: they are read as a whole with the
// dish and never queried individually.
type DishDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	Price        int64
	Options      []OptionDTO `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for dish entities.
func (DishDTO) TableName() string {
	return "dishes"
}

// OptionDTO is one option group within the dish options JSON column.
type OptionDTO struct {
	Name    string      `json:"name"`
	Extra   *int64      `json:"extra,omitempty"`
	Choices []ChoiceDTO `json:"choices,omitempty"`
}

// ChoiceDTO is one choice within an option group.
type ChoiceDTO struct {
	Name  string `json:"name"`
	Extra *int64 `json:"extra,omitempty"`
}

func restaurantFromDomain(restaurant *catalog.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:            restaurant.ID().Bytes(),
		Name:          restaurant.Name(),
		OwnerID:       restaurant.OwnerID().Bytes(),
		IsPromoted:    restaurant.IsPromoted(),
		PromotedUntil: restaurant.PromotedUntil(),
	}
}

func restaurantToDomain(dto RestaurantDTO) (*catalog.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return catalog.RestoreRestaurant(id, dto.Name, ownerID, dto.IsPromoted, dto.PromotedUntil)
}

func dishFromDomain(dish *catalog.Dish) DishDTO {
	options := make([]OptionDTO, 0, len(dish.Options()))
	for _, option := range dish.Options() {
		choices := make([]ChoiceDTO, 0, len(option.Choices()))
		for _, choice := range option.Choices() {
			choices = append(choices, ChoiceDTO{Name: choice.Name(), Extra: choice.Extra()})
		}
		options = append(options, OptionDTO{
			Name:    option.Name(),
			Extra:   option.Extra(),
			Choices: choices,
		})
	}

	return DishDTO{
		ID:           dish.ID().Bytes(),
		RestaurantID: dish.RestaurantID().Bytes(),
		Name:         dish.Name(),
		Price:        dish.Price(),
		Options:      options,
	}
}

func dishToDomain(dto DishDTO) (*catalog.Dish, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	options := make([]catalog.Option, 0, len(dto.Options))
	for _, optionDTO := range dto.Options {
		choices := make([]catalog.Choice, 0, len(optionDTO.Choices))
		for _, choiceDTO := range optionDTO.Choices {
			choice, choiceErr := catalog.NewChoice(choiceDTO.Name, choiceDTO.Extra)
			if choiceErr != nil {
				return nil, choiceErr
			}
			choices = append(choices, choice)
		}
		option, optionErr := catalog.NewOption(optionDTO.Name, optionDTO.Extra, choices)
		if optionErr != nil {
			return nil, optionErr
		}
		options = append(options, option)
	}

	return catalog.NewDish(id, restaurantID, dto.Name, dto.Price, options)
}
