// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// All party references are nullable: removing an account clears the reference
// on its orders instead of cascading a delete.
type OrderDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID        *uuid.UUID     `gorm:"type:uuid;index"`
	RestaurantID      *uuid.UUID     `gorm:"type:uuid;index"`
	RestaurantOwnerID *uuid.UUID     `gorm:"type:uuid;index"`
	DriverID          *uuid.UUID     `gorm:"type:uuid;index"`
	Items             []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total             int64
	Status            string `gorm:"type:varchar(16);index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line. The picks are denormalized into a
// JSON column: only names, never prices, so menu edits cannot rewrite what a
// placed order cost.
type OrderItemDTO struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	DishID  uuid.UUID `gorm:"type:uuid"`
	Picks   []PickDTO `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// PickDTO is one selected option within the picks JSON column.
type PickDTO struct {
	Option string `json:"option"`
	Choice string `json:"choice,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, sel := range aggregate.Items() {
		picks := make([]PickDTO, 0, len(sel.Picks()))
		for _, p := range sel.Picks() {
			picks = append(picks, PickDTO{Option: p.Option(), Choice: p.Choice()})
		}
		items = append(items, OrderItemDTO{
			OrderID: aggregate.ID().Bytes(),
			DishID:  sel.DishID().Bytes(),
			Picks:   picks,
		})
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		CustomerID:        optionalID(aggregate.CustomerID()),
		RestaurantID:      optionalID(aggregate.RestaurantID()),
		RestaurantOwnerID: optionalID(aggregate.RestaurantOwnerID()),
		DriverID:          optionalID(aggregate.DriverID()),
		Items:             items,
		Total:             aggregate.Total(),
		Status:            aggregate.Status().String(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items and status using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := optionalDomainID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := optionalDomainID(dto.RestaurantID)
	if err != nil {
		return nil, err
	}
	ownerID, err := optionalDomainID(dto.RestaurantOwnerID)
	if err != nil {
		return nil, err
	}
	driverID, err := optionalDomainID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemSelection, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		dishID, dishErr := kernel.UUIDFromBytes(itemDTO.DishID[:])
		if dishErr != nil {
			return nil, dishErr
		}
		picks := make([]order.OptionPick, 0, len(itemDTO.Picks))
		for _, pickDTO := range itemDTO.Picks {
			pick, pickErr := order.NewOptionPick(pickDTO.Option, pickDTO.Choice)
			if pickErr != nil {
				return nil, pickErr
			}
			picks = append(picks, pick)
		}
		sel, selErr := order.NewItemSelection(dishID, picks)
		if selErr != nil {
			return nil, selErr
		}
		items = append(items, sel)
	}

	return order.RestoreOrder(id, customerID, restaurantID, ownerID, driverID,
		items, dto.Total, status)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalDomainID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
