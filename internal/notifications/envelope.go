package notifications

import (
	"encoding/json"
	"fmt"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"
)

// envelope is the wire form of an Event on the redis channels. It flattens the
// order aggregate into plain JSON so any instance can rebuild the event
// without sharing memory with the publisher.
type envelope struct {
	Kind  string        `json:"kind"`
	Order orderEnvelope `json:"order"`
}

type orderEnvelope struct {
	ID                string         `json:"id"`
	CustomerID        *string        `json:"customerId,omitempty"`
	RestaurantID      *string        `json:"restaurantId,omitempty"`
	RestaurantOwnerID *string        `json:"restaurantOwnerId,omitempty"`
	DriverID          *string        `json:"driverId,omitempty"`
	Items             []itemEnvelope `json:"items"`
	Total             int64          `json:"total"`
	Status            string         `json:"status"`
}

type itemEnvelope struct {
	DishID string         `json:"dishId"`
	Picks  []pickEnvelope `json:"picks,omitempty"`
}

type pickEnvelope struct {
	Option string `json:"option"`
	Choice string `json:"choice,omitempty"`
}

func encodeEvent(event Event) ([]byte, error) {
	o := event.Order()
	if o == nil {
		return nil, fmt.Errorf("event %s carries no order", event.Kind())
	}

	env := envelope{
		Kind: string(event.Kind()),
		Order: orderEnvelope{
			ID:                o.ID().String(),
			CustomerID:        uuidToString(o.CustomerID()),
			RestaurantID:      uuidToString(o.RestaurantID()),
			RestaurantOwnerID: uuidToString(o.RestaurantOwnerID()),
			DriverID:          uuidToString(o.DriverID()),
			Total:             o.Total(),
			Status:            o.Status().String(),
		},
	}
	for _, item := range o.Items() {
		itemEnv := itemEnvelope{DishID: item.DishID().String()}
		for _, p := range item.Picks() {
			itemEnv.Picks = append(itemEnv.Picks, pickEnvelope{
				Option: p.Option(),
				Choice: p.Choice(),
			})
		}
		env.Order.Items = append(env.Order.Items, itemEnv)
	}

	return json.Marshal(env)
}

func decodeEvent(payload []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode event envelope: %w", err)
	}

	o, err := restoreOrderFromEnvelope(env.Order)
	if err != nil {
		return nil, err
	}

	switch EventKind(env.Kind) {
	case KindOrderCreated:
		return NewOrderCreated(o), nil
	case KindOrderCooked:
		return NewOrderCooked(o), nil
	case KindOrderChanged:
		return NewOrderChanged(o), nil
	default:
		return nil, fmt.Errorf("unknown event kind: %s", env.Kind)
	}
}

func restoreOrderFromEnvelope(env orderEnvelope) (*order.Order, error) {
	id, err := kernel.UUIDFromString(env.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := uuidFromStringPtr(env.CustomerID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := uuidFromStringPtr(env.RestaurantID)
	if err != nil {
		return nil, err
	}
	ownerID, err := uuidFromStringPtr(env.RestaurantOwnerID)
	if err != nil {
		return nil, err
	}
	driverID, err := uuidFromStringPtr(env.DriverID)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(env.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemSelection, 0, len(env.Items))
	for _, itemEnv := range env.Items {
		dishID, err := kernel.UUIDFromString(itemEnv.DishID)
		if err != nil {
			return nil, err
		}
		picks := make([]order.OptionPick, 0, len(itemEnv.Picks))
		for _, pickEnv := range itemEnv.Picks {
			p, err := order.NewOptionPick(pickEnv.Option, pickEnv.Choice)
			if err != nil {
				return nil, err
			}
			picks = append(picks, p)
		}
		sel, err := order.NewItemSelection(dishID, picks)
		if err != nil {
			return nil, err
		}
		items = append(items, sel)
	}

	return order.RestoreOrder(id, customerID, restaurantID, ownerID, driverID,
		items, env.Total, status)
}

func uuidToString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func uuidFromStringPtr(s *string) (*kernel.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
