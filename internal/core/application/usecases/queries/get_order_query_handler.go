package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"eats/internal/core/domain/model/kernel"
	"eats/internal/core/domain/model/order"
	"eats/internal/core/domain/services"
	"eats/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order with its items.
// Reads with raw SQL and gates the result through the access policy so a
// query and a subscription can never disagree about who sees an order.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(actor, orderID)
//
//	resp, err := handler.Handle(ctx, query)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // no such order
//	case errors.Is(err, services.ErrOrderNotVisible):
//	    // not this actor's order
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query for one order.
// Returns errs.ErrObjectNotFound when the order does not exist and
// services.ErrOrderNotVisible when the actor may not see it.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			restaurant_id,
			restaurant_owner_id,
			driver_id,
			total,
			status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	resp, err := scanOrderRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return OrderResponse{}, err
	}

	resp.Items, err = loadOrderItems(ctx, h.db, resp.ID)
	if err != nil {
		return OrderResponse{}, err
	}

	visible, err := responseVisibleTo(query.Actor(), resp)
	if err != nil {
		return OrderResponse{}, err
	}
	if !visible {
		return OrderResponse{}, services.ErrOrderNotVisible
	}

	return resp, nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderRow(row rowScanner) (OrderResponse, error) {
	var resp OrderResponse
	var id uuid.UUID
	var customerID, restaurantID, ownerID, driverID uuid.NullUUID
	var status string

	if err := row.Scan(
		&id,
		&customerID,
		&restaurantID,
		&ownerID,
		&driverID,
		&resp.Total,
		&status,
	); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.ID = orderID
	resp.Status = status

	if resp.CustomerID, err = nullableUUID(customerID); err != nil {
		return OrderResponse{}, err
	}
	if resp.RestaurantID, err = nullableUUID(restaurantID); err != nil {
		return OrderResponse{}, err
	}
	if resp.RestaurantOwnerID, err = nullableUUID(ownerID); err != nil {
		return OrderResponse{}, err
	}
	if resp.DriverID, err = nullableUUID(driverID); err != nil {
		return OrderResponse{}, err
	}

	return resp, nil
}

func loadOrderItems(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			dish_id,
			picks
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var dishID uuid.UUID
		var picksJSON []byte

		if err = rows.Scan(&dishID, &picksJSON); err != nil {
			return nil, err
		}

		item := OrderItemResponse{}
		item.DishID, err = kernel.UUIDFromBytes(dishID[:])
		if err != nil {
			return nil, err
		}

		if len(picksJSON) > 0 {
			var picks []struct {
				Option string `json:"option"`
				Choice string `json:"choice,omitempty"`
			}
			if err = json.Unmarshal(picksJSON, &picks); err != nil {
				return nil, err
			}
			for _, p := range picks {
				item.Picks = append(item.Picks, OptionPickResponse{Option: p.Option, Choice: p.Choice})
			}
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// responseVisibleTo rebuilds the aggregate from the read model and asks the
// access policy, so reads use exactly the rules subscriptions use.
func responseVisibleTo(actor kernel.Actor, resp OrderResponse) (bool, error) {
	status, err := order.StatusFromString(resp.Status)
	if err != nil {
		return false, err
	}

	selections := make([]order.ItemSelection, 0, len(resp.Items))
	for _, item := range resp.Items {
		picks := make([]order.OptionPick, 0, len(item.Picks))
		for _, p := range item.Picks {
			pick, pickErr := order.NewOptionPick(p.Option, p.Choice)
			if pickErr != nil {
				return false, pickErr
			}
			picks = append(picks, pick)
		}
		sel, selErr := order.NewItemSelection(item.DishID, picks)
		if selErr != nil {
			return false, selErr
		}
		selections = append(selections, sel)
	}

	aggregate, err := order.RestoreOrder(resp.ID, resp.CustomerID, resp.RestaurantID,
		resp.RestaurantOwnerID, resp.DriverID, selections, resp.Total, status)
	if err != nil {
		return false, err
	}

	return services.NewAccessPolicy().CanSee(actor, aggregate), nil
}

func nullableUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
