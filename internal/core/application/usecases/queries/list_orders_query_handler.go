package queries

import (
	"context"
	"fmt"

	"eats/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves the orders an actor is involved in.
// Visibility is built into the WHERE clause per role, so the database only
// ever returns rows the actor may see.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	query, _ := NewListOrdersQuery(driver, nil)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("driver has %d orders\n", len(orders))
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for role-scoped order listings.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing.
// Results are sorted by order ID for consistent output; each order carries
// its items.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scope, err := roleScope(query.Actor().Role())
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(`
		SELECT
			id,
			customer_id,
			restaurant_id,
			restaurant_owner_id,
			driver_id,
			total,
			status
		FROM orders
		WHERE %s = ?
	`, scope)
	args := []any{query.Actor().ID().Bytes()}

	if query.Status() != nil {
		sql += " AND status = ?"
		args = append(args, query.Status().String())
	}
	sql += " ORDER BY id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items, err = loadOrderItems(ctx, h.db, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// roleScope maps a role to the column that ties an order to that actor.
// The scope column is a fixed string per role, never caller input.
func roleScope(role kernel.Role) (string, error) {
	switch role {
	case kernel.RoleClient:
		return "customer_id", nil
	case kernel.RoleDelivery:
		return "driver_id", nil
	case kernel.RoleOwner:
		return "restaurant_owner_id", nil
	default:
		return "", fmt.Errorf("no order scope for role %s", role)
	}
}
