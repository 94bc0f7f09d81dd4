// Package ports defines repository interfaces for the ordering domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"eats/internal/core/domain/model/catalog"
	"eats/internal/core/domain/model/kernel"
)

// CatalogRepository defines the persistence contract for restaurants and
// their dishes.
type CatalogRepository interface {
	// AddRestaurant persists a new restaurant aggregate to storage.
	AddRestaurant(ctx context.Context, restaurant *catalog.Restaurant) error

	// UpdateRestaurant persists changes to an existing restaurant.
	UpdateRestaurant(ctx context.Context, restaurant *catalog.Restaurant) error

	// GetRestaurant retrieves a restaurant by its unique identifier.
	GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error)

	// AddDish persists a new dish with its option groups and choices.
	AddDish(ctx context.Context, dish *catalog.Dish) error

	// GetDishes retrieves all dishes on a restaurant's menu, including their
	// option groups. Order creation prices selections against this set.
	GetDishes(ctx context.Context, restaurantID kernel.UUID) ([]*catalog.Dish, error)

	// GetPromotedExpiredBefore retrieves restaurants whose promotion window
	// closed before the given moment. The promotion expiry job sweeps these.
	GetPromotedExpiredBefore(ctx context.Context, moment time.Time) ([]*catalog.Restaurant, error)
}
