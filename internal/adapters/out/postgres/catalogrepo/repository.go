package catalogrepo

import (
	"context"
	"errors"
	"time"

	"eats/internal/core/domain/model/catalog"
	"eats/internal/core/domain/model/kernel"
	"eats/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB, tracker aggregateTracker) *GormCatalogRepository {
	return &GormCatalogRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddRestaurant saves a new restaurant to the database.
func (r *GormCatalogRepository) AddRestaurant(ctx context.Context, restaurant *catalog.Restaurant) error {
	if err := restaurant.Validate(); err != nil {
		return err
	}

	dto := restaurantFromDomain(restaurant)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(restaurant.ID(), restaurant)
	return nil
}

// UpdateRestaurant saves an existing restaurant to the database.
func (r *GormCatalogRepository) UpdateRestaurant(ctx context.Context, restaurant *catalog.Restaurant) error {
	if err := restaurant.Validate(); err != nil {
		return err
	}

	dto := restaurantFromDomain(restaurant)
	result := r.db.WithContext(ctx).Model(&RestaurantDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":           dto.Name,
			"owner_id":       dto.OwnerID,
			"is_promoted":    dto.IsPromoted,
			"promoted_until": dto.PromotedUntil,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(restaurant.ID(), restaurant)
	return nil
}

// GetRestaurant retrieves a restaurant by ID.
func (r *GormCatalogRepository) GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, err
	}

	return restaurantToDomain(dto)
}

// AddDish saves a new dish to the database.
func (r *GormCatalogRepository) AddDish(ctx context.Context, dish *catalog.Dish) error {
	if err := dish.Validate(); err != nil {
		return err
	}

	dto := dishFromDomain(dish)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(dish.ID(), dish)
	return nil
}

// GetDishes retrieves all dishes on a restaurant's menu, sorted by name.
func (r *GormCatalogRepository) GetDishes(ctx context.Context, restaurantID kernel.UUID) ([]*catalog.Dish, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DishDTO
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&dtos, "restaurant_id = ?", restaurantID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	dishes := make([]*catalog.Dish, 0, len(dtos))
	for _, dto := range dtos {
		dish, dishErr := dishToDomain(dto)
		if dishErr != nil {
			return nil, dishErr
		}
		dishes = append(dishes, dish)
	}

	return dishes, nil
}

// GetPromotedExpiredBefore retrieves restaurants whose promotion window closed
// before the given moment.
func (r *GormCatalogRepository) GetPromotedExpiredBefore(
	ctx context.Context,
	moment time.Time,
) ([]*catalog.Restaurant, error) {
	var dtos []RestaurantDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "is_promoted = ? AND promoted_until < ?", true, moment).Error
	if err != nil {
		return nil, err
	}

	restaurants := make([]*catalog.Restaurant, 0, len(dtos))
	for _, dto := range dtos {
		restaurant, restErr := restaurantToDomain(dto)
		if restErr != nil {
			return nil, restErr
		}
		restaurants = append(restaurants, restaurant)
	}

	return restaurants, nil
}
