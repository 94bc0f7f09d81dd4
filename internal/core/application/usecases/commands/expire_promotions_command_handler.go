package commands

import (
	"context"
)

// ExpirePromotionsCommandHandler clears expired restaurant promotions.
// Runs on a schedule; restaurants keep their promoted placement until the
// sweep after their window closes, never longer than one scheduler tick.
type ExpirePromotionsCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewExpirePromotionsCommandHandler creates a handler for the promotion sweep.
func NewExpirePromotionsCommandHandler(uowFactory CatalogUoWFactory) ExpirePromotionsCommandHandler {
	return ExpirePromotionsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the promotion sweep.
// Loads all restaurants whose promotion ended before the command's moment,
// clears their promoted placement, and persists them in one transaction.
func (h ExpirePromotionsCommandHandler) Handle(ctx context.Context, command ExpirePromotionsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalogRepo := uow.CatalogRepository()

	expired, err := catalogRepo.GetPromotedExpiredBefore(ctx, command.Moment())
	if err != nil {
		return err
	}

	for _, restaurant := range expired {
		restaurant.ExpirePromotion()
		if err = catalogRepo.UpdateRestaurant(ctx, restaurant); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
