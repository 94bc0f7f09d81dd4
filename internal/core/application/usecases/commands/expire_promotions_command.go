package commands

import (
	"errors"
	"time"

	"eats/internal/pkg/guard"
)

var (
	ErrExpirePromotionsCommandIsNotConstructed = errors.New(
		"ExpirePromotionsCommand must be created via NewExpirePromotionsCommand constructor",
	)
	ErrMomentIsRequired = errors.New("moment is required")
)

// ExpirePromotionsCommand represents a sweep over restaurant promotions:
// every restaurant whose paid promotion window closed before the given moment
// loses its promoted placement.
type ExpirePromotionsCommand struct { //nolint:recvcheck //using for validation
	moment time.Time

	guard guard.ConstructorGuard
}

// NewExpirePromotionsCommand creates a promotion sweep command for the given
// moment, normally time.Now() supplied by the scheduler.
func NewExpirePromotionsCommand(moment time.Time) (ExpirePromotionsCommand, error) {
	sweepCommand := ExpirePromotionsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := sweepCommand.setMoment(moment); err != nil {
		return ExpirePromotionsCommand{}, err
	}

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpirePromotionsCommandIsNotConstructed if validation fails.
func (c ExpirePromotionsCommand) Validate() error {
	return c.guard.Validate(ErrExpirePromotionsCommandIsNotConstructed)
}

// Moment returns the cutoff: promotions that ended before it are cleared.
func (c ExpirePromotionsCommand) Moment() time.Time {
	return c.moment
}

func (c *ExpirePromotionsCommand) setMoment(moment time.Time) error {
	if moment.IsZero() {
		return ErrMomentIsRequired
	}

	c.moment = moment
	return nil
}
