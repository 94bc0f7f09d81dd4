package jobs

import (
	"context"
	"log/slog"
	"time"

	"eats/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PromotionExpiryJob manages the scheduled sweep of expired restaurant
// promotions. Runs every minute to clear promotions whose paid window has
// passed.
type PromotionExpiryJob struct {
	handler commands.ExpirePromotionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPromotionExpiryJob creates a new job for expiring promotions.
// Uses ExpirePromotionsCommandHandler to sweep expired promotions every minute.
func NewPromotionExpiryJob(handler commands.ExpirePromotionsCommandHandler, logger *slog.Logger) *PromotionExpiryJob {
	return &PromotionExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "promotion_expiry_job"),
	}
}

// Start begins the promotion expiry job to run every minute.
func (j *PromotionExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpirePromotionsCommand(time.Now())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Promotion expiry command is invalid", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Promotion expiry job failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Promotion expiry job started (running every minute)")
	return nil
}

// Stop stops the promotion expiry job.
func (j *PromotionExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Promotion expiry job stopped")
}
