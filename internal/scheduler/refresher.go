package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
)

const refreshBatchSize = 50

// Refresher keeps the cached structured schedule of every active class in
// sync with its schedule string. Classes normally get schedule_data set on
// write; the refresher backfills rows created by imports or migrations.
type Refresher struct {
	classRepo *repository.ClassRepository
	interval  time.Duration
	logger    *zap.Logger
}

func NewRefresher(classRepo *repository.ClassRepository, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{classRepo: classRepo, interval: interval, logger: logger}
}

// RefreshOnce reparses one batch of classes with missing schedule_data.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	classes, err := r.classRepo.ListStaleScheduleData(ctx, refreshBatchSize)
	if err != nil {
		return err
	}
	if len(classes) == 0 {
		return nil
	}

	r.logger.Info("refreshing cached schedules", zap.Int("count", len(classes)))
	for _, class := range classes {
		rec := schedule.Parse(schedule.Normalize(class.Schedule))
		data := &models.ScheduleData{Recurrence: rec}
		if err := r.classRepo.SetScheduleData(ctx, class.ID, data); err != nil {
			r.logger.Error("failed to persist refreshed schedule",
				zap.String("class_id", class.ID.String()), zap.Error(err))
		}
	}
	return nil
}

// Run refreshes on the configured interval until the context ends.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("starting schedule refresher", zap.Duration("interval", r.interval))
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("schedule refresher shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := r.RefreshOnce(ctx); err != nil {
				r.logger.Error("schedule refresh failed", zap.Error(err))
			}
		}
	}
}
