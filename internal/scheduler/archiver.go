package scheduler

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/config"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
)

const (
	archiveLockKey      = 40917 // advisory lock key shared by all instances
	lastArchivalTimeKey = "archiver:last_archival_time"
)

func acquireArchiveLock(db *sqlx.DB) (bool, error) {
	var gotLock bool
	err := db.Get(&gotLock, "SELECT pg_try_advisory_lock($1)", archiveLockKey)
	return gotLock, err
}

func releaseArchiveLock(db *sqlx.DB) error {
	_, err := db.Exec("SELECT pg_advisory_unlock($1)", archiveLockKey)
	return err
}

// shouldArchive consults the shared redis marker so multiple instances
// restarting in sequence do not each run a sweep.
func shouldArchive(ctx context.Context, rdb *redis.Client, checkPeriod time.Duration) (bool, error) {
	val, err := rdb.Get(ctx, lastArchivalTimeKey).Result()
	if err == redis.Nil {
		nextTime := time.Now().Add(checkPeriod)
		if err := rdb.Set(ctx, lastArchivalTimeKey, nextTime.Format(time.RFC3339), 0).Err(); err != nil {
			return false, err
		}
		return true, nil
	} else if err != nil {
		return false, err
	}
	lastTime, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return false, err
	}
	return !time.Now().Before(lastTime), nil
}

func updateLastArchivalTime(ctx context.Context, rdb *redis.Client, checkPeriod time.Duration) error {
	nextTime := time.Now().Add(checkPeriod)
	return rdb.Set(ctx, lastArchivalTimeKey, nextTime.Format(time.RFC3339), 0).Err()
}

// Archiver sweeps out old cancelled registrations and replied inquiries
// per the retention config. A Postgres advisory lock plus a redis last-run
// marker keep a multi-instance deployment down to one sweep per period.
type Archiver struct {
	db               *sqlx.DB
	rdb              *redis.Client
	registrationRepo *repository.RegistrationRepository
	inquiryRepo      *repository.InquiryRepository
	checkPeriod      time.Duration
	durations        config.RetentionDurations
	logger           *zap.Logger
}

func NewArchiver(
	db *sqlx.DB,
	rdb *redis.Client,
	registrationRepo *repository.RegistrationRepository,
	inquiryRepo *repository.InquiryRepository,
	checkPeriod time.Duration,
	durations config.RetentionDurations,
	logger *zap.Logger,
) *Archiver {
	return &Archiver{
		db:               db,
		rdb:              rdb,
		registrationRepo: registrationRepo,
		inquiryRepo:      inquiryRepo,
		checkPeriod:      checkPeriod,
		durations:        durations,
		logger:           logger,
	}
}

// ArchiveOnce runs one retention sweep.
func (a *Archiver) ArchiveOnce(ctx context.Context) error {
	now := time.Now()

	regs, err := a.registrationRepo.ArchiveCancelledBefore(ctx, now.Add(-a.durations.Registrations))
	if err != nil {
		return err
	}
	inqs, err := a.inquiryRepo.ArchiveRepliedBefore(ctx, now.Add(-a.durations.Inquiries))
	if err != nil {
		return err
	}

	a.logger.Info("retention sweep completed",
		zap.Int64("registrations_removed", regs),
		zap.Int64("inquiries_removed", inqs))
	return nil
}

// Run ticks on the check period, coordinating with other instances via
// the advisory lock and redis marker.
func (a *Archiver) Run(ctx context.Context) error {
	a.logger.Info("starting archiver", zap.Duration("check_period", a.checkPeriod))
	ticker := time.NewTicker(a.checkPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("archiver shutting down")
			return ctx.Err()
		case <-ticker.C:
			gotLock, err := acquireArchiveLock(a.db)
			if err != nil {
				a.logger.Error("error acquiring archive lock", zap.Error(err))
				continue
			}
			if !gotLock {
				a.logger.Debug("another instance is archiving, skipping this cycle")
				continue
			}

			shouldRun, err := shouldArchive(ctx, a.rdb, a.checkPeriod)
			if err != nil {
				a.logger.Error("error checking last archival time", zap.Error(err))
				releaseArchiveLock(a.db)
				continue
			}
			if !shouldRun {
				releaseArchiveLock(a.db)
				continue
			}

			if err := a.ArchiveOnce(ctx); err != nil {
				a.logger.Error("retention sweep failed", zap.Error(err))
			} else if err := updateLastArchivalTime(ctx, a.rdb, a.checkPeriod); err != nil {
				a.logger.Error("error updating last archival time", zap.Error(err))
			}
			releaseArchiveLock(a.db)
		}
	}
}
