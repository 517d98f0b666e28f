package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/services"
)

const (
	dispatchBatchSize = 25
	maxSendAttempts   = 3
)

// NotificationOutbox is the slice of the notification repository the
// dispatcher needs; an interface so tests can run without Postgres.
type NotificationOutbox interface {
	ClaimPending(ctx context.Context, limit, maxAttempts int) ([]models.Notification, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, sendErr error, maxAttempts int) error
}

// Dispatcher drains the email outbox: claims pending notifications and
// delivers them through the mailer. Failed sends stay pending until the
// attempt budget runs out.
type Dispatcher struct {
	outbox   NotificationOutbox
	mailer   services.Mailer
	interval time.Duration
	logger   *zap.Logger
}

func NewDispatcher(outbox NotificationOutbox, mailer services.Mailer, interval time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{outbox: outbox, mailer: mailer, interval: interval, logger: logger}
}

// DispatchOnce claims and sends one batch.
func (d *Dispatcher) DispatchOnce(ctx context.Context) error {
	notifications, err := d.outbox.ClaimPending(ctx, dispatchBatchSize, maxSendAttempts)
	if err != nil {
		return err
	}

	for _, n := range notifications {
		mail := services.Mail{To: n.Recipient, Subject: n.Subject, HTML: n.BodyHTML}
		if err := d.mailer.Send(ctx, mail); err != nil {
			d.logger.Warn("notification delivery failed",
				zap.String("notification_id", n.ID.String()),
				zap.Int("attempt", n.AttemptCount),
				zap.Error(err))
			if err := d.outbox.MarkFailed(ctx, n.ID, err, maxSendAttempts); err != nil {
				d.logger.Error("failed to record delivery failure",
					zap.String("notification_id", n.ID.String()), zap.Error(err))
			}
			continue
		}
		if err := d.outbox.MarkSent(ctx, n.ID); err != nil {
			d.logger.Error("failed to mark notification sent",
				zap.String("notification_id", n.ID.String()), zap.Error(err))
		}
	}
	return nil
}

// Run polls the outbox on the configured interval.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("starting notification dispatcher", zap.Duration("interval", d.interval))
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification dispatcher shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := d.DispatchOnce(ctx); err != nil {
				d.logger.Error("outbox dispatch failed", zap.Error(err))
			}
		}
	}
}
