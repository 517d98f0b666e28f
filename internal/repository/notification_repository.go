package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
)

type NotificationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewNotificationRepository(db *sqlx.DB, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{db: db, logger: logger}
}

const notificationColumns = `id, recipient, subject, body_html, status, attempt_count, last_error, sent_at, created_at`

// Enqueue adds an email to the outbox; the dispatcher delivers it.
func (r *NotificationRepository) Enqueue(ctx context.Context, n *models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	n.Status = models.NotificationStatusPending

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, recipient, subject, body_html, status, attempt_count, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6)`,
		n.ID, n.Recipient, n.Subject, n.BodyHTML, n.Status, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error enqueueing notification: %w", err)
	}
	return nil
}

// ClaimPending atomically claims up to limit pending notifications,
// bumping their attempt count so a crashed dispatcher cannot re-send
// forever. SKIP LOCKED keeps concurrent dispatchers from claiming the
// same rows.
func (r *NotificationRepository) ClaimPending(ctx context.Context, limit, maxAttempts int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.SelectContext(ctx, &notifications, `
		UPDATE notifications
		SET attempt_count = attempt_count + 1
		WHERE id IN (
			SELECT id FROM notifications
			WHERE status = 'pending' AND attempt_count < $2
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+notificationColumns, limit, maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("error claiming notifications: %w", err)
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET status = 'sent', sent_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification sent: %w", err)
	}
	return nil
}

// MarkFailed records a delivery failure; the row stays pending until the
// attempt budget runs out.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, sendErr error, maxAttempts int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET last_error = $1,
			status = CASE WHEN attempt_count >= $2 THEN 'failed' ELSE 'pending' END
		WHERE id = $3`,
		sendErr.Error(), maxAttempts, id)
	if err != nil {
		return fmt.Errorf("error marking notification failed: %w", err)
	}
	return nil
}
