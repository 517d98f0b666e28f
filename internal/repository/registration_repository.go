package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
)

// RegistrationsChannel is the redis pub/sub channel carrying newly created
// registrations for the admin stream.
const RegistrationsChannel = "registrations.created"

type RegistrationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
	redis  *redis.Client
}

func NewRegistrationRepository(db *sqlx.DB, logger *zap.Logger, rdb *redis.Client) *RegistrationRepository {
	return &RegistrationRepository{db: db, logger: logger, redis: rdb}
}

const registrationColumns = `id, class_id, name, email, phone, message, target_date, target_time, metadata, status, created_at, updated_at`

// CreateForDate inserts a registration for a specific class date, deciding
// confirmed/waitlist inside a transaction that locks the class row. The
// lock serializes the count-then-insert sequence so two concurrent
// bookings cannot both take the last seat. The caller has already
// validated the occurrence; priced classes downgrade a confirmed seat to
// pending_payment.
func (r *RegistrationRepository) CreateForDate(ctx context.Context, reg *models.Registration, priced bool) (schedule.BookingDecision, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var capacity int
	if err := tx.GetContext(ctx, &capacity, `SELECT capacity FROM classes WHERE id = $1 FOR UPDATE`, reg.ClassID); err != nil {
		if err == sql.ErrNoRows {
			return "", models.ErrClassNotFound
		}
		return "", fmt.Errorf("error locking class row: %w", err)
	}

	var count int
	err = tx.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM registrations
		WHERE class_id = $1 AND target_date = $2 AND status = ANY($3)`,
		reg.ClassID, reg.TargetDate, pq.Array(models.CapacityCountedStatuses))
	if err != nil {
		return "", fmt.Errorf("error counting registrations: %w", err)
	}

	decision := schedule.DecideStatus(true, count, capacity)
	reg.Status = models.RegistrationStatus(decision)
	if decision == schedule.DecisionConfirmed && priced {
		reg.Status = models.RegistrationStatusPendingPayment
	}

	if err := insertRegistration(ctx, tx, reg); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("error committing registration: %w", err)
	}

	r.publishCreated(ctx, reg)
	return decision, nil
}

// Create inserts a registration that carries no target date; no capacity
// check applies.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	if err := insertRegistration(ctx, r.db, reg); err != nil {
		return err
	}
	r.publishCreated(ctx, reg)
	return nil
}

func insertRegistration(ctx context.Context, q sqlx.ExtContext, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (id, class_id, name, email, phone, message, target_date, target_time, metadata, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	reg.CreatedAt = now
	if reg.UpdatedAt == nil {
		reg.UpdatedAt = &now
	}
	if reg.Status == "" {
		reg.Status = models.RegistrationStatusConfirmed
	}

	_, err := q.ExecContext(ctx, query,
		reg.ID, reg.ClassID, reg.Name, reg.Email, reg.Phone, reg.Message,
		reg.TargetDate, reg.TargetTime, reg.Metadata, reg.Status, reg.CreatedAt, reg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) publishCreated(ctx context.Context, reg *models.Registration) {
	if r.redis == nil {
		return
	}
	payload, err := json.Marshal(reg)
	if err != nil {
		return
	}
	if err := r.redis.Publish(ctx, RegistrationsChannel, payload).Err(); err != nil {
		r.logger.Warn("failed to publish registration event",
			zap.String("registration_id", reg.ID.String()), zap.Error(err))
	}
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.GetContext(ctx, &reg,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting registration: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE 1=1`
	args := []interface{}{}
	n := 1

	if filter.ClassID != nil {
		query += fmt.Sprintf(" AND class_id = $%d", n)
		args = append(args, *filter.ClassID)
		n++
	}
	if filter.TargetDate != nil {
		query += fmt.Sprintf(" AND target_date = $%d", n)
		args = append(args, *filter.TargetDate)
		n++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, *filter.Status)
		n++
	}
	query += " ORDER BY created_at"

	var regs []models.Registration
	if err := r.db.SelectContext(ctx, &regs, query, args...); err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	return regs, nil
}

// CountForDate tallies seat-occupying registrations for a class and date.
func (r *RegistrationRepository) CountForDate(ctx context.Context, classID uuid.UUID, targetDate time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM registrations
		WHERE class_id = $1 AND target_date = $2 AND status = ANY($3)`,
		classID, targetDate, pq.Array(models.CapacityCountedStatuses))
	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return count, nil
}

func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RegistrationStatus) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.GetContext(ctx, &reg, `
		UPDATE registrations SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+registrationColumns, status, id)
	if err == sql.ErrNoRows {
		return nil, models.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating registration status: %w", err)
	}
	return &reg, nil
}

// ListConfirmedForClassDate returns the confirmed registrations for one
// class occurrence; the reminder job mails these.
func (r *RegistrationRepository) ListConfirmedForClassDate(ctx context.Context, classID uuid.UUID, targetDate time.Time) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.SelectContext(ctx, &regs, `
		SELECT `+registrationColumns+` FROM registrations
		WHERE class_id = $1 AND target_date = $2 AND status = 'confirmed'
		ORDER BY created_at`, classID, targetDate)
	if err != nil {
		return nil, fmt.Errorf("error listing confirmed registrations: %w", err)
	}
	return regs, nil
}

// ArchiveCancelledBefore removes cancelled registrations older than the
// cutoff, returning how many rows went away.
func (r *RegistrationRepository) ArchiveCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM registrations WHERE status = 'cancelled' AND updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error archiving registrations: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
