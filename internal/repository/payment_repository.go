package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
)

type PaymentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPaymentRepository(db *sqlx.DB, logger *zap.Logger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

const paymentColumns = `id, registration_id, amount_cents, currency, method, reference, status, confirmed_by, confirmed_at, created_at`

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	payment.CreatedAt = time.Now()
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (id, registration_id, amount_cents, currency, method, reference, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		payment.ID, payment.RegistrationID, payment.AmountCents, payment.Currency,
		payment.Method, payment.Reference, payment.Status, payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.GetContext(ctx, &payment, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting payment: %w", err)
	}
	return &payment, nil
}

func (r *PaymentRepository) ListPending(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.SelectContext(ctx, &payments,
		`SELECT `+paymentColumns+` FROM payments WHERE status = 'pending' ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("error listing pending payments: %w", err)
	}
	return payments, nil
}

// Confirm marks the payment confirmed and flips its registration from
// pending_payment to confirmed in the same transaction.
func (r *PaymentRepository) Confirm(ctx context.Context, id uuid.UUID, confirmedBy, reference string) (*models.Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	var payment models.Payment
	err = tx.GetContext(ctx, &payment, `
		UPDATE payments
		SET status = 'confirmed', confirmed_by = $1, confirmed_at = $2,
			reference = COALESCE(NULLIF($3, ''), reference)
		WHERE id = $4 AND status = 'pending'
		RETURNING `+paymentColumns, confirmedBy, now, reference, id)
	if err == sql.ErrNoRows {
		return nil, models.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error confirming payment: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE registrations SET status = 'confirmed', updated_at = now()
		WHERE id = $1 AND status = 'pending_payment'`, payment.RegistrationID)
	if err != nil {
		return nil, fmt.Errorf("error confirming registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing payment confirmation: %w", err)
	}
	return &payment, nil
}

// Reject marks the payment rejected and cancels its registration.
func (r *PaymentRepository) Reject(ctx context.Context, id uuid.UUID, rejectedBy string) (*models.Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	var payment models.Payment
	err = tx.GetContext(ctx, &payment, `
		UPDATE payments
		SET status = 'rejected', confirmed_by = $1, confirmed_at = $2
		WHERE id = $3 AND status = 'pending'
		RETURNING `+paymentColumns, rejectedBy, now, id)
	if err == sql.ErrNoRows {
		return nil, models.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error rejecting payment: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE registrations SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status = 'pending_payment'`, payment.RegistrationID)
	if err != nil {
		return nil, fmt.Errorf("error cancelling registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing payment rejection: %w", err)
	}
	return &payment, nil
}
