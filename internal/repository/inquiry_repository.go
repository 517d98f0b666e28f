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

type InquiryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewInquiryRepository(db *sqlx.DB, logger *zap.Logger) *InquiryRepository {
	return &InquiryRepository{db: db, logger: logger}
}

const inquiryColumns = `id, name, email, subject, message, replied, replied_at, created_at`

func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	if inquiry.ID == uuid.Nil {
		inquiry.ID = uuid.New()
	}
	inquiry.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inquiries (id, name, email, subject, message, replied, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)`,
		inquiry.ID, inquiry.Name, inquiry.Email, inquiry.Subject, inquiry.Message, inquiry.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating inquiry: %w", err)
	}
	return nil
}

func (r *InquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.GetContext(ctx, &inquiry, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting inquiry: %w", err)
	}
	return &inquiry, nil
}

func (r *InquiryRepository) List(ctx context.Context, unansweredOnly bool) ([]models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries`
	if unansweredOnly {
		query += ` WHERE replied = false`
	}
	query += ` ORDER BY created_at DESC`

	var inquiries []models.Inquiry
	if err := r.db.SelectContext(ctx, &inquiries, query); err != nil {
		return nil, fmt.Errorf("error listing inquiries: %w", err)
	}
	return inquiries, nil
}

func (r *InquiryRepository) MarkReplied(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE inquiries SET replied = true, replied_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking inquiry replied: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return models.ErrInquiryNotFound
	}
	return nil
}

// ArchiveRepliedBefore removes replied inquiries older than the cutoff.
func (r *InquiryRepository) ArchiveRepliedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM inquiries WHERE replied = true AND replied_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error archiving inquiries: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
