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

type TeacherRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTeacherRepository(db *sqlx.DB, logger *zap.Logger) *TeacherRepository {
	return &TeacherRepository{db: db, logger: logger}
}

const teacherColumns = `id, name, bio, bio_html, qualifications, photo_url, created_at, updated_at`

func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	now := time.Now()
	if teacher.ID == uuid.Nil {
		teacher.ID = uuid.New()
	}
	teacher.CreatedAt = now
	if teacher.UpdatedAt == nil {
		teacher.UpdatedAt = &now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO teachers (id, name, bio, bio_html, qualifications, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		teacher.ID, teacher.Name, teacher.Bio, teacher.BioHTML, teacher.Qualifications,
		teacher.PhotoURL, teacher.CreatedAt, teacher.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating teacher: %w", err)
	}
	return nil
}

func (r *TeacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.GetContext(ctx, &teacher, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting teacher: %w", err)
	}
	return &teacher, nil
}

func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	err := r.db.SelectContext(ctx, &teachers, `SELECT `+teacherColumns+` FROM teachers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	return teachers, nil
}

func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedAt = timePtr(time.Now())
	res, err := r.db.ExecContext(ctx, `
		UPDATE teachers
		SET name = $1, bio = $2, bio_html = $3, qualifications = $4, photo_url = $5, updated_at = $6
		WHERE id = $7`,
		teacher.Name, teacher.Bio, teacher.BioHTML, teacher.Qualifications,
		teacher.PhotoURL, teacher.UpdatedAt, teacher.ID)
	if err != nil {
		return fmt.Errorf("error updating teacher: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return models.ErrTeacherNotFound
	}
	return nil
}

func (r *TeacherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return models.ErrTeacherNotFound
	}
	return nil
}
