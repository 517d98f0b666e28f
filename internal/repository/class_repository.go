package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
)

const scheduleCacheTTL = 15 * time.Minute

type ClassRepository struct {
	db          *sqlx.DB
	logger      *zap.Logger
	redis       *redis.Client
	redisPrefix string
}

func NewClassRepository(db *sqlx.DB, logger *zap.Logger, rdb *redis.Client, prefix string) *ClassRepository {
	return &ClassRepository{db: db, logger: logger, redis: rdb, redisPrefix: prefix}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func (r *ClassRepository) scheduleCacheKey(id uuid.UUID) string {
	return r.redisPrefix + "schedule:" + id.String()
}

func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (id, name, description, description_html, teacher_id, style, schedule, schedule_data,
			duration_minutes, difficulty, capacity, location, price_cents, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`

	now := time.Now()
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	class.CreatedAt = now
	if class.UpdatedAt == nil {
		class.UpdatedAt = timePtr(now)
	}
	if class.Status == "" {
		class.Status = models.ClassStatusActive
	}

	err := r.db.QueryRowContext(ctx, query,
		class.ID, class.Name, class.Description, class.DescriptionHTML, class.TeacherID, class.Style,
		class.Schedule, class.ScheduleData, class.DurationMinutes, class.Difficulty, class.Capacity,
		class.Location, class.PriceCents, class.Currency, class.Status, class.CreatedAt, class.UpdatedAt,
	).Scan(&class.ID)
	if err != nil {
		return fmt.Errorf("error creating class: %w", err)
	}

	r.invalidateScheduleCache(ctx, class.ID)
	return nil
}

func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	query := `
		SELECT id, name, description, description_html, teacher_id, style, schedule, schedule_data,
			duration_minutes, difficulty, capacity, location, price_cents, currency, status, created_at, updated_at
		FROM classes
		WHERE id = $1`

	var class models.Class
	err := r.db.GetContext(ctx, &class, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting class: %w", err)
	}
	return &class, nil
}

func (r *ClassRepository) List(ctx context.Context, includeArchived bool) ([]models.Class, error) {
	query := `
		SELECT id, name, description, description_html, teacher_id, style, schedule, schedule_data,
			duration_minutes, difficulty, capacity, location, price_cents, currency, status, created_at, updated_at
		FROM classes`
	if !includeArchived {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY created_at DESC`

	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	return classes, nil
}

func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	query := `
		UPDATE classes
		SET name = $1, description = $2, description_html = $3, teacher_id = $4, style = $5, schedule = $6,
			schedule_data = $7, duration_minutes = $8, difficulty = $9, capacity = $10, location = $11,
			price_cents = $12, currency = $13, status = $14, updated_at = $15
		WHERE id = $16
		RETURNING id`

	class.UpdatedAt = timePtr(time.Now())

	err := r.db.QueryRowContext(ctx, query,
		class.Name, class.Description, class.DescriptionHTML, class.TeacherID, class.Style, class.Schedule,
		class.ScheduleData, class.DurationMinutes, class.Difficulty, class.Capacity, class.Location,
		class.PriceCents, class.Currency, class.Status, class.UpdatedAt, class.ID,
	).Scan(&class.ID)
	if err == sql.ErrNoRows {
		return models.ErrClassNotFound
	}
	if err != nil {
		return fmt.Errorf("error updating class: %w", err)
	}

	r.invalidateScheduleCache(ctx, class.ID)
	return nil
}

func (r *ClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE classes SET status = 'archived', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error archiving class: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error archiving class: %w", err)
	}
	if affected == 0 {
		return models.ErrClassNotFound
	}

	r.invalidateScheduleCache(ctx, id)
	return nil
}

// GetRecurrence resolves a class's structured schedule, consulting the
// redis cache first, then the cached schedule_data column, then deriving
// it from the schedule string. The redis entry is best-effort; cache
// failures only cost a re-parse.
func (r *ClassRepository) GetRecurrence(ctx context.Context, id uuid.UUID) (schedule.Recurrence, *models.Class, error) {
	var rec schedule.Recurrence

	class, err := r.GetByID(ctx, id)
	if err != nil {
		return rec, nil, err
	}
	if class == nil {
		return rec, nil, models.ErrClassNotFound
	}

	if r.redis != nil {
		if raw, err := r.redis.Get(ctx, r.scheduleCacheKey(id)).Bytes(); err == nil {
			if jsonErr := json.Unmarshal(raw, &rec); jsonErr == nil {
				return rec, class, nil
			}
		}
	}

	rec = class.Recurrence()

	if r.redis != nil {
		if raw, err := json.Marshal(rec); err == nil {
			if err := r.redis.Set(ctx, r.scheduleCacheKey(id), raw, scheduleCacheTTL).Err(); err != nil {
				r.logger.Warn("failed to cache class schedule", zap.String("class_id", id.String()), zap.Error(err))
			}
		}
	}
	return rec, class, nil
}

// ListStaleScheduleData returns classes whose cached structured schedule is
// missing; the refresher recomputes and persists it.
func (r *ClassRepository) ListStaleScheduleData(ctx context.Context, limit int) ([]models.Class, error) {
	query := `
		SELECT id, name, description, description_html, teacher_id, style, schedule, schedule_data,
			duration_minutes, difficulty, capacity, location, price_cents, currency, status, created_at, updated_at
		FROM classes
		WHERE schedule_data IS NULL AND status = 'active'
		ORDER BY created_at
		LIMIT $1`

	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, limit); err != nil {
		return nil, fmt.Errorf("error listing classes with stale schedule data: %w", err)
	}
	return classes, nil
}

// SetScheduleData persists a recomputed structured schedule for a class.
func (r *ClassRepository) SetScheduleData(ctx context.Context, id uuid.UUID, data *models.ScheduleData) error {
	_, err := r.db.ExecContext(ctx, `UPDATE classes SET schedule_data = $1, updated_at = now() WHERE id = $2`, data, id)
	if err != nil {
		return fmt.Errorf("error setting schedule data: %w", err)
	}
	r.invalidateScheduleCache(ctx, id)
	return nil
}

func (r *ClassRepository) invalidateScheduleCache(ctx context.Context, id uuid.UUID) {
	if r.redis == nil {
		return
	}
	if err := r.redis.Del(ctx, r.scheduleCacheKey(id)).Err(); err != nil {
		r.logger.Warn("failed to invalidate schedule cache", zap.String("class_id", id.String()), zap.Error(err))
	}
}
