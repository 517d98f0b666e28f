package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
)

type AdminUserRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAdminUserRepository(db *sqlx.DB, logger *zap.Logger) *AdminUserRepository {
	return &AdminUserRepository{db: db, logger: logger}
}

func (r *AdminUserRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.GetContext(ctx, &user, `
		SELECT id, username, password_hash, access, created_at
		FROM admin_users WHERE username = $1`, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting admin user: %w", err)
	}
	return &user, nil
}
