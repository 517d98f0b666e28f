package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessLevel represents the access level of an admin token
type AccessLevel string

const (
	AccessLevelStaff AccessLevel = "staff"
	AccessLevelAdmin AccessLevel = "admin"
)

// Token represents a JWT token with its claims
type Token struct {
	Sub       string      `json:"sub"`
	Access    AccessLevel `json:"access"`
	ExpiresAt time.Time   `json:"exp"`
}

// AdminUser is a back-office account. PasswordHash is a bcrypt hash.
type AdminUser struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Username     string      `json:"username" db:"username"`
	PasswordHash string      `json:"-" db:"password_hash"`
	Access       AccessLevel `json:"access" db:"access"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	Sub       string      `json:"sub"`
	Access    AccessLevel `json:"access"`
	ExpiresAt time.Time   `json:"expires_at"`
}
