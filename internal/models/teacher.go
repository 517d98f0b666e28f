package models

import (
	"time"

	"github.com/google/uuid"
)

// Teacher is a studio teacher profile. Bio is markdown authored in the
// back office; BioHTML is its rendered form, recomputed on write.
type Teacher struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Bio            string     `json:"bio" db:"bio"`
	BioHTML        string     `json:"bio_html" db:"bio_html"`
	Qualifications string     `json:"qualifications" db:"qualifications"`
	PhotoURL       *string    `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

type CreateTeacherRequest struct {
	Name           string  `json:"name" binding:"required"`
	Bio            string  `json:"bio"`
	Qualifications string  `json:"qualifications"`
	PhotoURL       *string `json:"photo_url,omitempty"`
}

type UpdateTeacherRequest struct {
	Name           *string `json:"name,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	Qualifications *string `json:"qualifications,omitempty"`
	PhotoURL       *string `json:"photo_url,omitempty"`
}
