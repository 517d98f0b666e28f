package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
)

type ClassStatus string

const (
	ClassStatusActive   ClassStatus = "active"
	ClassStatusArchived ClassStatus = "archived"
)

// ScheduleData is the cached structured recurrence stored alongside the
// class's schedule string. It embeds the engine's Recurrence so the
// validator and enumerator are available directly on the column value.
type ScheduleData struct {
	schedule.Recurrence
}

// Value implements driver.Valuer for the schedule_data JSONB column.
func (s *ScheduleData) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s.Recurrence)
}

// Scan implements sql.Scanner for the schedule_data JSONB column.
func (s *ScheduleData) Scan(value interface{}) error {
	if value == nil {
		*s = ScheduleData{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &s.Recurrence)
	case string:
		return json.Unmarshal([]byte(v), &s.Recurrence)
	default:
		return fmt.Errorf("failed to scan ScheduleData: %v", value)
	}
}

// Class represents a bookable class. Schedule is the canonical schedule
// string ("Mon/Wed/Fri 7:00 AM"); ScheduleData is its parsed form,
// recomputed whenever the schedule string changes.
type Class struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	Name            string        `json:"name" db:"name"`
	Description     string        `json:"description" db:"description"`
	DescriptionHTML string        `json:"description_html" db:"description_html"`
	TeacherID       uuid.UUID     `json:"teacher_id" db:"teacher_id"`
	Style           string        `json:"style" db:"style"`
	Schedule        string        `json:"schedule" db:"schedule"`
	ScheduleData    *ScheduleData `json:"schedule_data,omitempty" db:"schedule_data"`
	DurationMinutes int           `json:"duration_minutes" db:"duration_minutes"`
	Difficulty      string        `json:"difficulty" db:"difficulty"`
	Capacity        int           `json:"capacity" db:"capacity"`
	Location        string        `json:"location" db:"location"`
	PriceCents      int64         `json:"price_cents" db:"price_cents"`
	Currency        string        `json:"currency" db:"currency"`
	Status          ClassStatus   `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time    `json:"updated_at,omitempty" db:"updated_at"`
}

// Priced reports whether bookings for this class go through the manual
// payment flow before confirmation.
func (c *Class) Priced() bool {
	return c.PriceCents > 0
}

// Recurrence returns the cached structured schedule, deriving it from the
// schedule string when no cached form exists.
func (c *Class) Recurrence() schedule.Recurrence {
	if c.ScheduleData != nil {
		return c.ScheduleData.Recurrence
	}
	return schedule.Parse(c.Schedule)
}

type CreateClassRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	TeacherID       string `json:"teacher_id" binding:"required,uuid"`
	Style           string `json:"style"`
	Schedule        string `json:"schedule" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
	Difficulty      string `json:"difficulty"`
	Capacity        int    `json:"capacity" binding:"required,gt=0"`
	Location        string `json:"location"`
	PriceCents      int64  `json:"price_cents"`
	Currency        string `json:"currency"`
}

type UpdateClassRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	TeacherID       *string `json:"teacher_id,omitempty"`
	Style           *string `json:"style,omitempty"`
	Schedule        *string `json:"schedule,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Difficulty      *string `json:"difficulty,omitempty"`
	Capacity        *int    `json:"capacity,omitempty"`
	Location        *string `json:"location,omitempty"`
	PriceCents      *int64  `json:"price_cents,omitempty"`
	Currency        *string `json:"currency,omitempty"`
	Status          *string `json:"status,omitempty"`
}

// UpcomingDate is one enumerated occurrence formatted for the listing
// endpoint.
type UpcomingDate struct {
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Starts   time.Time `json:"starts"`
	Friendly string    `json:"friendly"`
}
