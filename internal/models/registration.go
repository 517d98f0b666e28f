package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RegistrationStatus string

const (
	RegistrationStatusPendingPayment RegistrationStatus = "pending_payment"
	RegistrationStatusConfirmed      RegistrationStatus = "confirmed"
	RegistrationStatusWaitlist       RegistrationStatus = "waitlist"
	RegistrationStatusCancelled      RegistrationStatus = "cancelled"
)

// CapacityCountedStatuses are the statuses that occupy a seat when tallying
// existing bookings against a class's capacity. Cancelled never counts.
var CapacityCountedStatuses = []string{
	string(RegistrationStatusConfirmed),
	string(RegistrationStatusWaitlist),
	string(RegistrationStatusPendingPayment),
}

// Registration is one booking of a class occurrence. TargetDate is the
// concrete date the registrant wants to attend; TargetTime ("HH:MM") is
// optional and only used for validation against the class schedule.
type Registration struct {
	ID         uuid.UUID          `json:"id" db:"id"`
	ClassID    uuid.UUID          `json:"class_id" db:"class_id"`
	Name       string             `json:"name" db:"name"`
	Email      string             `json:"email" db:"email"`
	Phone      *string            `json:"phone,omitempty" db:"phone"`
	Message    *string            `json:"message,omitempty" db:"message"`
	TargetDate *time.Time         `json:"target_date,omitempty" db:"target_date"`
	TargetTime *string            `json:"target_time,omitempty" db:"target_time"`
	Metadata   datatypes.JSON     `json:"metadata,omitempty" db:"metadata"`
	Status     RegistrationStatus `json:"status" db:"status"`
	CreatedAt  time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time         `json:"updated_at,omitempty" db:"updated_at"`
}

type CreateRegistrationRequest struct {
	ClassID    string         `json:"class_id" binding:"required,uuid"`
	Name       string         `json:"name" binding:"required"`
	Email      string         `json:"email" binding:"required,email"`
	Phone      *string        `json:"phone,omitempty"`
	Message    *string        `json:"message,omitempty"`
	TargetDate string         `json:"target_date" binding:"omitempty,datetime=2006-01-02"`
	TargetTime string         `json:"target_time" binding:"omitempty"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending_payment confirmed waitlist cancelled"`
}

type RegistrationFilter struct {
	ClassID    *uuid.UUID
	TargetDate *time.Time
	Status     *RegistrationStatus
}
