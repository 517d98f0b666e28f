package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification is one row of the email outbox. Handlers enqueue, the
// dispatcher drains.
type Notification struct {
	ID           uuid.UUID          `json:"id" db:"id"`
	Recipient    string             `json:"recipient" db:"recipient"`
	Subject      string             `json:"subject" db:"subject"`
	BodyHTML     string             `json:"body_html" db:"body_html"`
	Status       NotificationStatus `json:"status" db:"status"`
	AttemptCount int                `json:"attempt_count" db:"attempt_count"`
	LastError    *string            `json:"last_error,omitempty" db:"last_error"`
	SentAt       *time.Time         `json:"sent_at,omitempty" db:"sent_at"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
}
