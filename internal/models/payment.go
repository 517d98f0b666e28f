package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusRejected  PaymentStatus = "rejected"
)

// Payment tracks the manual payment-confirmation workflow for a priced
// booking: the registrant pays out of band, an admin confirms or rejects
// against the bank/transfer reference.
type Payment struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	RegistrationID uuid.UUID     `json:"registration_id" db:"registration_id"`
	AmountCents    int64         `json:"amount_cents" db:"amount_cents"`
	Currency       string        `json:"currency" db:"currency"`
	Method         string        `json:"method" db:"method"`
	Reference      *string       `json:"reference,omitempty" db:"reference"`
	Status         PaymentStatus `json:"status" db:"status"`
	ConfirmedBy    *string       `json:"confirmed_by,omitempty" db:"confirmed_by"`
	ConfirmedAt    *time.Time    `json:"confirmed_at,omitempty" db:"confirmed_at"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}

type ConfirmPaymentRequest struct {
	Reference string `json:"reference"`
}
