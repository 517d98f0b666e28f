package models

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a message sent through the public contact form.
type Inquiry struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	Subject   string     `json:"subject" db:"subject"`
	Message   string     `json:"message" db:"message"`
	Replied   bool       `json:"replied" db:"replied"`
	RepliedAt *time.Time `json:"replied_at,omitempty" db:"replied_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type CreateInquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type ReplyInquiryRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}
