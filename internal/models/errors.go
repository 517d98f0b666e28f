package models

import "errors"

var (
	ErrClassNotFound        = errors.New("class not found")
	ErrTeacherNotFound      = errors.New("teacher not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInquiryNotFound      = errors.New("inquiry not found")
	ErrAdminUserNotFound    = errors.New("admin user not found")
	ErrInvalidSchedule      = errors.New(`schedule must normalize to "Day/Day H:MM AM|PM", e.g. "Mon/Wed/Fri 7:00 AM"`)
)
