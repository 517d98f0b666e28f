package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingRejectedErrorMessage(t *testing.T) {
	err := &BookingRejectedError{Reason: "date 2025-03-11 is not part of this class schedule"}
	assert.Equal(t, "date 2025-03-11 is not part of this class schedule", err.Error())

	err = &BookingRejectedError{
		Reason:         "date 2025-03-11 is not part of this class schedule",
		AvailableDates: []string{"2025-03-10 at 7:00 AM", "2025-03-12 at 7:00 AM"},
	}
	assert.Equal(t,
		"date 2025-03-11 is not part of this class schedule. Available dates: 2025-03-10 at 7:00 AM, 2025-03-12 at 7:00 AM",
		err.Error())
}
