package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
	"github.com/lbrrrrrr/enjoyyoga/internal/testutils"
)

func seedClass(t *testing.T, classes *ClassRepository, teachers *TeacherRepository, capacity int, priceCents int64) *models.Class {
	t.Helper()
	ctx := context.Background()

	teacher := &models.Teacher{Name: "Maya"}
	require.NoError(t, teachers.Create(ctx, teacher))

	rec := schedule.Parse("Mon/Wed/Fri 7:00 AM")
	class := &models.Class{
		Name:         "Morning Vinyasa",
		TeacherID:    teacher.ID,
		Schedule:     "Mon/Wed/Fri 7:00 AM",
		ScheduleData: &models.ScheduleData{Recurrence: rec},
		Capacity:     capacity,
		PriceCents:   priceCents,
		Currency:     "USD",
	}
	require.NoError(t, classes.Create(ctx, class))
	return class
}

func newRegistration(classID uuid.UUID, email string, date time.Time) *models.Registration {
	return &models.Registration{
		ClassID:    classID,
		Name:       "Student",
		Email:      email,
		TargetDate: &date,
	}
}

func TestCreateForDateCapacityGate(t *testing.T) {
	db := testutils.TestDB(t)
	logger := zap.NewNop()
	classes := NewClassRepository(db, logger, nil, "test:")
	teachers := NewTeacherRepository(db, logger)
	registrations := NewRegistrationRepository(db, logger, nil)
	ctx := context.Background()

	class := seedClass(t, classes, teachers, 2, 0)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // a Monday

	first := newRegistration(class.ID, "a@example.com", date)
	decision, err := registrations.CreateForDate(ctx, first, false)
	require.NoError(t, err)
	assert.Equal(t, schedule.DecisionConfirmed, decision)
	assert.Equal(t, models.RegistrationStatusConfirmed, first.Status)

	second := newRegistration(class.ID, "b@example.com", date)
	decision, err = registrations.CreateForDate(ctx, second, false)
	require.NoError(t, err)
	assert.Equal(t, schedule.DecisionConfirmed, decision)

	// Capacity reached: third booking goes to the waitlist.
	third := newRegistration(class.ID, "c@example.com", date)
	decision, err = registrations.CreateForDate(ctx, third, false)
	require.NoError(t, err)
	assert.Equal(t, schedule.DecisionWaitlist, decision)
	assert.Equal(t, models.RegistrationStatusWaitlist, third.Status)

	// A different date starts from a clean count.
	otherDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	fourth := newRegistration(class.ID, "d@example.com", otherDate)
	decision, err = registrations.CreateForDate(ctx, fourth, false)
	require.NoError(t, err)
	assert.Equal(t, schedule.DecisionConfirmed, decision)
}

func TestCreateForDateCancelledSeatsAreFree(t *testing.T) {
	db := testutils.TestDB(t)
	logger := zap.NewNop()
	classes := NewClassRepository(db, logger, nil, "test:")
	teachers := NewTeacherRepository(db, logger)
	registrations := NewRegistrationRepository(db, logger, nil)
	ctx := context.Background()

	class := seedClass(t, classes, teachers, 1, 0)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first := newRegistration(class.ID, "a@example.com", date)
	_, err := registrations.CreateForDate(ctx, first, false)
	require.NoError(t, err)

	_, err = registrations.UpdateStatus(ctx, first.ID, models.RegistrationStatusCancelled)
	require.NoError(t, err)

	second := newRegistration(class.ID, "b@example.com", date)
	decision, err := registrations.CreateForDate(ctx, second, false)
	require.NoError(t, err)
	assert.Equal(t, schedule.DecisionConfirmed, decision)
}

func TestCreateForDatePricedClassHoldsSeat(t *testing.T) {
	db := testutils.TestDB(t)
	logger := zap.NewNop()
	classes := NewClassRepository(db, logger, nil, "test:")
	teachers := NewTeacherRepository(db, logger)
	registrations := NewRegistrationRepository(db, logger, nil)
	ctx := context.Background()

	class := seedClass(t, classes, teachers, 1, 2500)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first := newRegistration(class.ID, "a@example.com", date)
	decision, err := registrations.CreateForDate(ctx, first, true)
	require.NoError(t, err)
	assert.Equal(t, schedule.DecisionConfirmed, decision)
	assert.Equal(t, models.RegistrationStatusPendingPayment, first.Status)

	// The held seat still counts toward capacity.
	second := newRegistration(class.ID, "b@example.com", date)
	decision, err = registrations.CreateForDate(ctx, second, false)
	require.NoError(t, err)
	assert.Equal(t, schedule.DecisionWaitlist, decision)
}

func TestCountForDate(t *testing.T) {
	db := testutils.TestDB(t)
	logger := zap.NewNop()
	classes := NewClassRepository(db, logger, nil, "test:")
	teachers := NewTeacherRepository(db, logger)
	registrations := NewRegistrationRepository(db, logger, nil)
	ctx := context.Background()

	class := seedClass(t, classes, teachers, 10, 0)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	count, err := registrations.CountForDate(ctx, class.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	reg := newRegistration(class.ID, "a@example.com", date)
	_, err = registrations.CreateForDate(ctx, reg, false)
	require.NoError(t, err)

	count, err = registrations.CountForDate(ctx, class.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
