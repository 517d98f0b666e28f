package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
)

// suggestionCount is how many upcoming dates a rejection offers back.
const suggestionCount = 3

// BookingRejectedError is returned when a requested date/time is not an
// occurrence of the class schedule. AvailableDates carries example valid
// upcoming dates to guide correction.
type BookingRejectedError struct {
	Reason         string
	AvailableDates []string
}

func (e *BookingRejectedError) Error() string {
	if len(e.AvailableDates) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s. Available dates: %s", e.Reason, strings.Join(e.AvailableDates, ", "))
}

// RegistrationService runs the schedule-aware booking flow: validate the
// requested occurrence against the class recurrence, apply the capacity
// gate inside the repository's transaction, open a payment for priced
// classes, and queue the confirmation email.
type RegistrationService struct {
	classes       *repository.ClassRepository
	registrations *repository.RegistrationRepository
	payments      *repository.PaymentRepository
	notifications *repository.NotificationRepository
	studioName    string
	logger        *zap.Logger
}

func NewRegistrationService(
	classes *repository.ClassRepository,
	registrations *repository.RegistrationRepository,
	payments *repository.PaymentRepository,
	notifications *repository.NotificationRepository,
	studioName string,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		classes:       classes,
		registrations: registrations,
		payments:      payments,
		notifications: notifications,
		studioName:    studioName,
		logger:        logger,
	}
}

// Create books a class. The returned decision is the capacity gate's
// verdict (confirmed or waitlist); the registration's own status may be
// pending_payment when the class is priced.
func (s *RegistrationService) Create(ctx context.Context, req models.CreateRegistrationRequest) (*models.Registration, schedule.BookingDecision, error) {
	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return nil, "", models.ErrClassNotFound
	}

	rec, class, err := s.classes.GetRecurrence(ctx, classID)
	if err != nil {
		return nil, "", err
	}

	reg := &models.Registration{
		ClassID:  class.ID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
		Metadata: req.Metadata,
	}
	if req.TargetTime != "" {
		t := req.TargetTime
		reg.TargetTime = &t
	}

	decision := schedule.DecisionConfirmed
	if req.TargetDate != "" {
		targetDate, parseErr := time.Parse("2006-01-02", req.TargetDate)
		if parseErr != nil {
			return nil, "", &BookingRejectedError{Reason: fmt.Sprintf("invalid target date %q", req.TargetDate)}
		}
		reg.TargetDate = &targetDate

		if !rec.IsValidOccurrence(targetDate, req.TargetTime) {
			return nil, "", &BookingRejectedError{
				Reason:         fmt.Sprintf("date %s is not part of this class schedule", req.TargetDate),
				AvailableDates: s.suggestions(rec),
			}
		}

		decision, err = s.registrations.CreateForDate(ctx, reg, class.Priced())
		if err != nil {
			return nil, "", err
		}
	} else {
		reg.Status = models.RegistrationStatusConfirmed
		if class.Priced() {
			reg.Status = models.RegistrationStatusPendingPayment
		}
		if err := s.registrations.Create(ctx, reg); err != nil {
			return nil, "", err
		}
	}

	if reg.Status == models.RegistrationStatusPendingPayment {
		payment := &models.Payment{
			RegistrationID: reg.ID,
			AmountCents:    class.PriceCents,
			Currency:       class.Currency,
			Method:         "bank_transfer",
		}
		if err := s.payments.Create(ctx, payment); err != nil {
			s.logger.Error("failed to open payment for registration",
				zap.String("registration_id", reg.ID.String()), zap.Error(err))
		}
	}

	s.enqueueConfirmation(ctx, reg, class)
	return reg, decision, nil
}

// Cancel sets a registration to cancelled. Cancelling frees the seat for
// subsequent bookings; promotion off the waitlist is a manual back-office
// action.
func (s *RegistrationService) Cancel(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	return s.registrations.UpdateStatus(ctx, id, models.RegistrationStatusCancelled)
}

// UpcomingDates lists the next occurrences of a class for the public
// availability endpoint.
func (s *RegistrationService) UpcomingDates(ctx context.Context, classID uuid.UUID, from time.Time, limit int) ([]models.UpcomingDate, error) {
	rec, _, err := s.classes.GetRecurrence(ctx, classID)
	if err != nil {
		return nil, err
	}

	occurrences := rec.NextOccurrences(from, limit)
	dates := make([]models.UpcomingDate, 0, len(occurrences))
	friendly := schedule.FriendlyString(rec)
	for _, occ := range occurrences {
		dates = append(dates, models.UpcomingDate{
			Date:     occ.Format("2006-01-02"),
			Time:     occ.Format("15:04"),
			Starts:   occ,
			Friendly: friendly,
		})
	}
	return dates, nil
}

func (s *RegistrationService) suggestions(rec schedule.Recurrence) []string {
	var out []string
	for _, occ := range rec.NextOccurrences(time.Now(), suggestionCount) {
		out = append(out, occ.Format("2006-01-02 at 3:04 PM"))
	}
	return out
}

func (s *RegistrationService) enqueueConfirmation(ctx context.Context, reg *models.Registration, class *models.Class) {
	var subject, intro string
	switch reg.Status {
	case models.RegistrationStatusConfirmed:
		subject = fmt.Sprintf("You're booked: %s", class.Name)
		intro = "Your spot is confirmed."
	case models.RegistrationStatusWaitlist:
		subject = fmt.Sprintf("Waitlisted: %s", class.Name)
		intro = "The class is currently full, so you're on the waitlist. We'll email you if a spot opens up."
	case models.RegistrationStatusPendingPayment:
		subject = fmt.Sprintf("Almost there: %s", class.Name)
		intro = "Your spot is held pending payment. We'll confirm as soon as the transfer arrives."
	default:
		return
	}

	when := schedule.FriendlyString(class.Recurrence())
	if reg.TargetDate != nil {
		when = reg.TargetDate.Format("Monday, January 2, 2006")
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>%s</p><p><strong>%s</strong><br>%s</p><p>— %s</p>",
		reg.Name, intro, class.Name, when, s.studioName)

	n := &models.Notification{Recipient: reg.Email, Subject: subject, BodyHTML: body}
	if err := s.notifications.Enqueue(ctx, n); err != nil {
		s.logger.Error("failed to enqueue confirmation email",
			zap.String("registration_id", reg.ID.String()), zap.Error(err))
	}
}
