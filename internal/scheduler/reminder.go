package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
)

// Reminder mails confirmed registrants the day before their class. It
// runs on a cron schedule (config scheduler.reminder_cron, late afternoon
// by default) and checks every active class against tomorrow's date.
type Reminder struct {
	classRepo        *repository.ClassRepository
	registrationRepo *repository.RegistrationRepository
	notificationRepo *repository.NotificationRepository
	cronSpec         string
	studioName       string
	logger           *zap.Logger

	cron *cron.Cron
}

func NewReminder(
	classRepo *repository.ClassRepository,
	registrationRepo *repository.RegistrationRepository,
	notificationRepo *repository.NotificationRepository,
	cronSpec, studioName string,
	logger *zap.Logger,
) *Reminder {
	return &Reminder{
		classRepo:        classRepo,
		registrationRepo: registrationRepo,
		notificationRepo: notificationRepo,
		cronSpec:         cronSpec,
		studioName:       studioName,
		logger:           logger,
	}
}

// Start registers the cron job. The job itself runs in cron's goroutine;
// Stop cancels it.
func (r *Reminder) Start(ctx context.Context) error {
	r.cron = cron.New()
	_, err := r.cron.AddFunc(r.cronSpec, func() {
		if err := r.RemindOnce(ctx, time.Now().AddDate(0, 0, 1)); err != nil {
			r.logger.Error("reminder run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder cron spec %q: %w", r.cronSpec, err)
	}
	r.cron.Start()
	r.logger.Info("reminder job scheduled", zap.String("cron", r.cronSpec))
	return nil
}

func (r *Reminder) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

// RemindOnce sends reminders for every class occurring on the target date.
func (r *Reminder) RemindOnce(ctx context.Context, target time.Time) error {
	classes, err := r.classRepo.List(ctx, false)
	if err != nil {
		return err
	}

	targetDate := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	for i := range classes {
		class := &classes[i]
		rec := class.Recurrence()
		if !rec.IsValidOccurrence(targetDate, "") {
			continue
		}

		regs, err := r.registrationRepo.ListConfirmedForClassDate(ctx, class.ID, targetDate)
		if err != nil {
			r.logger.Error("failed to list registrants for reminder",
				zap.String("class_id", class.ID.String()), zap.Error(err))
			continue
		}
		for _, reg := range regs {
			r.enqueueReminder(ctx, &reg, class, rec, targetDate)
		}
	}
	return nil
}

func (r *Reminder) enqueueReminder(ctx context.Context, reg *models.Registration, class *models.Class, rec schedule.Recurrence, date time.Time) {
	startTime := rec.Pattern.Time
	if startTime == "" {
		startTime = "09:00"
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>A quick reminder that you're booked for <strong>%s</strong> tomorrow, %s at %s.</p><p>See you on the mat!</p><p>— %s</p>",
		reg.Name, class.Name, date.Format("Monday, January 2"), startTime, r.studioName)

	n := &models.Notification{
		Recipient: reg.Email,
		Subject:   fmt.Sprintf("Reminder: %s tomorrow", class.Name),
		BodyHTML:  body,
	}
	if err := r.notificationRepo.Enqueue(ctx, n); err != nil {
		r.logger.Error("failed to enqueue reminder",
			zap.String("registration_id", reg.ID.String()), zap.Error(err))
	}
}
