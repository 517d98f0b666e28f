package handlers

import (
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
)

var rruleWeekdays = map[string]rrule.Weekday{
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
	"sunday":    rrule.SU,
}

// CalendarHandler exports a class schedule as an iCalendar feed so
// students can subscribe from their calendar app.
type CalendarHandler struct {
	classRepo *repository.ClassRepository
}

func NewCalendarHandler(classRepo *repository.ClassRepository) *CalendarHandler {
	return &CalendarHandler{classRepo: classRepo}
}

func (h *CalendarHandler) ClassCalendar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	rec, class, err := h.classRepo.GetRecurrence(c.Request.Context(), id)
	if err != nil {
		if err == models.ErrClassNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load class schedule"})
		return
	}
	if !rec.IsWeekly() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Class schedule has no enumerable weekly pattern"})
		return
	}

	body, err := buildClassCalendar(rec, class)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build calendar"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", class.Name+".ics"))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// buildClassCalendar renders a single recurring VEVENT. The recurrence
// rule mirrors the weekly pattern; exception dates become EXDATEs and the
// schedule's end date an UNTIL clause.
func buildClassCalendar(rec schedule.Recurrence, class *models.Class) (string, error) {
	upcoming := rec.NextOccurrences(time.Now(), 1)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//enjoyyoga//class schedule//EN")

	if len(upcoming) == 0 {
		// Schedule already ended or every day is excepted.
		return cal.Serialize(), nil
	}
	start := upcoming[0]

	duration := class.DurationMinutes
	if duration == 0 {
		duration = rec.Pattern.DurationMinutes
	}
	if duration == 0 {
		duration = 60
	}

	opt := rrule.ROption{Freq: rrule.WEEKLY}
	for _, name := range rec.Pattern.Days {
		if wd, ok := rruleWeekdays[name]; ok {
			opt.Byweekday = append(opt.Byweekday, wd)
		}
	}
	if rec.DateRange.EndDate != nil {
		if until, err := time.ParseInLocation("2006-01-02", *rec.DateRange.EndDate, rec.Location()); err == nil {
			// Inclusive end of day.
			opt.Until = until.AddDate(0, 0, 1).Add(-time.Second).UTC()
		}
	}
	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("error building recurrence rule: %w", err)
	}

	event := cal.AddEvent("class-" + class.ID.String() + "@enjoyyoga")
	event.SetDtStampTime(time.Now())
	event.SetStartAt(start)
	event.SetEndAt(start.Add(time.Duration(duration) * time.Minute))
	event.SetSummary(class.Name)
	if class.Location != "" {
		event.SetLocation(class.Location)
	}
	if class.Description != "" {
		event.SetDescription(class.Description)
	}
	event.AddRrule(rule.String())

	for _, ex := range rec.Exceptions {
		day, err := time.ParseInLocation("2006-01-02", ex, rec.Location())
		if err != nil {
			continue
		}
		exAt := time.Date(day.Year(), day.Month(), day.Day(),
			start.Hour(), start.Minute(), 0, 0, rec.Location())
		event.AddExdate(exAt.UTC().Format("20060102T150405Z"))
	}

	return cal.Serialize(), nil
}
