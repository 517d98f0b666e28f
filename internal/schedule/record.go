package schedule

import (
	"time"
)

// Kind discriminates the two recurrence variants.
type Kind string

const (
	// KindWeeklyRecurring is a parsed weekly pattern (days + start time).
	KindWeeklyRecurring Kind = "weekly_recurring"
	// KindCustom is the fallback for schedule text that could not be
	// parsed; the original text is kept for display.
	KindCustom Kind = "custom"
)

// Pattern holds the recurring part of a schedule. For weekly recurrences
// Days/Time/DurationMinutes/Timezone are set; for custom schedules only
// Description is.
type Pattern struct {
	Days            []string `json:"days,omitempty"`
	Time            string   `json:"time,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	Timezone        string   `json:"timezone,omitempty"`
	Description     string   `json:"description,omitempty"`
}

// DateRange is the inclusive validity window of a recurrence. A nil side
// is unbounded. Dates are ISO (YYYY-MM-DD) strings.
type DateRange struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// Recurrence is the structured, machine-usable form of a class schedule.
// It is a value object derived from the schedule string and cached in the
// class row's schedule_data column; the JSON field names below are the
// storage contract.
type Recurrence struct {
	Kind             Kind      `json:"type"`
	OriginalSchedule string    `json:"original_schedule,omitempty"`
	Pattern          Pattern   `json:"pattern"`
	DateRange        DateRange `json:"date_range"`
	Exceptions       []string  `json:"exceptions"`
}

// IsWeekly reports whether the recurrence carries a parsed weekly pattern.
func (r Recurrence) IsWeekly() bool {
	return r.Kind == KindWeeklyRecurring
}

// parseISODate parses a YYYY-MM-DD string; ok is false on malformed input.
func parseISODate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseClock parses an H:MM or HH:MM string into minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		if t, err = time.Parse("3:04", s); err != nil {
			return 0, false
		}
	}
	return t.Hour()*60 + t.Minute(), true
}

// isoDate renders the date part of t.
func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func strPtr(s string) *string {
	return &s
}
