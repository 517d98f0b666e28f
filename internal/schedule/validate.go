package schedule

import (
	"strings"
	"time"
)

// timeToleranceSeconds is how far a requested time may drift from the
// pattern's start time and still count as the same occurrence. Absorbs
// client-side rounding of displayed times.
const timeToleranceSeconds = 900

// IsValidOccurrence reports whether the candidate date (and optional
// "HH:MM" time, empty when not supplied) is a legal occurrence of this
// recurrence. Custom records impose no constraints and always validate.
func (r Recurrence) IsValidOccurrence(targetDate time.Time, targetTime string) bool {
	if r.Kind != KindWeeklyRecurring {
		return true
	}
	if len(r.Pattern.Days) == 0 {
		return true
	}

	targetDay := dayName[targetDate.Weekday()]
	found := false
	for _, d := range r.Pattern.Days {
		if strings.EqualFold(d, targetDay) {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	// Inclusive validity window. A stored bound that fails to parse is
	// ignored rather than rejecting every date.
	if r.DateRange.StartDate != nil {
		if start, ok := parseISODate(*r.DateRange.StartDate); ok && targetDate.Before(start) {
			return false
		}
	}
	if r.DateRange.EndDate != nil {
		if end, ok := parseISODate(*r.DateRange.EndDate); ok && targetDate.After(end.Add(24*time.Hour-time.Nanosecond)) {
			return false
		}
	}

	target := isoDate(targetDate)
	for _, ex := range r.Exceptions {
		if ex == target {
			return false
		}
	}

	if targetTime != "" && r.Pattern.Time != "" {
		want, okWant := parseClock(r.Pattern.Time)
		got, okGot := parseClock(targetTime)
		if okWant && okGot {
			diff := (want - got) * 60
			if diff < 0 {
				diff = -diff
			}
			if diff > timeToleranceSeconds {
				return false
			}
		}
	}

	return true
}
