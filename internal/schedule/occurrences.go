package schedule

import "time"

// fallbackClockMinutes is used when a pattern's time string does not parse.
const fallbackClockMinutes = 9 * 60 // 09:00

// NextOccurrences enumerates up to limit upcoming occurrences of the
// recurrence, starting at fromDate's calendar date. Results are ordered,
// timezone-aware timestamps; exception dates are skipped and the validity
// window is honored. Custom records produce nothing. The scan is bounded
// at limit*10 calendar days so an end date that excludes every weekday
// cannot loop forever.
func (r Recurrence) NextOccurrences(fromDate time.Time, limit int) []time.Time {
	if r.Kind != KindWeeklyRecurring || len(r.Pattern.Days) == 0 || limit <= 0 {
		return nil
	}

	valid := make(map[time.Weekday]bool, len(r.Pattern.Days))
	for _, name := range r.Pattern.Days {
		if wd, ok := dayIndex[name]; ok {
			valid[wd] = true
		}
	}
	if len(valid) == 0 {
		return nil
	}

	clockMin := fallbackClockMinutes
	if m, ok := parseClock(r.Pattern.Time); ok {
		clockMin = m
	}

	loc := r.Location()

	exceptions := make(map[string]bool, len(r.Exceptions))
	for _, ex := range r.Exceptions {
		exceptions[ex] = true
	}

	var startDate, endDate time.Time
	var hasStart, hasEnd bool
	if r.DateRange.StartDate != nil {
		startDate, hasStart = parseISODate(*r.DateRange.StartDate)
	}
	if r.DateRange.EndDate != nil {
		endDate, hasEnd = parseISODate(*r.DateRange.EndDate)
	}

	occurrences := make([]time.Time, 0, limit)
	day := time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 0, 0, time.UTC)
	for checked := 0; len(occurrences) < limit && checked < limit*10; checked++ {
		date := day.AddDate(0, 0, checked)
		if !valid[date.Weekday()] || exceptions[isoDate(date)] {
			continue
		}
		if hasStart && date.Before(startDate) {
			continue
		}
		if hasEnd && date.After(endDate) {
			continue
		}
		occurrences = append(occurrences, time.Date(
			date.Year(), date.Month(), date.Day(),
			clockMin/60, clockMin%60, 0, 0, loc,
		))
	}
	return occurrences
}

// Location resolves the pattern's timezone, substituting the default zone
// when the name is missing or unknown. The substitution is explicit so
// callers can log it if they care.
func (r Recurrence) Location() *time.Location {
	if r.Pattern.Timezone != "" {
		if loc, err := time.LoadLocation(r.Pattern.Timezone); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
