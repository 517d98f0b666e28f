package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// defaultDurationMinutes is assumed when a schedule string carries no end
// time, or when the stated range is not positive.
const defaultDurationMinutes = 60

// Parse patterns, most specific first; the first match wins.
var (
	// "wednesday 18:00 - 19:30"
	durationRangeRe = regexp.MustCompile(`([a-z/]+)\s+(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`)
	// "mon/wed/fri 7:00 am"
	twelveHourRe = regexp.MustCompile(`([a-z/]+)\s+(\d{1,2}):(\d{2})\s*(am|pm)`)
	// "mon/wed/fri 19:00"
	twentyFourHourRe = regexp.MustCompile(`([a-z/]+)\s+(\d{1,2}):(\d{2})\s*$`)
)

// Parse converts a schedule string (canonical or loosely formatted) into a
// structured Recurrence. It is total: text that matches no known pattern
// yields a KindCustom record carrying the lowercased original for display.
func Parse(s string) Recurrence {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return emptyRecurrence()
	}

	var (
		hour, minute string
		meridiem     string
		duration     = defaultDurationMinutes
		daysRaw      string
	)

	switch m := durationRangeRe.FindStringSubmatch(text); {
	case m != nil:
		daysRaw, hour, minute = m[1], m[2], m[3]
		startMin := atoi(m[2])*60 + atoi(m[3])
		endMin := atoi(m[4])*60 + atoi(m[5])
		if d := endMin - startMin; d > 0 {
			duration = d
		}
	default:
		if m := twelveHourRe.FindStringSubmatch(text); m != nil {
			daysRaw, hour, minute, meridiem = m[1], m[2], m[3], m[4]
		} else if m := twentyFourHourRe.FindStringSubmatch(text); m != nil {
			daysRaw, hour, minute = m[1], m[2], m[3]
		} else {
			return customRecurrence(text)
		}
	}

	var days []string
	for _, tok := range strings.Split(daysRaw, "/") {
		if wd, ok := dayIndex[strings.TrimSpace(tok)]; ok {
			days = append(days, dayName[wd])
		}
	}
	if len(days) == 0 {
		return customRecurrence(text)
	}

	hour24 := atoi(hour)
	switch meridiem {
	case "pm":
		if hour24 != 12 {
			hour24 += 12
		}
	case "am":
		if hour24 == 12 {
			hour24 = 0
		}
	}

	return Recurrence{
		Kind:             KindWeeklyRecurring,
		OriginalSchedule: text,
		Pattern: Pattern{
			Days:            days,
			Time:            fmt.Sprintf("%02d:%s", hour24, minute),
			DurationMinutes: duration,
			Timezone:        DefaultTimezone,
		},
		DateRange:  DateRange{StartDate: strPtr(isoDate(time.Now()))},
		Exceptions: []string{},
	}
}

// emptyRecurrence is the fallback for missing input: a custom record with
// an empty original and an unbounded window.
func emptyRecurrence() Recurrence {
	return Recurrence{
		Kind:       KindCustom,
		Exceptions: []string{},
	}
}

// customRecurrence is the fallback for text that matched no pattern; the
// window opens on the current date so validation stays permissive going
// forward.
func customRecurrence(text string) Recurrence {
	return Recurrence{
		Kind:             KindCustom,
		OriginalSchedule: text,
		Pattern:          Pattern{Description: text},
		DateRange:        DateRange{StartDate: strPtr(isoDate(time.Now()))},
		Exceptions:       []string{},
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
