// Package schedule is the studio's recurrence engine. It turns free-text
// schedule strings ("Wednesday 18:00-19:30", "MON,WED,FRI 7:00am") into a
// canonical form, parses either form into a structured weekly recurrence,
// validates candidate booking dates against it, and enumerates upcoming
// occurrences. Every function here is pure: no I/O, no errors, malformed
// input degrades to a passthrough or a custom fallback record.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTimezone is applied to parsed recurrences that carry no explicit
// zone of their own.
const DefaultTimezone = "America/New_York"

// CanonicalRe matches the canonical schedule form, e.g. "Mon/Wed/Fri 7:00 AM".
// The input-validation layer rejects class schedules whose normalized form
// does not match it.
var CanonicalRe = regexp.MustCompile(`^(Mon|Tue|Wed|Thu|Fri|Sat|Sun)(/(Mon|Tue|Wed|Thu|Fri|Sat|Sun))* \d{1,2}:\d{2} (AM|PM)$`)

var (
	// Days may be separated by / or , and the time may be 12h or 24h,
	// optionally followed by a range end which is discarded.
	normalizeRe = regexp.MustCompile(`(?i)^([a-z/,\s]+?)\s+(\d{1,2}):(\d{2})\s*(?:[ap]m)?(?:\s*-\s*\d{1,2}:\d{2}\s*(?:[ap]m)?)?\s*(?:[ap]m)?\s*$`)
	meridiemRe  = regexp.MustCompile(`(?i)[ap]m`)
	daySplitRe  = regexp.MustCompile(`[/,]+`)
)

// IsCanonical reports whether s is already in canonical schedule form.
func IsCanonical(s string) bool {
	return CanonicalRe.MatchString(s)
}

// Normalize converts a loosely formatted schedule string to the canonical
// "Day/Day H:MM AM|PM" form. Input that cannot be confidently parsed is
// returned unchanged; Normalize never fails.
func Normalize(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return raw
	}

	m := normalizeRe.FindStringSubmatch(text)
	if m == nil {
		return raw
	}

	var abbrevs []string
	for _, tok := range daySplitRe.Split(m[1], -1) {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if wd, ok := dayIndex[tok]; ok {
			abbrevs = append(abbrevs, dayAbbrev[wd])
		}
	}
	if len(abbrevs) == 0 {
		return raw
	}

	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])

	// An AM/PM token anywhere in the input decides how the hour is read;
	// without one the hour is taken as already 24-hour.
	hour24 := hour
	if mer := meridiemRe.FindString(text); mer != "" {
		switch strings.ToUpper(mer) {
		case "PM":
			if hour != 12 {
				hour24 = hour + 12
			}
		case "AM":
			if hour == 12 {
				hour24 = 0
			}
		}
	}

	displayHour, suffix := clock12(hour24)
	return fmt.Sprintf("%s %d:%02d %s", strings.Join(abbrevs, "/"), displayHour, minute, suffix)
}

// clock12 renders a 24-hour hour value as a 12-hour hour plus AM/PM suffix.
func clock12(hour24 int) (int, string) {
	switch {
	case hour24 == 0:
		return 12, "AM"
	case hour24 < 12:
		return hour24, "AM"
	case hour24 == 12:
		return 12, "PM"
	default:
		return hour24 - 12, "PM"
	}
}
