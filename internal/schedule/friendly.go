package schedule

import (
	"fmt"
	"strings"
)

// FriendlyString renders a recurrence for display, e.g.
// "Monday, Wednesday, and Fridays at 7:00 AM".
func FriendlyString(r Recurrence) string {
	switch r.Kind {
	case KindWeeklyRecurring:
		if len(r.Pattern.Days) == 0 || r.Pattern.Time == "" {
			return "Schedule not available"
		}

		var dayText string
		if len(r.Pattern.Days) == 1 {
			dayText = capitalize(r.Pattern.Days[0]) + "s"
		} else {
			head := make([]string, 0, len(r.Pattern.Days)-1)
			for _, d := range r.Pattern.Days[:len(r.Pattern.Days)-1] {
				head = append(head, capitalize(d))
			}
			last := r.Pattern.Days[len(r.Pattern.Days)-1]
			dayText = strings.Join(head, ", ") + ", and " + capitalize(last) + "s"
		}

		timeText := r.Pattern.Time
		if m, ok := parseClock(r.Pattern.Time); ok {
			h, suffix := clock12(m / 60)
			timeText = fmt.Sprintf("%d:%02d %s", h, m%60, suffix)
		}
		return fmt.Sprintf("%s at %s", dayText, timeText)

	case KindCustom:
		if r.Pattern.Description != "" {
			return r.Pattern.Description
		}
		return "Schedule varies"
	}
	return "Schedule not available"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
