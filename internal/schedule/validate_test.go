package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// monWedFri is a fixed record with a window wide enough for the test dates.
func monWedFri() Recurrence {
	return Recurrence{
		Kind: KindWeeklyRecurring,
		Pattern: Pattern{
			Days:            []string{"monday", "wednesday", "friday"},
			Time:            "07:00",
			DurationMinutes: 60,
			Timezone:        DefaultTimezone,
		},
		DateRange:  DateRange{StartDate: strPtr("2024-01-01")},
		Exceptions: []string{},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsValidOccurrenceWeekday(t *testing.T) {
	rec := monWedFri()

	monday := date(2024, time.March, 11)
	tuesday := date(2024, time.March, 12)

	assert.True(t, rec.IsValidOccurrence(monday, "07:00"))
	assert.False(t, rec.IsValidOccurrence(tuesday, "07:00"))
	assert.True(t, rec.IsValidOccurrence(monday, ""), "missing time skips the time check")
}

func TestIsValidOccurrenceTimeTolerance(t *testing.T) {
	rec := monWedFri()
	monday := date(2024, time.March, 11)

	tests := []struct {
		time string
		want bool
	}{
		{"07:00", true},
		{"07:10", true},
		{"07:15", true}, // exactly on the tolerance boundary
		{"06:45", true},
		{"07:20", false},
		{"06:40", false},
		{"18:00", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rec.IsValidOccurrence(monday, tt.time), "time %s", tt.time)
	}
}

func TestIsValidOccurrenceDateRange(t *testing.T) {
	rec := monWedFri()
	rec.DateRange = DateRange{
		StartDate: strPtr("2024-03-01"),
		EndDate:   strPtr("2024-03-31"),
	}

	assert.True(t, rec.IsValidOccurrence(date(2024, time.March, 11), "07:00"))
	assert.True(t, rec.IsValidOccurrence(date(2024, time.March, 1), "07:00"), "window start is inclusive")   // a Friday
	assert.True(t, rec.IsValidOccurrence(date(2024, time.March, 29), "07:00"), "window end is inclusive")    // a Friday
	assert.False(t, rec.IsValidOccurrence(date(2024, time.February, 26), "07:00"), "before window")          // a Monday
	assert.False(t, rec.IsValidOccurrence(date(2024, time.April, 1), "07:00"), "after window")               // a Monday
}

func TestIsValidOccurrenceExceptions(t *testing.T) {
	rec := monWedFri()
	rec.Exceptions = []string{"2024-03-11"}

	assert.False(t, rec.IsValidOccurrence(date(2024, time.March, 11), "07:00"))
	assert.True(t, rec.IsValidOccurrence(date(2024, time.March, 13), "07:00"))
}

func TestIsValidOccurrencePermissiveFallbacks(t *testing.T) {
	custom := Parse("schedule varies, call us")
	assert.True(t, custom.IsValidOccurrence(date(2024, time.March, 12), "23:59"))

	noDays := monWedFri()
	noDays.Pattern.Days = nil
	assert.True(t, noDays.IsValidOccurrence(date(2024, time.March, 12), "07:00"))

	badBound := monWedFri()
	badBound.DateRange.StartDate = strPtr("not-a-date")
	assert.True(t, badBound.IsValidOccurrence(date(2024, time.March, 11), "07:00"),
		"malformed stored bound is ignored")
}

func TestIsValidOccurrenceFromParsedString(t *testing.T) {
	rec := Parse("Mon/Wed/Fri 7:00 AM")

	// Pick the next Monday and Tuesday after the parse-time start date.
	now := time.Now()
	daysUntilMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}
	monday := now.AddDate(0, 0, daysUntilMonday)
	tuesday := monday.AddDate(0, 0, 1)

	assert.True(t, rec.IsValidOccurrence(monday, "07:00"))
	assert.False(t, rec.IsValidOccurrence(tuesday, "07:00"))
}
