package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeeklyRecurring(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantDays     []string
		wantTime     string
		wantDuration int
	}{
		{
			name:         "canonical 12 hour",
			input:        "Mon/Wed/Fri 7:00 AM",
			wantDays:     []string{"monday", "wednesday", "friday"},
			wantTime:     "07:00",
			wantDuration: 60,
		},
		{
			name:         "single full day",
			input:        "Monday 7:00 AM",
			wantDays:     []string{"monday"},
			wantTime:     "07:00",
			wantDuration: 60,
		},
		{
			name:         "pm time",
			input:        "Tue/Thu 6:30 PM",
			wantDays:     []string{"tuesday", "thursday"},
			wantTime:     "18:30",
			wantDuration: 60,
		},
		{
			name:         "24 hour format",
			input:        "Mon/Wed/Fri 19:00",
			wantDays:     []string{"monday", "wednesday", "friday"},
			wantTime:     "19:00",
			wantDuration: 60,
		},
		{
			name:         "mixed case days",
			input:        "MONDAY/wednesday/FrI 7:00 am",
			wantDays:     []string{"monday", "wednesday", "friday"},
			wantTime:     "07:00",
			wantDuration: 60,
		},
		{
			name:         "duration range",
			input:        "Wednesday 18:00 - 19:30",
			wantDays:     []string{"wednesday"},
			wantTime:     "18:00",
			wantDuration: 90,
		},
		{
			name:         "negative range falls back to an hour",
			input:        "Fri 19:00 - 18:00",
			wantDays:     []string{"friday"},
			wantTime:     "19:00",
			wantDuration: 60,
		},
		{
			name:         "noon",
			input:        "Sat 12:00 PM",
			wantDays:     []string{"saturday"},
			wantTime:     "12:00",
			wantDuration: 60,
		},
		{
			name:         "midnight as 12 am",
			input:        "Sun 12:15 AM",
			wantDays:     []string{"sunday"},
			wantTime:     "00:15",
			wantDuration: 60,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Parse(tt.input)
			require.Equal(t, KindWeeklyRecurring, rec.Kind)
			assert.Equal(t, tt.wantDays, rec.Pattern.Days)
			assert.Equal(t, tt.wantTime, rec.Pattern.Time)
			assert.Equal(t, tt.wantDuration, rec.Pattern.DurationMinutes)
			assert.Equal(t, DefaultTimezone, rec.Pattern.Timezone)
			assert.Empty(t, rec.Exceptions)
			assert.Nil(t, rec.DateRange.EndDate)
			if assert.NotNil(t, rec.DateRange.StartDate) {
				start, ok := parseISODate(*rec.DateRange.StartDate)
				require.True(t, ok)
				assert.False(t, start.After(time.Now()), "start date must not be in the future")
			}
		})
	}
}

func TestParseCustomFallback(t *testing.T) {
	rec := Parse("Every other Tuesday maybe")
	require.Equal(t, KindCustom, rec.Kind)
	assert.Equal(t, "every other tuesday maybe", rec.OriginalSchedule)
	assert.Equal(t, "every other tuesday maybe", rec.Pattern.Description)
	assert.Empty(t, rec.Pattern.Days)
	assert.NotNil(t, rec.DateRange.StartDate)
	assert.Nil(t, rec.DateRange.EndDate)
}

func TestParseUnknownDaysFallBack(t *testing.T) {
	rec := Parse("blursday 7:00 am")
	require.Equal(t, KindCustom, rec.Kind)
	assert.Equal(t, "blursday 7:00 am", rec.Pattern.Description)
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   "} {
		rec := Parse(in)
		require.Equal(t, KindCustom, rec.Kind)
		assert.Empty(t, rec.OriginalSchedule)
		assert.Nil(t, rec.DateRange.StartDate)
		assert.Nil(t, rec.DateRange.EndDate)
	}
}

func TestParseTotality(t *testing.T) {
	// Whatever comes in, Parse produces a record with a kind, and weekly
	// records always carry at least one day.
	inputs := []string{
		"", "garbage", "mon", "7:00", "mon 7", "mon/tue", ":: 9:00",
		"Mon/Wed/Fri 7:00 AM", "wednesday 18:00 - 19:30", "\tmon 8:00\n",
	}
	for _, in := range inputs {
		rec := Parse(in)
		assert.Contains(t, []Kind{KindWeeklyRecurring, KindCustom}, rec.Kind, "input %q", in)
		if rec.Kind == KindWeeklyRecurring {
			assert.NotEmpty(t, rec.Pattern.Days, "input %q", in)
		}
	}
}

func TestRecurrenceJSONShape(t *testing.T) {
	rec := Parse("Mon/Wed/Fri 7:00 AM")
	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "weekly_recurring", m["type"])

	pattern, ok := m["pattern"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "07:00", pattern["time"])
	assert.Equal(t, float64(60), pattern["duration_minutes"])
	assert.Equal(t, DefaultTimezone, pattern["timezone"])

	dr, ok := m["date_range"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, dr, "start_date")
	assert.Contains(t, dr, "end_date")

	var back Recurrence
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, rec, back)
}

func TestNormalizeParseAgreement(t *testing.T) {
	// The parser accepts both the raw and the normalized form and lands on
	// the same weekly pattern.
	inputs := []string{"Mon/Wed/Fri 19:00", "wednesday 18:00", "Tue/Thu 6:30 PM"}
	for _, in := range inputs {
		raw := Parse(in)
		norm := Parse(Normalize(in))
		assert.Equal(t, raw.Pattern.Days, norm.Pattern.Days, "input %q", in)
		assert.Equal(t, raw.Pattern.Time, norm.Pattern.Time, "input %q", in)
	}
}
