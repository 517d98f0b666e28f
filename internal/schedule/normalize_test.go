package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "Mon/Wed/Fri 7:00 AM", "Mon/Wed/Fri 7:00 AM"},
		{"full day name", "Wednesday 18:00", "Wed 6:00 PM"},
		{"comma separated uppercase", "MON,WED,FRI 7:00am", "Mon/Wed/Fri 7:00 AM"},
		{"24 hour evening", "Mon/Wed/Fri 19:00", "Mon/Wed/Fri 7:00 PM"},
		{"range keeps start only", "Wednesday 18:00 - 19:30", "Wed 6:00 PM"},
		{"range without spaces", "Sat 10:00-12:00", "Sat 10:00 AM"},
		{"midnight", "Sun 0:15", "Sun 12:15 AM"},
		{"noon", "Tue 12:00 PM", "Tue 12:00 PM"},
		{"twelve am", "Tue 12:30 AM", "Tue 12:30 AM"},
		{"long abbreviations", "tues/thurs 6:30 pm", "Tue/Thu 6:30 PM"},
		{"mixed case days", "monday/WEDNESDAY 9:05", "Mon/Wed 9:05 AM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizePassthrough(t *testing.T) {
	// Anything without a recognizable day and time comes back verbatim.
	inputs := []string{
		"",
		"   ",
		"Every other Tuesday maybe",
		"see website for times",
		"7:00 AM", // time but no day
		"Blursday 7:00 AM",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Normalize(in), "input %q", in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Mon/Wed/Fri 19:00",
		"wednesday 18:00 - 19:30",
		"SAT,SUN 8:15 am",
		"Thursday 12:00",
		"sun 0:05",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "not idempotent for %q", in)
		assert.True(t, IsCanonical(once), "normalized form %q is not canonical", once)
	}
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("Mon 7:00 AM"))
	assert.True(t, IsCanonical("Mon/Wed/Fri 12:30 PM"))
	assert.False(t, IsCanonical("mon 7:00 am"))
	assert.False(t, IsCanonical("Mon 19:00"))
	assert.False(t, IsCanonical("Mon,Wed 7:00 AM"))
	assert.False(t, IsCanonical(""))
}
