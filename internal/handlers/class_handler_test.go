package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
)

func TestCanonicalSchedule(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		wantDays []string
		wantErr  bool
	}{
		{
			name:     "already canonical",
			input:    "Mon/Wed/Fri 7:00 AM",
			wantText: "Mon/Wed/Fri 7:00 AM",
			wantDays: []string{"monday", "wednesday", "friday"},
		},
		{
			name:     "messy input is normalized",
			input:    "  monday, wednesday 6:30pm  ",
			wantText: "Mon/Wed 6:30 PM",
			wantDays: []string{"monday", "wednesday"},
		},
		{
			name:    "free-form text is rejected",
			input:   "First Sunday of each month",
			wantErr: true,
		},
		{
			name:    "empty schedule is rejected",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, data, err := canonicalSchedule(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidSchedule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
			require.NotNil(t, data)
			assert.Equal(t, schedule.KindWeeklyRecurring, data.Kind)
			assert.Equal(t, tt.wantDays, data.Pattern.Days)
		})
	}
}
