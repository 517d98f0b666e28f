package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrencesBasic(t *testing.T) {
	rec := monWedFri()
	from := date(2025, time.March, 10) // a Monday

	got := rec.NextOccurrences(from, 6)
	require.Len(t, got, 6)

	wantDates := []string{
		"2025-03-10", "2025-03-12", "2025-03-14",
		"2025-03-17", "2025-03-19", "2025-03-21",
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)

	for i, occ := range got {
		assert.Equal(t, wantDates[i], occ.Format("2006-01-02"))
		assert.Equal(t, "07:00", occ.Format("15:04"))
		assert.Equal(t, loc.String(), occ.Location().String())
		assert.False(t, occ.Before(from))
		assert.Contains(t, rec.Pattern.Days, dayName[occ.Weekday()])
	}
	assert.True(t, sortedAscending(got))
}

func TestNextOccurrencesSkipsExceptions(t *testing.T) {
	rec := monWedFri()
	rec.Exceptions = []string{"2025-03-12"}

	got := rec.NextOccurrences(date(2025, time.March, 10), 3)
	require.Len(t, got, 3)
	for _, occ := range got {
		assert.NotEqual(t, "2025-03-12", occ.Format("2006-01-02"))
	}
	assert.Equal(t, "2025-03-14", got[1].Format("2006-01-02"))
}

func TestNextOccurrencesHonorsEndDate(t *testing.T) {
	rec := monWedFri()
	rec.DateRange.EndDate = strPtr("2025-03-14")

	got := rec.NextOccurrences(date(2025, time.March, 10), 10)
	require.Len(t, got, 3) // Mon 10, Wed 12, Fri 14; scan stops at the safety bound
	assert.Equal(t, "2025-03-14", got[2].Format("2006-01-02"))
}

func TestNextOccurrencesLimit(t *testing.T) {
	rec := monWedFri()
	for _, limit := range []int{0, 1, 5, 25} {
		got := rec.NextOccurrences(date(2025, time.March, 10), limit)
		assert.LessOrEqual(t, len(got), limit)
	}
	assert.Nil(t, rec.NextOccurrences(date(2025, time.March, 10), -1))
}

func TestNextOccurrencesCustomAndEmpty(t *testing.T) {
	assert.Empty(t, Parse("call the studio").NextOccurrences(time.Now(), 5))

	rec := monWedFri()
	rec.Pattern.Days = nil
	assert.Empty(t, rec.NextOccurrences(time.Now(), 5))
}

func TestNextOccurrencesFallbacks(t *testing.T) {
	rec := monWedFri()
	rec.Pattern.Time = "not a time"
	rec.Pattern.Timezone = "Mars/Olympus_Mons"

	got := rec.NextOccurrences(date(2025, time.March, 10), 1)
	require.Len(t, got, 1)
	assert.Equal(t, "09:00", got[0].Format("15:04"), "unparseable time falls back to 09:00")

	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)
	assert.Equal(t, loc.String(), got[0].Location().String(), "unknown zone falls back to the default")
}

func TestNextOccurrencesRespectsStartDate(t *testing.T) {
	rec := monWedFri()
	rec.DateRange.StartDate = strPtr("2025-03-17")

	got := rec.NextOccurrences(date(2025, time.March, 10), 2)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-03-17", got[0].Format("2006-01-02"))
}

func sortedAscending(ts []time.Time) bool {
	for i := 1; i < len(ts); i++ {
		if ts[i].Before(ts[i-1]) {
			return false
		}
	}
	return true
}

func TestDecideStatus(t *testing.T) {
	const capacity = 10

	assert.Equal(t, DecisionConfirmed, DecideStatus(true, 0, capacity))
	assert.Equal(t, DecisionConfirmed, DecideStatus(true, capacity-1, capacity))
	assert.Equal(t, DecisionWaitlist, DecideStatus(true, capacity, capacity))
	assert.Equal(t, DecisionWaitlist, DecideStatus(true, capacity+3, capacity))
	assert.Equal(t, DecisionRejected, DecideStatus(false, 0, capacity))
	assert.Equal(t, DecisionWaitlist, DecideStatus(true, 0, 0), "zero-capacity class waitlists everyone")
}

func TestFriendlyString(t *testing.T) {
	assert.Equal(t, "Mondays at 7:00 AM", FriendlyString(Parse("Monday 7:00 AM")))
	assert.Equal(t, "Monday, Wednesday, and Fridays at 7:00 PM", FriendlyString(Parse("Mon/Wed/Fri 19:00")))
	assert.Equal(t, "every other tuesday maybe", FriendlyString(Parse("Every other Tuesday maybe")))
	assert.Equal(t, "Schedule varies", FriendlyString(Recurrence{Kind: KindCustom}))
	assert.Equal(t, "Schedule not available", FriendlyString(Recurrence{Kind: KindWeeklyRecurring}))
}
