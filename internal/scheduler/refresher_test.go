package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
	"github.com/lbrrrrrr/enjoyyoga/internal/testutils"
)

func TestRefreshOnceBackfillsScheduleData(t *testing.T) {
	db := testutils.TestDB(t)
	logger := zap.NewNop()
	classes := repository.NewClassRepository(db, logger, nil, "test:")
	teachers := repository.NewTeacherRepository(db, logger)
	ctx := context.Background()

	teacher := &models.Teacher{Name: "Maya"}
	require.NoError(t, teachers.Create(ctx, teacher))

	// Imported row: schedule string present, structured form missing.
	class := &models.Class{
		Name:      "Evening Flow",
		TeacherID: teacher.ID,
		Schedule:  "Tue/Thu 6:30 PM",
		Capacity:  12,
	}
	require.NoError(t, classes.Create(ctx, class))

	r := NewRefresher(classes, 0, logger)
	require.NoError(t, r.RefreshOnce(ctx))

	got, err := classes.GetByID(ctx, class.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ScheduleData)
	assert.Equal(t, schedule.KindWeeklyRecurring, got.ScheduleData.Kind)
	assert.Equal(t, []string{"tuesday", "thursday"}, got.ScheduleData.Pattern.Days)
	assert.Equal(t, "18:30", got.ScheduleData.Pattern.Time)

	// Nothing left to refresh.
	stale, err := classes.ListStaleScheduleData(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, stale)
}
