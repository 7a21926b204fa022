package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
)

func TestViewServiceRendersEveryTab(t *testing.T) {
	agg := newTestAggregator(seededAPI())
	views := NewViewService(agg, 2)
	ctx := context.Background()

	for _, tab := range dto.Tabs {
		view, err := views.View(ctx, testPrincipal, tab)
		require.NoError(t, err, tab)
		require.NotNil(t, view, tab)
	}

	overview, err := views.View(ctx, testPrincipal, dto.TabOverview)
	require.NoError(t, err)
	o := overview.(dto.OverviewView)
	assert.Equal(t, 2, o.TotalTeachers)
	assert.Equal(t, 3, o.TotalSessions)
	assert.Len(t, o.RecentSessions, 2)
	assert.Equal(t, 4.5, o.SchoolRating)

	schedules, err := views.View(ctx, testPrincipal, dto.TabSchedules)
	require.NoError(t, err)
	s := schedules.(dto.SchedulesView)
	require.Len(t, s.ApprovedStudents, 1)
	assert.Equal(t, models.ID("s1"), s.ApprovedStudents[0].ID)
	require.Len(t, s.AssignableTeachers, 1)
	assert.Equal(t, models.ID("t1"), s.AssignableTeachers[0].ID)
}

func TestViewServiceDistributionOrder(t *testing.T) {
	views := NewViewService(newTestAggregator(seededAPI()), 0)

	rows, err := views.Distribution(context.Background(), testPrincipal)
	require.NoError(t, err)
	assert.Equal(t, []dto.DistributionRow{
		{SessionType: models.SessionTypeTheory, Count: 2, Percentage: 67},
		{SessionType: models.SessionTypePark, Count: 0, Percentage: 0},
		{SessionType: models.SessionTypeRoad, Count: 1, Percentage: 33},
	}, rows)
}

func TestSchoolInfoViewWithoutSchool(t *testing.T) {
	api := seededAPI()
	api.school = nil
	views := NewViewService(newTestAggregator(api), 0)

	view, err := views.View(context.Background(), testPrincipal, dto.TabSchoolInfo)
	require.NoError(t, err)
	info := view.(dto.SchoolInfoView)
	assert.Nil(t, info.School)
	assert.Zero(t, info.Rating)
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("school-info")
	require.NoError(t, err)
	assert.Equal(t, dto.TabSchoolInfo, tab)

	_, err = ParseTab("billing")
	assert.Error(t, err)
}
