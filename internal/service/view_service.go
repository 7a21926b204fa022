package service

import (
	"context"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
)

type snapshotReader interface {
	Snapshot(ctx context.Context, p models.Principal) (*dto.Snapshot, error)
}

// ViewService projects the snapshot into the tab-switched views.
type ViewService struct {
	snapshots   snapshotReader
	recentLimit int
}

// NewViewService constructs a ViewService.
func NewViewService(snapshots snapshotReader, recentLimit int) *ViewService {
	if recentLimit <= 0 {
		recentLimit = defaultRecentSessionCap
	}
	return &ViewService{snapshots: snapshots, recentLimit: recentLimit}
}

// ParseTab validates a tab name.
func ParseTab(raw string) (dto.Tab, error) {
	for _, tab := range dto.Tabs {
		if string(tab) == raw {
			return tab, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrNotFound, "unknown dashboard tab")
}

// View renders tab from the principal's snapshot.
func (s *ViewService) View(ctx context.Context, p models.Principal, tab dto.Tab) (interface{}, error) {
	snap, err := s.snapshots.Snapshot(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.Render(snap, tab)
}

// Distribution returns the ordered session type distribution.
func (s *ViewService) Distribution(ctx context.Context, p models.Principal) ([]dto.DistributionRow, error) {
	snap, err := s.snapshots.Snapshot(ctx, p)
	if err != nil {
		return nil, err
	}
	return DistributionRows(snap.Distribution, models.SessionTypes), nil
}

// Render projects snap into the view of tab.
func (s *ViewService) Render(snap *dto.Snapshot, tab dto.Tab) (interface{}, error) {
	meta := dto.ViewMeta{Tab: tab, Status: snap.Status, Error: snap.Error, Version: snap.Version}

	switch tab {
	case dto.TabOverview:
		view := dto.OverviewView{
			ViewMeta:       meta,
			TotalTeachers:  len(snap.Teachers),
			TotalStudents:  len(snap.Students),
			TotalSessions:  len(snap.SchoolSessions),
			RecentSessions: RecentSessions(snap.SchoolSessions, s.recentLimit),
			Analytics:      snap.Analytics,
		}
		if snap.School != nil {
			view.SchoolRating = snap.School.Rating
		}
		return view, nil
	case dto.TabTeachers:
		return dto.TeachersView{
			ViewMeta: meta,
			Teachers: snap.Teachers,
			Total:    len(snap.Teachers),
			Approved: snap.Breakdown.ApprovedTeachers,
		}, nil
	case dto.TabStudents:
		return dto.StudentsView{
			ViewMeta:           meta,
			Students:           snap.Students,
			Total:              len(snap.Students),
			AssignableTeachers: AssignableTeachers(snap.Teachers),
		}, nil
	case dto.TabSchoolInfo:
		view := dto.SchoolInfoView{
			ViewMeta:      meta,
			School:        snap.School,
			TotalTeachers: len(snap.Teachers),
			TotalStudents: len(snap.Students),
		}
		if snap.School != nil {
			view.Rating = snap.School.Rating
			view.TotalReviews = snap.School.TotalReviews
		}
		return view, nil
	case dto.TabAnalytics:
		return dto.AnalyticsView{
			ViewMeta:      meta,
			Summary:       snap.Analytics,
			TotalSessions: len(snap.SchoolSessions),
			Distribution:  DistributionRows(snap.Distribution, models.SessionTypes),
			Breakdown:     snap.Breakdown,
		}, nil
	case dto.TabSchedules:
		return dto.SchedulesView{
			ViewMeta:           meta,
			Sessions:           snap.SchoolSessions,
			Total:              len(snap.SchoolSessions),
			ApprovedStudents:   ApprovedStudents(snap.Students),
			AssignableTeachers: AssignableTeachers(snap.Teachers),
		}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown dashboard tab")
}
