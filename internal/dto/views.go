package dto

import "github.com/noah-isme/drivedesk-gateway/internal/models"

// Tab names a dashboard view.
type Tab string

// Dashboard tabs.
const (
	TabOverview   Tab = "overview"
	TabTeachers   Tab = "teachers"
	TabStudents   Tab = "students"
	TabSchoolInfo Tab = "school-info"
	TabAnalytics  Tab = "analytics"
	TabSchedules  Tab = "schedules"
)

// Tabs lists every tab in navigation order.
var Tabs = []Tab{TabOverview, TabTeachers, TabStudents, TabSchoolInfo, TabAnalytics, TabSchedules}

// ViewMeta is attached to every tab view.
type ViewMeta struct {
	Tab     Tab            `json:"tab"`
	Status  SnapshotStatus `json:"status"`
	Error   string         `json:"error,omitempty"`
	Version int64          `json:"version"`
}

// OverviewView backs the overview tab.
type OverviewView struct {
	ViewMeta
	TotalTeachers  int                     `json:"total_teachers"`
	TotalStudents  int                     `json:"total_students"`
	TotalSessions  int                     `json:"total_sessions"`
	SchoolRating   float64                 `json:"school_rating"`
	RecentSessions []models.Session        `json:"recent_sessions"`
	Analytics      models.AnalyticsSummary `json:"analytics"`
}

// TeachersView backs the teacher management tab.
type TeachersView struct {
	ViewMeta
	Teachers []models.Teacher `json:"teachers"`
	Total    int              `json:"total"`
	Approved int              `json:"approved"`
}

// StudentsView backs the student management tab.
type StudentsView struct {
	ViewMeta
	Students           []models.Student `json:"students"`
	Total              int              `json:"total"`
	AssignableTeachers []models.Teacher `json:"assignable_teachers"`
}

// SchoolInfoView backs the school info tab. School is nil when none is in scope.
type SchoolInfoView struct {
	ViewMeta
	School        *models.SchoolInfo `json:"school"`
	Rating        float64            `json:"rating"`
	TotalReviews  int                `json:"total_reviews"`
	TotalTeachers int                `json:"total_teachers"`
	TotalStudents int                `json:"total_students"`
}

// DistributionRow is one ordered entry of a distribution.
type DistributionRow struct {
	SessionType models.SessionType `json:"session_type"`
	Count       int                `json:"count"`
	Percentage  int                `json:"percentage"`
}

// AnalyticsView backs the analytics tab.
type AnalyticsView struct {
	ViewMeta
	Summary       models.AnalyticsSummary    `json:"summary"`
	TotalSessions int                        `json:"total_sessions"`
	Distribution  []DistributionRow          `json:"distribution"`
	Breakdown     models.EnrollmentBreakdown `json:"breakdown"`
}

// SchedulesView backs the schedules tab and the schedule-session pickers.
type SchedulesView struct {
	ViewMeta
	Sessions           []models.Session `json:"sessions"`
	Total              int              `json:"total"`
	ApprovedStudents   []models.Student `json:"approved_students"`
	AssignableTeachers []models.Teacher `json:"assignable_teachers"`
}
