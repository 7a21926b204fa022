package dto

import (
	"time"

	"github.com/noah-isme/drivedesk-gateway/internal/models"
)

// SnapshotStatus is the coarse lifecycle of a dashboard snapshot.
type SnapshotStatus string

// Snapshot statuses.
const (
	StatusIdle    SnapshotStatus = "idle"
	StatusLoading SnapshotStatus = "loading"
	StatusReady   SnapshotStatus = "ready"
	StatusError   SnapshotStatus = "error"
)

// Resource names one read of the refresh batch.
type Resource string

// Resources fetched on every refresh.
const (
	ResourceMySessions     Resource = "my_sessions"
	ResourceTeachers       Resource = "teachers"
	ResourceEnrollments    Resource = "enrollments"
	ResourceDashboard      Resource = "dashboard"
	ResourceSchoolSessions Resource = "school_sessions"
)

// BatchResources lists the refresh batch in a stable order.
var BatchResources = []Resource{
	ResourceMySessions,
	ResourceTeachers,
	ResourceEnrollments,
	ResourceDashboard,
	ResourceSchoolSessions,
}

// ResourceResult records how one read of a batch settled.
type ResourceResult struct {
	Resource   Resource `json:"resource"`
	OK         bool     `json:"ok"`
	Error      string   `json:"error,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

// BatchReport summarises a refresh batch.
type BatchReport struct {
	Results     []ResourceResult `json:"results"`
	Succeeded   int              `json:"succeeded"`
	Failed      int              `json:"failed"`
	Degraded    bool             `json:"degraded"`
	CompletedAt time.Time        `json:"completed_at"`
}

// ResourceOK reports whether r settled successfully in the batch.
func (b *BatchReport) ResourceOK(r Resource) bool {
	if b == nil {
		return false
	}
	for _, res := range b.Results {
		if res.Resource == r {
			return res.OK
		}
	}
	return false
}

// Snapshot is the aggregate view state handed to the renderer. Values are
// never mutated after being stored; transitions build a new Snapshot.
type Snapshot struct {
	Version        int64                      `json:"version"`
	Status         SnapshotStatus             `json:"status"`
	Error          string                     `json:"error,omitempty"`
	Sessions       []models.Session           `json:"sessions"`
	SchoolSessions []models.Session           `json:"school_sessions"`
	Teachers       []models.Teacher           `json:"teachers"`
	Enrollments    []models.Enrollment        `json:"enrollments"`
	Students       []models.Student           `json:"students"`
	School         *models.SchoolInfo         `json:"school,omitempty"`
	Analytics      models.AnalyticsSummary    `json:"analytics"`
	Distribution   models.Distribution        `json:"distribution"`
	Breakdown      models.EnrollmentBreakdown `json:"breakdown"`
	Forms          models.Forms               `json:"forms"`
	Batch          *BatchReport               `json:"batch,omitempty"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}
