package models

// AnalyticsSummary is derived from the collections of a single snapshot.
type AnalyticsSummary struct {
	TotalSessions     int `json:"total_sessions"`
	CompletedSessions int `json:"completed_sessions"`
	TotalStudents     int `json:"total_students"`
	TotalTeachers     int `json:"total_teachers"`
}

// DistributionEntry is one category of a distribution. Percentage is rounded
// half away from zero to a whole number.
type DistributionEntry struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// Distribution maps a session type to its share of the total.
type Distribution map[SessionType]DistributionEntry

// EnrollmentBreakdown feeds the performance overview of the analytics tab.
type EnrollmentBreakdown struct {
	ApprovedStudents  int `json:"approved_students"`
	PendingStudents   int `json:"pending_students"`
	DocumentsVerified int `json:"documents_verified"`
	ApprovedTeachers  int `json:"approved_teachers"`
}
