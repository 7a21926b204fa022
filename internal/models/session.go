package models

// SessionType is the lesson category.
type SessionType string

// Session types offered by driving schools.
const (
	SessionTypeTheory SessionType = "theory"
	SessionTypePark   SessionType = "park"
	SessionTypeRoad   SessionType = "road"
)

// SessionTypes lists the distribution categories in display order.
var SessionTypes = []SessionType{SessionTypeTheory, SessionTypePark, SessionTypeRoad}

// SessionStatus is driven by the backend; the gateway never transitions it.
type SessionStatus string

// Session statuses.
const (
	SessionStatusScheduled  SessionStatus = "scheduled"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
)

// Session is a scheduled lesson between a student and a teacher.
type Session struct {
	ID              ID            `json:"id"`
	StudentID       ID            `json:"student_id"`
	TeacherID       ID            `json:"teacher_id"`
	StudentName     string        `json:"student_name,omitempty"`
	TeacherName     string        `json:"teacher_name,omitempty"`
	SessionType     SessionType   `json:"session_type"`
	ScheduledAt     Timestamp     `json:"scheduled_at"`
	DurationMinutes int           `json:"duration_minutes"`
	Location        *string       `json:"location,omitempty"`
	Status          SessionStatus `json:"status"`
}
