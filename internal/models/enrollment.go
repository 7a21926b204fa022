package models

// EnrollmentStatus represents the approval lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusPending  EnrollmentStatus = "pending_approval"
	EnrollmentStatusApproved EnrollmentStatus = "approved"
	EnrollmentStatusRejected EnrollmentStatus = "rejected"
)

// Enrollment is a student's registration with the school, carrying a
// denormalised copy of the student profile.
type Enrollment struct {
	ID                ID               `json:"id"`
	StudentID         ID               `json:"student_id"`
	StudentName       string           `json:"student_name"`
	StudentEmail      string           `json:"student_email"`
	StudentPhone      string           `json:"student_phone"`
	EnrollmentStatus  EnrollmentStatus `json:"enrollment_status"`
	DocumentsVerified bool             `json:"documents_verified"`
}

// Student is the view projected from exactly one Enrollment.
type Student struct {
	ID                ID               `json:"id"`
	Name              string           `json:"name"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	EnrollmentID      ID               `json:"enrollment_id"`
	EnrollmentStatus  EnrollmentStatus `json:"enrollment_status"`
	DocumentsVerified bool             `json:"documents_verified"`
}
