package models

import "strings"

// UserDetails is the profile embedded in teacher records.
type UserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// FullName joins first and last name.
func (u UserDetails) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Teacher is an instructor attached to the manager's school.
type Teacher struct {
	ID             ID          `json:"id"`
	UserID         ID          `json:"user_id,omitempty"`
	UserDetails    UserDetails `json:"user_details"`
	CanTeachMale   bool        `json:"can_teach_male"`
	CanTeachFemale bool        `json:"can_teach_female"`
	Rating         float64     `json:"rating"`
	IsApproved     bool        `json:"is_approved"`
}

// Assignable reports whether sessions may be scheduled with this teacher.
func (t Teacher) Assignable() bool {
	return t.IsApproved && (t.CanTeachMale || t.CanTeachFemale)
}
