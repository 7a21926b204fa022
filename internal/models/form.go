package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormKind names one of the dashboard's modal forms.
type FormKind string

// Form kinds.
const (
	FormTeacher FormKind = "teacher"
	FormSchool  FormKind = "school"
	FormSession FormKind = "session"
)

// ParseFormKind validates raw against the known kinds.
func ParseFormKind(raw string) (FormKind, bool) {
	switch kind := FormKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case FormTeacher, FormSchool, FormSession:
		return kind, true
	}
	return "", false
}

// TeacherForm is the add-teacher payload.
type TeacherForm struct {
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Address        string `json:"address"`
	DateOfBirth    string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"required,oneof=male female"`
	Password       string `json:"password,omitempty" validate:"required"`
	CanTeachMale   bool   `json:"can_teach_male"`
	CanTeachFemale bool   `json:"can_teach_female"`
}

// DefaultTeacherForm is the blank add-teacher form.
func DefaultTeacherForm() TeacherForm {
	return TeacherForm{Gender: "male", CanTeachMale: true, CanTeachFemale: true}
}

// Redacted returns f without its password. Rendered and shared copies of the
// form always go through it.
func (f TeacherForm) Redacted() TeacherForm {
	f.Password = ""
	return f
}

// With returns a copy of f with field set to value.
func (f TeacherForm) With(field string, value interface{}) (TeacherForm, error) {
	var err error
	switch field {
	case "email":
		f.Email, err = asString(value)
	case "first_name":
		f.FirstName, err = asString(value)
	case "last_name":
		f.LastName, err = asString(value)
	case "phone":
		f.Phone, err = asString(value)
	case "address":
		f.Address, err = asString(value)
	case "date_of_birth":
		f.DateOfBirth, err = asString(value)
	case "gender":
		f.Gender, err = asString(value)
	case "password":
		f.Password, err = asString(value)
	case "can_teach_male":
		f.CanTeachMale, err = asBool(value)
	case "can_teach_female":
		f.CanTeachFemale, err = asBool(value)
	default:
		return f, unknownField(FormTeacher, field)
	}
	return f, fieldError(field, err)
}

// SchoolForm is the edit-school payload.
type SchoolForm struct {
	Name        string  `json:"name" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	State       string  `json:"state" validate:"required,wilaya"`
	Phone       string  `json:"phone" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// SchoolFormFrom prefills the edit form from the loaded school; nil yields a blank form.
func SchoolFormFrom(school *SchoolInfo) SchoolForm {
	if school == nil {
		return SchoolForm{}
	}
	return SchoolForm{
		Name:        school.Name,
		Address:     school.Address,
		State:       school.State,
		Phone:       school.Phone,
		Email:       school.Email,
		Description: school.Description,
		Price:       school.Price,
	}
}

// With returns a copy of f with field set to value.
func (f SchoolForm) With(field string, value interface{}) (SchoolForm, error) {
	var err error
	switch field {
	case "name":
		f.Name, err = asString(value)
	case "address":
		f.Address, err = asString(value)
	case "state":
		f.State, err = asString(value)
	case "phone":
		f.Phone, err = asString(value)
	case "email":
		f.Email, err = asString(value)
	case "description":
		f.Description, err = asString(value)
	case "price":
		f.Price, err = asFloat(value)
	default:
		return f, unknownField(FormSchool, field)
	}
	return f, fieldError(field, err)
}

// SessionForm is the schedule-session payload.
type SessionForm struct {
	StudentID       string      `json:"student_id" validate:"required"`
	TeacherID       string      `json:"teacher_id" validate:"required"`
	SessionType     SessionType `json:"session_type" validate:"required,oneof=theory park road"`
	ScheduledAt     string      `json:"scheduled_at" validate:"required"`
	DurationMinutes int         `json:"duration_minutes" validate:"min=30,max=180"`
	Location        string      `json:"location"`
}

// DefaultSessionForm is the blank schedule form.
func DefaultSessionForm() SessionForm {
	return SessionForm{SessionType: SessionTypeTheory, DurationMinutes: 60}
}

// With returns a copy of f with field set to value.
func (f SessionForm) With(field string, value interface{}) (SessionForm, error) {
	var err error
	switch field {
	case "student_id":
		f.StudentID, err = asString(value)
	case "teacher_id":
		f.TeacherID, err = asString(value)
	case "session_type":
		var s string
		s, err = asString(value)
		f.SessionType = SessionType(s)
	case "scheduled_at":
		f.ScheduledAt, err = asString(value)
	case "duration_minutes":
		f.DurationMinutes, err = asInt(value)
	case "location":
		f.Location, err = asString(value)
	default:
		return f, unknownField(FormSession, field)
	}
	return f, fieldError(field, err)
}

// Forms groups the three form records held by a snapshot.
type Forms struct {
	Teacher TeacherForm `json:"teacher"`
	School  SchoolForm  `json:"school"`
	Session SessionForm `json:"session"`
}

// MarshalJSON renders the forms with the teacher password removed, so neither
// API responses nor cached snapshots carry it.
func (f Forms) MarshalJSON() ([]byte, error) {
	type plain Forms
	out := plain(f)
	out.Teacher = f.Teacher.Redacted()
	return json.Marshal(out)
}

// DefaultForms returns every form at its default, with the school form prefilled.
func DefaultForms(school *SchoolInfo) Forms {
	return Forms{
		Teacher: DefaultTeacherForm(),
		School:  SchoolFormFrom(school),
		Session: DefaultSessionForm(),
	}
}

func unknownField(kind FormKind, field string) error {
	return fmt.Errorf("unknown %s form field %q", kind, field)
}

func fieldError(field string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("field %q: %w", field, err)
}

func asString(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	}
	return "", fmt.Errorf("expected string, got %T", value)
}

func asBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	}
	return false, fmt.Errorf("expected boolean, got %T", value)
}

func asFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, nil
		}
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	return 0, fmt.Errorf("expected number, got %T", value)
}

func asInt(value interface{}) (int, error) {
	f, err := asFloat(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected whole number, got %v", f)
	}
	return int(f), nil
}
