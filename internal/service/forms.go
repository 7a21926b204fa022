package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
)

// FormValidator gates mutation payloads before they reach the backend. The
// backend remains the source of truth; these checks only reject forms that
// can never succeed.
type FormValidator struct {
	validator *validator.Validate
}

// NewFormValidator registers the dashboard's custom tags on validate.
func NewFormValidator(validate *validator.Validate) *FormValidator {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	validate.RegisterValidation("wilaya", func(fl validator.FieldLevel) bool {
		return models.IsKnownState(fl.Field().String())
	})
	return &FormValidator{validator: validate}
}

// Teacher validates the add-teacher form.
func (v *FormValidator) Teacher(form models.TeacherForm) error {
	if err := v.validator.Struct(form); err != nil {
		return validationError("invalid teacher form", err)
	}
	if !form.CanTeachMale && !form.CanTeachFemale {
		return appErrors.Clone(appErrors.ErrValidation, "invalid teacher form: teacher must be able to teach male or female students")
	}
	return nil
}

// School validates the edit-school form.
func (v *FormValidator) School(form models.SchoolForm) error {
	if err := v.validator.Struct(form); err != nil {
		return validationError("invalid school form", err)
	}
	return nil
}

// Session validates the schedule form against the snapshot it will be booked
// into: the student must hold an approved enrollment and the teacher must be
// assignable.
func (v *FormValidator) Session(form models.SessionForm, snap *dto.Snapshot) error {
	if err := v.validator.Struct(form); err != nil {
		return validationError("invalid session form", err)
	}
	if _, err := models.ParseTimestamp(form.ScheduledAt); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid session form: scheduled_at is not a valid date and time")
	}
	if snap == nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid session form: dashboard data is not loaded")
	}

	studentOK := false
	for _, s := range ApprovedStudents(snap.Students) {
		if s.ID.String() == form.StudentID {
			studentOK = true
			break
		}
	}
	if !studentOK {
		return appErrors.Clone(appErrors.ErrValidation, "invalid session form: student is not an approved student of this school")
	}

	teacherOK := false
	for _, t := range AssignableTeachers(snap.Teachers) {
		if t.ID.String() == form.TeacherID {
			teacherOK = true
			break
		}
	}
	if !teacherOK {
		return appErrors.Clone(appErrors.ErrValidation, "invalid session form: teacher is not an approved, assignable teacher")
	}
	return nil
}

func validationError(prefix string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, prefix)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeField(fe))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
		fmt.Sprintf("%s: %s", prefix, strings.Join(msgs, "; ")))
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must not be below %s", fe.Field(), fe.Param())
	case "wilaya":
		return fe.Field() + " must be one of the 48 wilayas"
	case "datetime":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
