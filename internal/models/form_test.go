package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFormWithIsPure(t *testing.T) {
	original := DefaultSessionForm()
	updated, err := original.With("duration_minutes", float64(90))
	require.NoError(t, err)

	assert.Equal(t, 60, original.DurationMinutes)
	assert.Equal(t, 90, updated.DurationMinutes)
}

func TestSessionFormWithRejectsFraction(t *testing.T) {
	_, err := DefaultSessionForm().With("duration_minutes", 45.5)
	assert.Error(t, err)
}

func TestTeacherFormWithCoercesStrings(t *testing.T) {
	form, err := DefaultTeacherForm().With("can_teach_female", "false")
	require.NoError(t, err)
	assert.False(t, form.CanTeachFemale)
	assert.True(t, form.CanTeachMale)

	_, err = form.With("salary", "1")
	assert.Error(t, err)
}

func TestSchoolFormFromPrefills(t *testing.T) {
	school := &SchoolInfo{ID: "sch-1", Name: "Auto École Atlas", State: "Oran", Price: 35000}
	form := SchoolFormFrom(school)
	assert.Equal(t, "Auto École Atlas", form.Name)
	assert.Equal(t, "Oran", form.State)
	assert.Equal(t, 35000.0, form.Price)
	assert.Equal(t, SchoolForm{}, SchoolFormFrom(nil))
}

func TestParseFormKind(t *testing.T) {
	kind, ok := ParseFormKind(" Session ")
	assert.True(t, ok)
	assert.Equal(t, FormSession, kind)
	_, ok = ParseFormKind("student")
	assert.False(t, ok)
}

func TestFormsJSONOmitsTeacherPassword(t *testing.T) {
	forms := DefaultForms(nil)
	forms.Teacher.Password = "S3cret!"

	raw, err := json.Marshal(forms)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "S3cret!")
	assert.NotContains(t, string(raw), `"password"`)
	assert.Equal(t, "S3cret!", forms.Teacher.Password)

	body, err := json.Marshal(forms.Teacher)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"password":"S3cret!"`)
}
