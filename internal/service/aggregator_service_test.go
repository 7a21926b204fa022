package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/internal/upstream"
	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
)

type fakeDashboardAPI struct {
	mu    sync.Mutex
	calls map[string]int

	sessions       []models.Session
	schoolSessions []models.Session
	teachers       []models.Teacher
	enrollments    []models.Enrollment
	school         *models.SchoolInfo
	failing        map[dto.Resource]bool

	addTeacherErr error
	removeErr     error
	scheduleErr   error
	updateErr     error

	lastTeacherForm models.TeacherForm
	lastSessionForm models.SessionForm
}

func (f *fakeDashboardAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeDashboardAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeDashboardAPI) fail(r dto.Resource) error {
	if f.failing[r] {
		return &upstream.Error{Endpoint: string(r), StatusCode: http.StatusInternalServerError}
	}
	return nil
}

func (f *fakeDashboardAPI) MySessions(ctx context.Context, token string) ([]models.Session, error) {
	f.record("my_sessions")
	if err := f.fail(dto.ResourceMySessions); err != nil {
		return nil, err
	}
	return f.sessions, nil
}

func (f *fakeDashboardAPI) SchoolSessions(ctx context.Context, token string) ([]models.Session, error) {
	f.record("school_sessions")
	if err := f.fail(dto.ResourceSchoolSessions); err != nil {
		return nil, err
	}
	return f.schoolSessions, nil
}

func (f *fakeDashboardAPI) Teachers(ctx context.Context, token string) ([]models.Teacher, error) {
	f.record("teachers")
	if err := f.fail(dto.ResourceTeachers); err != nil {
		return nil, err
	}
	return f.teachers, nil
}

func (f *fakeDashboardAPI) Enrollments(ctx context.Context, token string) ([]models.Enrollment, error) {
	f.record("enrollments")
	if err := f.fail(dto.ResourceEnrollments); err != nil {
		return nil, err
	}
	return f.enrollments, nil
}

func (f *fakeDashboardAPI) School(ctx context.Context, token string) (*models.SchoolInfo, error) {
	f.record("dashboard")
	if err := f.fail(dto.ResourceDashboard); err != nil {
		return nil, err
	}
	return f.school, nil
}

func (f *fakeDashboardAPI) AddTeacher(ctx context.Context, token string, form models.TeacherForm) (*models.Teacher, error) {
	f.record("add_teacher")
	f.lastTeacherForm = form
	if f.addTeacherErr != nil {
		return nil, f.addTeacherErr
	}
	return &models.Teacher{
		ID:           "t-new",
		UserDetails:  models.UserDetails{FirstName: form.FirstName, LastName: form.LastName, Email: form.Email},
		CanTeachMale: form.CanTeachMale,
	}, nil
}

func (f *fakeDashboardAPI) RemoveTeacher(ctx context.Context, token string, teacherID models.ID) error {
	f.record("remove_teacher")
	return f.removeErr
}

func (f *fakeDashboardAPI) UpdateSchool(ctx context.Context, token string, schoolID models.ID, form models.SchoolForm) (*models.SchoolInfo, error) {
	f.record("update_school")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.SchoolInfo{ID: schoolID, Name: form.Name, Address: form.Address, State: form.State, Phone: form.Phone, Email: form.Email, Price: form.Price}, nil
}

func (f *fakeDashboardAPI) ScheduleSession(ctx context.Context, token string, form models.SessionForm) (*models.Session, error) {
	f.record("schedule_session")
	f.lastSessionForm = form
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return &models.Session{
		ID:              "ses-new",
		StudentID:       models.ID(form.StudentID),
		TeacherID:       models.ID(form.TeacherID),
		SessionType:     form.SessionType,
		DurationMinutes: form.DurationMinutes,
		Status:          models.SessionStatusScheduled,
	}, nil
}

func seededAPI() *fakeDashboardAPI {
	return &fakeDashboardAPI{
		sessions: []models.Session{
			{ID: "m1", SessionType: models.SessionTypeRoad, Status: models.SessionStatusCompleted},
		},
		schoolSessions: []models.Session{
			{ID: "x1", SessionType: models.SessionTypeTheory},
			{ID: "x2", SessionType: models.SessionTypeTheory},
			{ID: "x3", SessionType: models.SessionTypeRoad},
		},
		teachers: []models.Teacher{
			{ID: "t1", IsApproved: true, CanTeachMale: true, UserDetails: models.UserDetails{FirstName: "Karim", LastName: "B"}},
			{ID: "t2", IsApproved: false, CanTeachFemale: true},
		},
		enrollments: []models.Enrollment{
			{ID: "1", StudentID: "s1", StudentName: "Amina", EnrollmentStatus: models.EnrollmentStatusApproved, DocumentsVerified: true},
			{ID: "2", StudentID: "s2", StudentName: "Yacine", EnrollmentStatus: models.EnrollmentStatusPending},
		},
		school: &models.SchoolInfo{ID: "sch-1", Name: "Atlas", Address: "1 Rue", State: "Oran", Phone: "0550", Email: "atlas@example.com", Rating: 4.5},
	}
}

var testPrincipal = models.Principal{UserID: "mgr-1", Token: "tok"}

func newTestAggregator(api *fakeDashboardAPI) *AggregatorService {
	return NewAggregatorService(AggregatorServiceParams{API: api, Metrics: NewMetricsService()})
}

func confirmAlways(ctx context.Context, prompt string) bool { return true }

func TestRefreshAllPopulatesAndDerives(t *testing.T) {
	svc := newTestAggregator(seededAPI())

	snap, err := svc.RefreshAll(context.Background(), testPrincipal)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusReady, snap.Status)
	assert.Equal(t, int64(1), snap.Version)
	assert.Len(t, snap.Students, 2)
	assert.Equal(t, models.AnalyticsSummary{TotalSessions: 1, CompletedSessions: 1, TotalStudents: 2, TotalTeachers: 2}, snap.Analytics)
	assert.Equal(t, 67, snap.Distribution[models.SessionTypeTheory].Percentage)
	assert.Equal(t, "Atlas", snap.Forms.School.Name)
	assert.Equal(t, 5, snap.Batch.Succeeded)
	assert.Zero(t, snap.Batch.Failed)
}

func TestRefreshAllToleratesPartialFailure(t *testing.T) {
	api := seededAPI()
	api.failing = map[dto.Resource]bool{dto.ResourceTeachers: true, dto.ResourceDashboard: true}
	svc := newTestAggregator(api)

	snap, err := svc.RefreshAll(context.Background(), testPrincipal)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusReady, snap.Status)
	assert.Empty(t, snap.Error)

	assert.NotNil(t, snap.Teachers)
	assert.Empty(t, snap.Teachers)
	assert.Nil(t, snap.School)
	assert.Len(t, snap.Sessions, 1)
	assert.Len(t, snap.SchoolSessions, 3)
	assert.Len(t, snap.Enrollments, 2)

	assert.Equal(t, 3, snap.Batch.Succeeded)
	assert.Equal(t, 2, snap.Batch.Failed)
	assert.False(t, snap.Batch.ResourceOK(dto.ResourceTeachers))
	assert.True(t, snap.Batch.ResourceOK(dto.ResourceEnrollments))
	assert.Zero(t, snap.Analytics.TotalTeachers)
}

func TestRefreshAllDegradedWhenEverythingFails(t *testing.T) {
	api := seededAPI()
	api.failing = map[dto.Resource]bool{}
	for _, r := range dto.BatchResources {
		api.failing[r] = true
	}
	svc := newTestAggregator(api)

	snap, err := svc.RefreshAll(context.Background(), testPrincipal)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusError, snap.Status)
	assert.Equal(t, MsgLoadFailed, snap.Error)
	assert.True(t, snap.Batch.Degraded)
	assert.Empty(t, snap.Students)
}

func TestRefreshAllHonoursCustomPolicy(t *testing.T) {
	api := seededAPI()
	api.failing = map[dto.Resource]bool{dto.ResourceEnrollments: true}
	svc := NewAggregatorService(AggregatorServiceParams{
		API: api,
		Config: AggregatorServiceConfig{Policy: func(r *dto.BatchReport) bool {
			return !r.ResourceOK(dto.ResourceEnrollments)
		}},
	})

	snap, err := svc.RefreshAll(context.Background(), testPrincipal)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusError, snap.Status)
	assert.Len(t, snap.Teachers, 2, "succeeded slices are kept on a degraded batch")
}

func TestRefreshAllDerivesFromFreshBatch(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	_, err := svc.RefreshAll(context.Background(), testPrincipal)
	require.NoError(t, err)

	api.enrollments = append(api.enrollments, models.Enrollment{ID: "3", StudentID: "s3"})
	api.teachers = api.teachers[:1]

	snap, err := svc.RefreshAll(context.Background(), testPrincipal)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Analytics.TotalStudents)
	assert.Equal(t, 1, snap.Analytics.TotalTeachers)
	assert.Equal(t, int64(2), snap.Version)
}

func TestSnapshotRefreshesOnlyOnce(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)

	_, err := svc.Snapshot(context.Background(), testPrincipal)
	require.NoError(t, err)
	_, err = svc.Snapshot(context.Background(), testPrincipal)
	require.NoError(t, err)
	assert.Equal(t, 1, api.count("teachers"))
}

func TestAddTeacherAppendsAndResetsForm(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()

	_, err := svc.UpdateForm(ctx, testPrincipal, models.FormTeacher, "first_name", "Nadia")
	require.NoError(t, err)

	form := models.DefaultTeacherForm()
	form.Email = "nadia@example.com"
	form.FirstName = "Nadia"
	form.LastName = "K"
	form.Phone = "0661"
	form.Password = "secret"

	teacher, err := svc.AddTeacher(ctx, testPrincipal, &form)
	require.NoError(t, err)
	assert.Equal(t, models.ID("t-new"), teacher.ID)

	snap, err := svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	require.Len(t, snap.Teachers, 3)
	assert.Equal(t, models.ID("t-new"), snap.Teachers[2].ID)
	assert.Equal(t, 3, snap.Analytics.TotalTeachers)
	assert.Equal(t, models.DefaultTeacherForm(), snap.Forms.Teacher)
}

func TestAddTeacherUsesStoredFormWhenNil(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()

	for field, value := range map[string]interface{}{
		"email": "sara@example.com", "first_name": "Sara", "last_name": "M", "phone": "0770", "password": "pw",
	} {
		_, err := svc.UpdateForm(ctx, testPrincipal, models.FormTeacher, field, value)
		require.NoError(t, err)
	}

	_, err := svc.AddTeacher(ctx, testPrincipal, nil)
	require.NoError(t, err)
	assert.Equal(t, "sara@example.com", api.lastTeacherForm.Email)
}

func TestSnapshotNeverRendersTeacherPassword(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()

	updated, err := svc.UpdateForm(ctx, testPrincipal, models.FormTeacher, "password", "S3cret!")
	require.NoError(t, err)
	assert.Empty(t, updated.(models.TeacherForm).Password)

	snap, err := svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "S3cret!")

	stored, err := svc.Form(ctx, testPrincipal, models.FormTeacher)
	require.NoError(t, err)
	assert.Empty(t, stored.(models.TeacherForm).Password)

	for field, value := range map[string]interface{}{
		"email": "sara@example.com", "first_name": "Sara", "last_name": "M", "phone": "0770",
	} {
		_, err := svc.UpdateForm(ctx, testPrincipal, models.FormTeacher, field, value)
		require.NoError(t, err)
	}
	_, err = svc.AddTeacher(ctx, testPrincipal, nil)
	require.NoError(t, err)
	assert.Equal(t, "S3cret!", api.lastTeacherForm.Password)
}

func TestAddTeacherRejectsInvalidFormBeforeCall(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)

	form := models.DefaultTeacherForm()
	_, err := svc.AddTeacher(context.Background(), testPrincipal, &form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, api.count("add_teacher"))
}

func TestAddTeacherSurfacesUpstreamDetail(t *testing.T) {
	api := seededAPI()
	api.addTeacherErr = &upstream.Error{Endpoint: "POST /teachers/add", StatusCode: http.StatusBadRequest, Detail: "Email already registered"}
	svc := newTestAggregator(api)

	form := validTeacherForm()
	_, err := svc.AddTeacher(context.Background(), testPrincipal, &form)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "Email already registered", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)

	snap, err := svc.Snapshot(context.Background(), testPrincipal)
	require.NoError(t, err)
	assert.Len(t, snap.Teachers, 2)
}

func TestAddTeacherFallbackMessage(t *testing.T) {
	api := seededAPI()
	api.addTeacherErr = &upstream.Error{Endpoint: "POST /teachers/add", Err: errors.New("connection refused")}
	svc := newTestAggregator(api)

	form := validTeacherForm()
	_, err := svc.AddTeacher(context.Background(), testPrincipal, &form)
	appErr := appErrors.FromError(err)
	assert.Equal(t, MsgAddTeacherFailed, appErr.Message)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestRemoveTeacherWithoutConfirmationMakesNoCall(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()
	_, err := svc.RefreshAll(ctx, testPrincipal)
	require.NoError(t, err)

	var prompted string
	deny := ConfirmFunc(func(ctx context.Context, prompt string) bool {
		prompted = prompt
		return false
	})

	err = svc.RemoveTeacher(ctx, testPrincipal, "t1", deny)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrConfirmationRequired))
	assert.Equal(t, RemoveTeacherPrompt, prompted)

	err = svc.RemoveTeacher(ctx, testPrincipal, "t1", nil)
	assert.True(t, errors.Is(err, appErrors.ErrConfirmationRequired))

	assert.Zero(t, api.count("remove_teacher"))
	snap, err := svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	assert.Len(t, snap.Teachers, 2)
}

func TestRemoveTeacherRemovesByID(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()

	require.NoError(t, svc.RemoveTeacher(ctx, testPrincipal, "t2", ConfirmFunc(confirmAlways)))

	snap, err := svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	require.Len(t, snap.Teachers, 1)
	assert.Equal(t, models.ID("t1"), snap.Teachers[0].ID)
	assert.Equal(t, 1, snap.Analytics.TotalTeachers)
}

func TestRemoveTeacherFailureKeepsCollection(t *testing.T) {
	api := seededAPI()
	api.removeErr = &upstream.Error{Endpoint: "DELETE /teachers/{id}", StatusCode: http.StatusInternalServerError}
	svc := newTestAggregator(api)
	ctx := context.Background()

	err := svc.RemoveTeacher(ctx, testPrincipal, "t1", ConfirmFunc(confirmAlways))
	require.Error(t, err)
	assert.Equal(t, MsgRemoveTeacherFailed, appErrors.FromError(err).Message)

	snap, err := svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	assert.Len(t, snap.Teachers, 2)
}

func TestUpdateSchoolInfoReplacesSingleton(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()

	_, err := svc.UpdateForm(ctx, testPrincipal, models.FormSchool, "name", "Atlas Plus")
	require.NoError(t, err)

	school, err := svc.UpdateSchoolInfo(ctx, testPrincipal, nil)
	require.NoError(t, err)
	assert.Equal(t, "Atlas Plus", school.Name)
	assert.Equal(t, models.ID("sch-1"), school.ID)

	snap, err := svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	assert.Equal(t, "Atlas Plus", snap.School.Name)
	assert.Equal(t, "Atlas Plus", snap.Forms.School.Name)
}

func TestUpdateSchoolInfoRequiresSchool(t *testing.T) {
	api := seededAPI()
	api.school = nil
	svc := newTestAggregator(api)

	_, err := svc.UpdateSchoolInfo(context.Background(), testPrincipal, &models.SchoolForm{Name: "x"})
	assert.True(t, errors.Is(err, appErrors.ErrSchoolNotLoaded))
	assert.Zero(t, api.count("update_school"))
}

func TestUpdateSchoolInfoRejectsUnknownState(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)

	form := models.SchoolFormFrom(api.school)
	form.State = "Atlantis"
	_, err := svc.UpdateSchoolInfo(context.Background(), testPrincipal, &form)
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "state must be one of the 48 wilayas")
	assert.Zero(t, api.count("update_school"))
}

func TestScheduleSessionRejectsLongDurationBeforeCall(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()

	form := validSessionForm()
	form.DurationMinutes = 200
	_, err := svc.ScheduleSession(ctx, testPrincipal, &form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, api.count("schedule_session"))

	snap, err := svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	assert.Len(t, snap.SchoolSessions, 3)
}

func TestScheduleSessionRequiresApprovedEntities(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()

	pendingStudent := validSessionForm()
	pendingStudent.StudentID = "s2"
	_, err := svc.ScheduleSession(ctx, testPrincipal, &pendingStudent)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	unapprovedTeacher := validSessionForm()
	unapprovedTeacher.TeacherID = "t2"
	_, err = svc.ScheduleSession(ctx, testPrincipal, &unapprovedTeacher)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	missingTime := validSessionForm()
	missingTime.ScheduledAt = ""
	_, err = svc.ScheduleSession(ctx, testPrincipal, &missingTime)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	assert.Zero(t, api.count("schedule_session"))
}

func TestScheduleSessionAppendsToSchoolSessions(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()

	before, err := svc.RefreshAll(ctx, testPrincipal)
	require.NoError(t, err)

	form := validSessionForm()
	session, err := svc.ScheduleSession(ctx, testPrincipal, &form)
	require.NoError(t, err)
	assert.Equal(t, models.ID("ses-new"), session.ID)

	after, err := svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	require.Len(t, after.SchoolSessions, 4)
	assert.Equal(t, models.ID("ses-new"), after.SchoolSessions[3].ID)
	assert.Equal(t, 4, after.Distribution[models.SessionTypeTheory].Count+after.Distribution[models.SessionTypeRoad].Count+after.Distribution[models.SessionTypePark].Count)
	assert.Equal(t, models.DefaultSessionForm(), after.Forms.Session)

	assert.Len(t, before.SchoolSessions, 3, "stored snapshots are never mutated")
	assert.Equal(t, before.Version+1, after.Version)
}

func TestUpdateFormRejectsUnknownField(t *testing.T) {
	svc := newTestAggregator(seededAPI())
	_, err := svc.UpdateForm(context.Background(), testPrincipal, models.FormSession, "colour", "red")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.UpdateForm(context.Background(), testPrincipal, models.FormSession, "duration_minutes", 45.5)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestResetFormRestoresDefaults(t *testing.T) {
	svc := newTestAggregator(seededAPI())
	ctx := context.Background()

	updated, err := svc.UpdateForm(ctx, testPrincipal, models.FormSession, "duration_minutes", float64(90))
	require.NoError(t, err)
	assert.Equal(t, 90, updated.(models.SessionForm).DurationMinutes)

	reset, err := svc.ResetForm(ctx, testPrincipal, models.FormSession)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSessionForm(), reset)

	_, err = svc.UpdateForm(ctx, testPrincipal, models.FormSchool, "name", "Other")
	require.NoError(t, err)
	school, err := svc.ResetForm(ctx, testPrincipal, models.FormSchool)
	require.NoError(t, err)
	assert.Equal(t, "Atlas", school.(models.SchoolForm).Name)
}

func TestMutationsAreSerializedPerPrincipal(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()
	_, err := svc.RefreshAll(ctx, testPrincipal)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			form := validSessionForm()
			_, err := svc.ScheduleSession(ctx, testPrincipal, &form)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	assert.Len(t, snap.SchoolSessions, 13)
	assert.Equal(t, int64(11), snap.Version)
}

func TestDiscardDropsSnapshot(t *testing.T) {
	api := seededAPI()
	svc := newTestAggregator(api)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	require.NoError(t, svc.Discard(ctx, testPrincipal))
	_, err = svc.Snapshot(ctx, testPrincipal)
	require.NoError(t, err)
	assert.Equal(t, 2, api.count("teachers"))
}

func validTeacherForm() models.TeacherForm {
	form := models.DefaultTeacherForm()
	form.Email = "nadia@example.com"
	form.FirstName = "Nadia"
	form.LastName = "K"
	form.Phone = "0661"
	form.Password = "secret"
	return form
}

func validSessionForm() models.SessionForm {
	form := models.DefaultSessionForm()
	form.StudentID = "s1"
	form.TeacherID = "t1"
	form.ScheduledAt = "2024-06-01T10:00"
	return form
}
