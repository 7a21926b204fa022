package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/internal/upstream"
	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
)

// Messages surfaced when the backend gives no detail.
const (
	MsgLoadFailed           = "Failed to load dashboard data"
	MsgAddTeacherFailed     = "Failed to add teacher"
	MsgRemoveTeacherFailed  = "Failed to remove teacher"
	MsgUpdateSchoolFailed   = "Failed to update school information"
	MsgScheduleFailed       = "Failed to schedule session"
	RemoveTeacherPrompt     = "Are you sure you want to remove this teacher?"
	defaultRecentSessionCap = 5
)

type dashboardAPI interface {
	MySessions(ctx context.Context, token string) ([]models.Session, error)
	SchoolSessions(ctx context.Context, token string) ([]models.Session, error)
	Teachers(ctx context.Context, token string) ([]models.Teacher, error)
	Enrollments(ctx context.Context, token string) ([]models.Enrollment, error)
	School(ctx context.Context, token string) (*models.SchoolInfo, error)
	AddTeacher(ctx context.Context, token string, form models.TeacherForm) (*models.Teacher, error)
	RemoveTeacher(ctx context.Context, token string, teacherID models.ID) error
	UpdateSchool(ctx context.Context, token string, schoolID models.ID, form models.SchoolForm) (*models.SchoolInfo, error)
	ScheduleSession(ctx context.Context, token string, form models.SessionForm) (*models.Session, error)
}

// BatchPolicy reports whether a settled refresh batch counts as degraded.
type BatchPolicy func(report *dto.BatchReport) bool

// ZeroSuccessPolicy degrades a batch only when every read failed.
func ZeroSuccessPolicy(report *dto.BatchReport) bool {
	return report.Succeeded == 0
}

// Confirmer approves destructive actions.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	if f == nil {
		return false
	}
	return f(ctx, prompt)
}

// AggregatorServiceConfig tunes the aggregator.
type AggregatorServiceConfig struct {
	Policy              BatchPolicy
	RecentSessionsLimit int
}

// AggregatorServiceParams groups constructor dependencies.
type AggregatorServiceParams struct {
	API       dashboardAPI
	Store     SnapshotStore
	Validator *FormValidator
	Metrics   *MetricsService
	Logger    *zap.Logger
	Config    AggregatorServiceConfig
}

// AggregatorService owns the dashboard snapshot of every principal. It fans
// the refresh batch out to the backend, derives view models from the settled
// batch and reconciles the snapshot after each mutation.
type AggregatorService struct {
	api       dashboardAPI
	store     SnapshotStore
	validator *FormValidator
	metrics   *MetricsService
	logger    *zap.Logger
	policy    BatchPolicy
	cfg       AggregatorServiceConfig
	locks     *principalLocks
	now       func() time.Time
}

// NewAggregatorService constructs the aggregator.
func NewAggregatorService(params AggregatorServiceParams) *AggregatorService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := params.Store
	if store == nil {
		store = NewMemorySnapshotStore(0, params.Metrics)
	}
	validator := params.Validator
	if validator == nil {
		validator = NewFormValidator(nil)
	}
	cfg := params.Config
	if cfg.Policy == nil {
		cfg.Policy = ZeroSuccessPolicy
	}
	if cfg.RecentSessionsLimit <= 0 {
		cfg.RecentSessionsLimit = defaultRecentSessionCap
	}
	return &AggregatorService{
		api:       params.API,
		store:     store,
		validator: validator,
		metrics:   params.Metrics,
		logger:    logger,
		policy:    cfg.Policy,
		cfg:       cfg,
		locks:     newPrincipalLocks(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RecentSessionsLimit is the number of sessions shown on the overview.
func (s *AggregatorService) RecentSessionsLimit() int {
	return s.cfg.RecentSessionsLimit
}

// RefreshAll re-reads every resource of the batch and stores the resulting
// snapshot. Individual read failures never fail the call.
func (s *AggregatorService) RefreshAll(ctx context.Context, p models.Principal) (*dto.Snapshot, error) {
	unlock := s.locks.lock(p.UserID)
	defer unlock()
	return s.refreshLocked(ctx, p)
}

// Snapshot returns the stored snapshot, refreshing when none exists yet.
func (s *AggregatorService) Snapshot(ctx context.Context, p models.Principal) (*dto.Snapshot, error) {
	snap, ok, err := s.store.Load(ctx, p.UserID)
	if err != nil {
		s.logger.Warn("snapshot load failed", zap.String("principal", p.UserID), zap.Error(err))
	}
	if ok {
		return snap, nil
	}
	return s.RefreshAll(ctx, p)
}

// Discard drops the principal's snapshot.
func (s *AggregatorService) Discard(ctx context.Context, p models.Principal) error {
	unlock := s.locks.lock(p.UserID)
	defer unlock()
	if err := s.store.Delete(ctx, p.UserID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to discard dashboard snapshot")
	}
	return nil
}

// AddTeacher creates a teacher from form, or from the stored form when nil.
func (s *AggregatorService) AddTeacher(ctx context.Context, p models.Principal, form *models.TeacherForm) (teacher *models.Teacher, err error) {
	defer func() { s.metrics.ObserveMutation("add_teacher", err) }()

	unlock := s.locks.lock(p.UserID)
	defer unlock()

	snap, err := s.ensureLocked(ctx, p)
	if err != nil {
		return nil, err
	}
	submitted := snap.Forms.Teacher
	if form != nil {
		submitted = *form
	}
	if err := s.validator.Teacher(submitted); err != nil {
		return nil, err
	}

	created, err := s.api.AddTeacher(ctx, p.Token, submitted)
	if err != nil {
		return nil, s.mutationError("add teacher", err, MsgAddTeacherFailed)
	}

	next := s.applyMutation(snap, func(n *dto.Snapshot) {
		n.Teachers = appendCopy(n.Teachers, *created)
		n.Forms.Teacher = models.DefaultTeacherForm()
	})
	if err := s.save(ctx, p, next); err != nil {
		return nil, err
	}
	return created, nil
}

// RemoveTeacher deletes a teacher once confirmer approves RemoveTeacherPrompt.
// Without approval no backend call is made.
func (s *AggregatorService) RemoveTeacher(ctx context.Context, p models.Principal, teacherID models.ID, confirmer Confirmer) (err error) {
	defer func() { s.metrics.ObserveMutation("remove_teacher", err) }()

	if confirmer == nil || !confirmer.Confirm(ctx, RemoveTeacherPrompt) {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, RemoveTeacherPrompt)
	}
	if teacherID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "teacher id is required")
	}

	unlock := s.locks.lock(p.UserID)
	defer unlock()

	snap, err := s.ensureLocked(ctx, p)
	if err != nil {
		return err
	}
	if err := s.api.RemoveTeacher(ctx, p.Token, teacherID); err != nil {
		return s.mutationError("remove teacher", err, MsgRemoveTeacherFailed)
	}

	next := s.applyMutation(snap, func(n *dto.Snapshot) {
		kept := make([]models.Teacher, 0, len(n.Teachers))
		for _, t := range n.Teachers {
			if t.ID != teacherID {
				kept = append(kept, t)
			}
		}
		n.Teachers = kept
	})
	return s.save(ctx, p, next)
}

// UpdateSchoolInfo replaces the school record in scope.
func (s *AggregatorService) UpdateSchoolInfo(ctx context.Context, p models.Principal, form *models.SchoolForm) (school *models.SchoolInfo, err error) {
	defer func() { s.metrics.ObserveMutation("update_school", err) }()

	unlock := s.locks.lock(p.UserID)
	defer unlock()

	snap, err := s.ensureLocked(ctx, p)
	if err != nil {
		return nil, err
	}
	if snap.School == nil {
		return nil, appErrors.ErrSchoolNotLoaded
	}
	submitted := snap.Forms.School
	if form != nil {
		submitted = *form
	}
	if err := s.validator.School(submitted); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateSchool(ctx, p.Token, snap.School.ID, submitted)
	if err != nil {
		return nil, s.mutationError("update school", err, MsgUpdateSchoolFailed)
	}

	next := s.applyMutation(snap, func(n *dto.Snapshot) {
		n.School = updated
		n.Forms.School = models.SchoolFormFrom(updated)
	})
	if err := s.save(ctx, p, next); err != nil {
		return nil, err
	}
	return updated, nil
}

// ScheduleSession books a session between an approved student and an
// assignable teacher of the snapshot.
func (s *AggregatorService) ScheduleSession(ctx context.Context, p models.Principal, form *models.SessionForm) (session *models.Session, err error) {
	defer func() { s.metrics.ObserveMutation("schedule_session", err) }()

	unlock := s.locks.lock(p.UserID)
	defer unlock()

	snap, err := s.ensureLocked(ctx, p)
	if err != nil {
		return nil, err
	}
	submitted := snap.Forms.Session
	if form != nil {
		submitted = *form
	}
	if err := s.validator.Session(submitted, snap); err != nil {
		return nil, err
	}

	created, err := s.api.ScheduleSession(ctx, p.Token, submitted)
	if err != nil {
		return nil, s.mutationError("schedule session", err, MsgScheduleFailed)
	}

	next := s.applyMutation(snap, func(n *dto.Snapshot) {
		n.SchoolSessions = appendCopy(n.SchoolSessions, *created)
		n.Forms.Session = models.DefaultSessionForm()
	})
	if err := s.save(ctx, p, next); err != nil {
		return nil, err
	}
	return created, nil
}

// Form returns the stored record of kind.
func (s *AggregatorService) Form(ctx context.Context, p models.Principal, kind models.FormKind) (interface{}, error) {
	snap, err := s.Snapshot(ctx, p)
	if err != nil {
		return nil, err
	}
	return formOf(snap.Forms, kind)
}

// UpdateForm sets one field of the stored form of kind and returns the new record.
func (s *AggregatorService) UpdateForm(ctx context.Context, p models.Principal, kind models.FormKind, field string, value interface{}) (interface{}, error) {
	unlock := s.locks.lock(p.UserID)
	defer unlock()

	snap, err := s.ensureLocked(ctx, p)
	if err != nil {
		return nil, err
	}

	forms := snap.Forms
	switch kind {
	case models.FormTeacher:
		forms.Teacher, err = forms.Teacher.With(field, value)
	case models.FormSchool:
		forms.School, err = forms.School.With(field, value)
	case models.FormSession:
		forms.Session, err = forms.Session.With(field, value)
	default:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown form")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	next := s.applyMutation(snap, func(n *dto.Snapshot) { n.Forms = forms })
	if err := s.save(ctx, p, next); err != nil {
		return nil, err
	}
	return formOf(next.Forms, kind)
}

// ResetForm restores the default record of kind. The school form defaults to
// the school in scope.
func (s *AggregatorService) ResetForm(ctx context.Context, p models.Principal, kind models.FormKind) (interface{}, error) {
	unlock := s.locks.lock(p.UserID)
	defer unlock()

	snap, err := s.ensureLocked(ctx, p)
	if err != nil {
		return nil, err
	}
	if _, err := formOf(snap.Forms, kind); err != nil {
		return nil, err
	}

	defaults := models.DefaultForms(snap.School)
	next := s.applyMutation(snap, func(n *dto.Snapshot) {
		switch kind {
		case models.FormTeacher:
			n.Forms.Teacher = defaults.Teacher
		case models.FormSchool:
			n.Forms.School = defaults.School
		case models.FormSession:
			n.Forms.Session = defaults.Session
		}
	})
	if err := s.save(ctx, p, next); err != nil {
		return nil, err
	}
	return formOf(next.Forms, kind)
}

func (s *AggregatorService) ensureLocked(ctx context.Context, p models.Principal) (*dto.Snapshot, error) {
	snap, ok, err := s.store.Load(ctx, p.UserID)
	if err != nil {
		s.logger.Warn("snapshot load failed", zap.String("principal", p.UserID), zap.Error(err))
	}
	if ok && snap.Status != dto.StatusLoading {
		return snap, nil
	}
	return s.refreshLocked(ctx, p)
}

func (s *AggregatorService) refreshLocked(ctx context.Context, p models.Principal) (*dto.Snapshot, error) {
	prev, ok, err := s.store.Load(ctx, p.UserID)
	if err != nil {
		s.logger.Warn("snapshot load failed", zap.String("principal", p.UserID), zap.Error(err))
	}
	if !ok {
		prev = emptySnapshot()
	}

	loading := *prev
	loading.Status = dto.StatusLoading
	loading.Error = ""
	if err := s.store.Save(ctx, p.UserID, &loading); err != nil {
		s.logger.Warn("saving loading snapshot failed", zap.String("principal", p.UserID), zap.Error(err))
	}

	batch := s.fetchBatch(ctx, p.Token)
	next := s.applyBatch(prev, batch)
	s.metrics.ObserveRefresh(next.Batch)
	if next.Batch.Failed > 0 {
		s.logger.Info("dashboard refreshed with failures",
			zap.String("principal", p.UserID),
			zap.Int("succeeded", next.Batch.Succeeded),
			zap.Int("failed", next.Batch.Failed),
			zap.Bool("degraded", next.Batch.Degraded),
		)
	}
	if err := s.save(ctx, p, next); err != nil {
		return nil, err
	}
	return next, nil
}

// batchResult carries the settled reads of one refresh. Each field is written
// by exactly one goroutine.
type batchResult struct {
	sessions       []models.Session
	schoolSessions []models.Session
	teachers       []models.Teacher
	enrollments    []models.Enrollment
	school         *models.SchoolInfo
	report         dto.BatchReport
}

func (s *AggregatorService) fetchBatch(ctx context.Context, token string) *batchResult {
	out := &batchResult{}
	results := make([]dto.ResourceResult, len(dto.BatchResources))

	var g errgroup.Group
	capture := func(i int, resource dto.Resource, read func() error) {
		g.Go(func() error {
			start := time.Now()
			err := read()
			results[i] = dto.ResourceResult{
				Resource:   resource,
				OK:         err == nil,
				DurationMs: time.Since(start).Milliseconds(),
			}
			if err != nil {
				results[i].Error = err.Error()
				s.logger.Warn("dashboard read failed", zap.String("resource", string(resource)), zap.Error(err))
			}
			return nil
		})
	}

	capture(0, dto.ResourceMySessions, func() (err error) {
		out.sessions, err = s.api.MySessions(ctx, token)
		return err
	})
	capture(1, dto.ResourceTeachers, func() (err error) {
		out.teachers, err = s.api.Teachers(ctx, token)
		return err
	})
	capture(2, dto.ResourceEnrollments, func() (err error) {
		out.enrollments, err = s.api.Enrollments(ctx, token)
		return err
	})
	capture(3, dto.ResourceDashboard, func() (err error) {
		out.school, err = s.api.School(ctx, token)
		return err
	})
	capture(4, dto.ResourceSchoolSessions, func() (err error) {
		out.schoolSessions, err = s.api.SchoolSessions(ctx, token)
		return err
	})
	_ = g.Wait()

	report := dto.BatchReport{Results: results, CompletedAt: s.now()}
	for _, r := range results {
		if r.OK {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	report.Degraded = s.policy(&report)
	out.report = report

	// Failed slices fall back to their defaults.
	if !report.ResourceOK(dto.ResourceMySessions) || out.sessions == nil {
		out.sessions = []models.Session{}
	}
	if !report.ResourceOK(dto.ResourceTeachers) || out.teachers == nil {
		out.teachers = []models.Teacher{}
	}
	if !report.ResourceOK(dto.ResourceEnrollments) || out.enrollments == nil {
		out.enrollments = []models.Enrollment{}
	}
	if !report.ResourceOK(dto.ResourceDashboard) {
		out.school = nil
	}
	if !report.ResourceOK(dto.ResourceSchoolSessions) || out.schoolSessions == nil {
		out.schoolSessions = []models.Session{}
	}
	return out
}

// applyBatch is the batch-complete transition. Every derived value comes from
// the batch itself; only the teacher and session forms carry over from prev.
func (s *AggregatorService) applyBatch(prev *dto.Snapshot, batch *batchResult) *dto.Snapshot {
	report := batch.report
	next := &dto.Snapshot{
		Version:        prev.Version + 1,
		Status:         dto.StatusReady,
		Sessions:       batch.sessions,
		SchoolSessions: batch.schoolSessions,
		Teachers:       batch.teachers,
		Enrollments:    batch.enrollments,
		School:         batch.school,
		Forms: models.Forms{
			Teacher: prev.Forms.Teacher,
			School:  models.SchoolFormFrom(batch.school),
			Session: prev.Forms.Session,
		},
		Batch:     &report,
		UpdatedAt: s.now(),
	}
	if report.Degraded {
		next.Status = dto.StatusError
		next.Error = MsgLoadFailed
	}
	derive(next)
	return next
}

// applyMutation is the mutation-succeeded transition: it copies prev, lets
// change edit the copy and re-derives.
func (s *AggregatorService) applyMutation(prev *dto.Snapshot, change func(*dto.Snapshot)) *dto.Snapshot {
	next := *prev
	change(&next)
	next.Version = prev.Version + 1
	next.UpdatedAt = s.now()
	derive(&next)
	return &next
}

func (s *AggregatorService) save(ctx context.Context, p models.Principal, snap *dto.Snapshot) error {
	if err := s.store.Save(ctx, p.UserID, snap); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store dashboard snapshot")
	}
	return nil
}

// mutationError surfaces the backend detail verbatim, else fallback. Backend
// 4xx statuses pass through; anything else maps to 502.
func (s *AggregatorService) mutationError(op string, err error, fallback string) error {
	message := upstream.DetailOf(err)
	if message == "" {
		message = fallback
	}
	status := appErrors.ErrUpstream.Status
	if code := upstream.StatusOf(err); code >= 400 && code < 500 {
		status = code
	}
	s.logger.Warn("dashboard mutation failed", zap.String("op", op), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, status, message)
}

func emptySnapshot() *dto.Snapshot {
	snap := &dto.Snapshot{
		Status:         dto.StatusIdle,
		Sessions:       []models.Session{},
		SchoolSessions: []models.Session{},
		Teachers:       []models.Teacher{},
		Enrollments:    []models.Enrollment{},
		Forms:          models.DefaultForms(nil),
	}
	derive(snap)
	return snap
}

func formOf(forms models.Forms, kind models.FormKind) (interface{}, error) {
	switch kind {
	case models.FormTeacher:
		return forms.Teacher.Redacted(), nil
	case models.FormSchool:
		return forms.School, nil
	case models.FormSession:
		return forms.Session, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown form")
}

// appendCopy appends to a fresh backing array so stored snapshots never share
// writable memory with their successors.
func appendCopy[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

// principalLocks serializes mutations per principal. Entries are dropped once
// no goroutine holds or waits on them.
type principalLocks struct {
	mu      sync.Mutex
	entries map[string]*principalLock
}

type principalLock struct {
	mu   sync.Mutex
	refs int
}

func newPrincipalLocks() *principalLocks {
	return &principalLocks{entries: make(map[string]*principalLock)}
}

func (l *principalLocks) lock(key string) func() {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &principalLock{}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}
