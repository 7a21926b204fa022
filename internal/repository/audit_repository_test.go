package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-gateway/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestAuditCreateAssignsIdentity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	userID := "mgr-1"
	entry := &models.AuditLog{UserID: &userID, Action: models.AuditActionTeacherAdd, Resource: "teacher", NewValues: []byte(`{}`)}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditCreateWrapsError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnError(errors.New("boom"))

	err := repo.Create(context.Background(), &models.AuditLog{Action: models.AuditActionSchoolUpdate, Resource: "school"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create audit log")
}

func TestAuditListByUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "new_values", "request_id", "ip_address", "user_agent", "created_at"}).
		AddRow("a1", "mgr-1", models.AuditActionSessionSchedule, "session", "ses-1", []byte(`{"status":201}`), "req-1", "127.0.0.1", "curl", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2")).
		WithArgs("mgr-1", 50).
		WillReturnRows(rows)

	logs, err := repo.ListByUser(context.Background(), "mgr-1", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditActionSessionSchedule, logs[0].Action)
	require.NotNil(t, logs[0].ResourceID)
	assert.Equal(t, "ses-1", *logs[0].ResourceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
