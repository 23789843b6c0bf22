package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepulse/hirepulse-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func applicationRow(id int64, status models.ApplicationStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "candidate_id", "job_id", "status", "application_data",
		"ai_score", "screening_notes", "applied_at", "updated_at"}).
		AddRow(id, int64(1), int64(100), status, []byte(`{}`), 75, nil, time.Now(), nil)
}

func TestApplicationRepositoryExistsActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`status <> 'rejected'`)).
		WithArgs(int64(1), int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsActive(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryUpdateStatusMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1`)).
		WithArgs(models.ApplicationStatusScreening, nil, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), nil, 404, models.ApplicationStatusScreening, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryTransitionCreatesInterview(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM applications WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(applicationRow(1, models.ApplicationStatusApplied))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1`)).
		WithArgs(models.ApplicationStatusShortlisted, nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`status IN ('scheduled', 'completed')`)).
		WithArgs(int64(1), int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO interviews`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectCommit()

	auto := &models.Interview{
		Round:           models.RoundScreening,
		ScheduledAt:     time.Now().UTC().Add(24 * time.Hour),
		DurationMinutes: 60,
		Mode:            models.ModeVideoCall,
		PanelMembers:    models.Int64List{5},
		Status:          models.InterviewStatusScheduled,
		CreatedBy:       5,
	}
	outcome, err := repo.Transition(context.Background(), 1, models.ApplicationStatusShortlisted, nil, auto)
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusApplied, outcome.PreviousStatus)
	assert.Equal(t, models.ApplicationStatusShortlisted, outcome.Application.Status)
	assert.True(t, outcome.InterviewCreated)
	assert.Equal(t, int64(9), outcome.InterviewID)
	assert.Equal(t, int64(1), auto.CandidateID)
	assert.Equal(t, int64(100), auto.JobID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryTransitionSkipsDuplicateInterview(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(applicationRow(1, models.ApplicationStatusScreening))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1`)).
		WithArgs(models.ApplicationStatusShortlisted, nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`status IN ('scheduled', 'completed')`)).
		WithArgs(int64(1), int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	auto := &models.Interview{Round: models.RoundScreening, Status: models.InterviewStatusScheduled}
	outcome, err := repo.Transition(context.Background(), 1, models.ApplicationStatusShortlisted, nil, auto)
	require.NoError(t, err)

	assert.False(t, outcome.InterviewCreated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryTransitionUnknownApplication(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Transition(context.Background(), 404, models.ApplicationStatusScreening, nil, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepositoryCountByStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`GROUP BY status`)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("applied", 5).
			AddRow("interview", 2))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"applied": 5, "interview": 2}, counts)
	require.NoError(t, mock.ExpectationsWereMet())
}
