package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
)

func TestInterviewRepositoryFindActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInterviewRepository(db)

	rows := sqlmock.NewRows([]string{"id", "candidate_id", "job_id", "round", "scheduled_at",
		"duration_minutes", "mode", "meeting_link", "location", "panel_members", "status", "notes",
		"created_by", "created_at", "updated_at"}).
		AddRow(int64(7), int64(1), int64(100), "screening", time.Now(),
			60, "video_call", nil, nil, []byte(`[5]`), "scheduled", nil,
			int64(5), time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta(`status IN ('scheduled', 'completed')`)).
		WithArgs(int64(1), int64(100)).
		WillReturnRows(rows)

	interview, err := repo.FindActive(context.Background(), nil, 1, 100)
	require.NoError(t, err)
	require.NotNil(t, interview)
	assert.Equal(t, models.RoundScreening, interview.Round)
	assert.Equal(t, models.Int64List{5}, interview.PanelMembers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewRepositoryFinalizeEvaluationExistingInterview(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInterviewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO interview_evaluations`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE interviews SET status = $1`)).
		WithArgs(models.InterviewStatusCompleted, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1`)).
		WithArgs(models.ApplicationStatusInterview, int64(1), int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	interview := &models.Interview{ID: 7, CandidateID: 1, JobID: 100, Status: models.InterviewStatusScheduled}
	eval := &models.InterviewEvaluation{EvaluatorID: 9, OverallRating: 4, Outcome: "selected"}
	err := repo.FinalizeEvaluation(context.Background(), interview, eval, models.ApplicationStatusInterview)
	require.NoError(t, err)

	assert.Equal(t, int64(11), eval.ID)
	assert.Equal(t, int64(7), eval.InterviewID)
	assert.Equal(t, models.InterviewStatusCompleted, interview.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewRepositoryFinalizeEvaluationSynthesized(t *testing.T) {
	// An interview with ID 0 was synthesized by the service and is inserted
	// first; it arrives already completed so no status update runs.
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInterviewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO interviews`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO interview_evaluations`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1`)).
		WithArgs(models.ApplicationStatusRejected, int64(1), int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	interview := &models.Interview{
		CandidateID:     1,
		JobID:           100,
		Round:           models.RoundScreening,
		ScheduledAt:     time.Now().UTC(),
		DurationMinutes: 60,
		Mode:            models.ModeVideoCall,
		PanelMembers:    models.Int64List{9},
		Status:          models.InterviewStatusCompleted,
		CreatedBy:       9,
	}
	eval := &models.InterviewEvaluation{EvaluatorID: 9, OverallRating: 2, Outcome: "rejected"}
	err := repo.FinalizeEvaluation(context.Background(), interview, eval, models.ApplicationStatusRejected)
	require.NoError(t, err)

	assert.Equal(t, int64(8), interview.ID)
	assert.Equal(t, int64(8), eval.InterviewID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewRepositoryRescheduleRequiresScheduled(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInterviewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`AND status = 'scheduled'`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Reschedule(context.Background(), 7, dto.RescheduleInterviewRequest{
		ScheduledAt: time.Now().UTC().Add(48 * time.Hour),
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewRepositoryCountByStatusSince(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInterviewRepository(db)

	since := time.Now().UTC().AddDate(0, 0, -30)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM interviews WHERE created_at >= $1 GROUP BY status`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("scheduled", 3).
			AddRow("no_show", 1))

	counts, err := repo.CountByStatusSince(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"scheduled": 3, "no_show": 1}, counts)
	require.NoError(t, mock.ExpectationsWereMet())
}
