package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/internal/repository"
	"github.com/hirepulse/hirepulse-api/pkg/config"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

type mockPipelineStore struct {
	apps       map[int64]*models.Application
	interviews []models.Interview
	nextID     int64
}

func (m *mockPipelineStore) Transition(ctx context.Context, id int64, status models.ApplicationStatus, notes *string, autoInterview *models.Interview) (*repository.TransitionOutcome, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	outcome := &repository.TransitionOutcome{PreviousStatus: app.Status}
	app.Status = status
	if notes != nil {
		app.ScreeningNotes = notes
	}
	outcome.Application = app

	if autoInterview != nil {
		blocked := false
		for _, iv := range m.interviews {
			if iv.CandidateID == app.CandidateID && iv.JobID == app.JobID && iv.Status.IsActive() {
				blocked = true
				break
			}
		}
		if !blocked {
			m.nextID++
			autoInterview.ID = m.nextID
			autoInterview.CandidateID = app.CandidateID
			autoInterview.JobID = app.JobID
			m.interviews = append(m.interviews, *autoInterview)
			outcome.InterviewCreated = true
			outcome.InterviewID = autoInterview.ID
		}
	}
	return outcome, nil
}

func newPipelineFixture() (*PipelineService, *mockPipelineStore, *mockNotifier) {
	store := &mockPipelineStore{apps: map[int64]*models.Application{
		1: {ID: 1, CandidateID: 1, JobID: 100, Status: models.ApplicationStatusApplied},
	}}
	candidates := &mockCandidateReader{byID: map[int64]*models.Candidate{
		1: {ID: 1, UserID: 10, Email: "dev@example.com", FullName: "Dev One"},
	}}
	jobs := &mockJobReader{jobs: map[int64]*models.Job{
		100: {ID: 100, Title: "Backend Engineer", Status: models.JobStatusOpen},
	}}
	notifier := &mockNotifier{}
	svc := NewPipelineService(store, candidates, jobs, notifier, config.PipelineConfig{}, zap.NewNop())
	return svc, store, notifier
}

func TestPipelineTransitionUnsupportedStatus(t *testing.T) {
	svc, _, _ := newPipelineFixture()

	_, err := svc.Transition(context.Background(), 1, "archived", 5, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedStatus.Code, appErrors.FromError(err).Code)
}

func TestPipelineTransitionNotFound(t *testing.T) {
	svc, _, _ := newPipelineFixture()

	_, err := svc.Transition(context.Background(), 404, models.ApplicationStatusScreening, 5, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPipelineShortlistAutoSchedulesInterview(t *testing.T) {
	svc, store, notifier := newPipelineFixture()

	result, err := svc.Transition(context.Background(), 1, models.ApplicationStatusShortlisted, 5, "strong profile")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusApplied, result.PreviousStatus)
	assert.Equal(t, models.ApplicationStatusShortlisted, result.Application.Status)
	assert.True(t, result.InterviewAutoCreated)
	require.NotNil(t, result.InterviewID)

	require.Len(t, store.interviews, 1)
	created := store.interviews[0]
	assert.Equal(t, models.RoundScreening, created.Round)
	assert.Equal(t, models.ModeVideoCall, created.Mode)
	assert.Equal(t, models.InterviewStatusScheduled, created.Status)
	assert.Equal(t, 60, created.DurationMinutes)
	assert.Equal(t, models.Int64List{5}, created.PanelMembers)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), created.ScheduledAt, time.Minute)

	assert.Equal(t, []string{models.EventSelected, models.EventInterviewScheduled}, notifier.events())
	assert.Equal(t, "Backend Engineer", notifier.sent[1].Payload["job_title"])
	assert.NotEmpty(t, notifier.sent[1].Payload["interview_date"])
}

func TestPipelineShortlistSkipsDuplicateInterview(t *testing.T) {
	svc, store, notifier := newPipelineFixture()
	store.interviews = []models.Interview{
		{ID: 7, CandidateID: 1, JobID: 100, Status: models.InterviewStatusScheduled},
	}

	result, err := svc.Transition(context.Background(), 1, models.ApplicationStatusShortlisted, 5, "")
	require.NoError(t, err)

	assert.False(t, result.InterviewAutoCreated)
	assert.Nil(t, result.InterviewID)
	assert.Len(t, store.interviews, 1)
	assert.Equal(t, []string{models.EventSelected}, notifier.events())
}

func TestPipelineCancelledInterviewDoesNotBlockAutoSchedule(t *testing.T) {
	svc, store, _ := newPipelineFixture()
	store.interviews = []models.Interview{
		{ID: 7, CandidateID: 1, JobID: 100, Status: models.InterviewStatusCancelled},
	}

	result, err := svc.Transition(context.Background(), 1, models.ApplicationStatusShortlisted, 5, "")
	require.NoError(t, err)
	assert.True(t, result.InterviewAutoCreated)
	assert.Len(t, store.interviews, 2)
}

func TestPipelineRejectNotifiesCandidate(t *testing.T) {
	svc, _, notifier := newPipelineFixture()

	result, err := svc.Transition(context.Background(), 1, models.ApplicationStatusRejected, 5, "not a fit")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusRejected, result.Application.Status)
	assert.False(t, result.InterviewAutoCreated)
	assert.Equal(t, []string{models.EventRejected}, notifier.events())
}

func TestPipelineDirectJumpIsLegal(t *testing.T) {
	svc, _, notifier := newPipelineFixture()

	result, err := svc.Transition(context.Background(), 1, models.ApplicationStatusOffered, 5, "")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusOffered, result.Application.Status)
	assert.Empty(t, notifier.sent)
}
