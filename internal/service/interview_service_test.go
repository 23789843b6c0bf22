package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/pkg/config"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

type mockInterviewStore struct {
	interviews map[int64]*models.Interview
	evals      map[int64]*models.InterviewEvaluation
	appStatus  map[int64]models.ApplicationStatus
	nextID     int64
}

func (m *mockInterviewStore) Create(ctx context.Context, exec sqlx.ExtContext, interview *models.Interview) error {
	if m.interviews == nil {
		m.interviews = make(map[int64]*models.Interview)
	}
	m.nextID++
	interview.ID = m.nextID
	copied := *interview
	m.interviews[interview.ID] = &copied
	return nil
}

func (m *mockInterviewStore) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Interview, error) {
	iv, ok := m.interviews[id]
	if !ok {
		return nil, nil
	}
	copied := *iv
	return &copied, nil
}

func (m *mockInterviewStore) List(ctx context.Context, filter dto.InterviewQuery) ([]models.Interview, int, error) {
	return nil, 0, nil
}

func (m *mockInterviewStore) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status models.InterviewStatus) error {
	if iv, ok := m.interviews[id]; ok {
		iv.Status = status
	}
	return nil
}

func (m *mockInterviewStore) Reschedule(ctx context.Context, id int64, req dto.RescheduleInterviewRequest) error {
	return nil
}

func (m *mockInterviewStore) GetEvaluation(ctx context.Context, exec sqlx.ExtContext, interviewID int64) (*models.InterviewEvaluation, error) {
	return m.evals[interviewID], nil
}

func (m *mockInterviewStore) FinalizeEvaluation(ctx context.Context, interview *models.Interview, eval *models.InterviewEvaluation, appStatus models.ApplicationStatus) error {
	if interview.ID == 0 {
		if err := m.Create(ctx, nil, interview); err != nil {
			return err
		}
	}
	if m.evals == nil {
		m.evals = make(map[int64]*models.InterviewEvaluation)
	}
	eval.InterviewID = interview.ID
	m.evals[interview.ID] = eval
	interview.Status = models.InterviewStatusCompleted
	if stored, ok := m.interviews[interview.ID]; ok {
		stored.Status = models.InterviewStatusCompleted
	}
	if m.appStatus == nil {
		m.appStatus = make(map[int64]models.ApplicationStatus)
	}
	m.appStatus[interview.CandidateID] = appStatus
	return nil
}

type mockLatestAppReader struct {
	latest map[int64]*models.Application
}

func (m *mockLatestAppReader) LatestByCandidate(ctx context.Context, exec sqlx.ExtContext, candidateID int64) (*models.Application, error) {
	return m.latest[candidateID], nil
}

func newInterviewFixture() (*InterviewService, *mockInterviewStore, *mockLatestAppReader, *mockNotifier) {
	store := &mockInterviewStore{interviews: map[int64]*models.Interview{
		1: {ID: 1, CandidateID: 1, JobID: 100, Round: models.RoundTechnical1, Status: models.InterviewStatusScheduled},
	}}
	apps := &mockLatestAppReader{latest: map[int64]*models.Application{}}
	candidates := &mockCandidateReader{byID: map[int64]*models.Candidate{
		1: {ID: 1, UserID: 10, Email: "dev@example.com", FullName: "Dev One"},
	}}
	jobs := &mockJobReader{jobs: map[int64]*models.Job{
		100: {ID: 100, Title: "Backend Engineer"},
	}}
	notifier := &mockNotifier{}
	svc := NewInterviewService(store, apps, candidates, jobs, notifier, config.PipelineConfig{}, validator.New(), zap.NewNop())
	return svc, store, apps, notifier
}

func TestInterviewSchedule(t *testing.T) {
	svc, store, _, notifier := newInterviewFixture()

	interview, err := svc.Schedule(context.Background(), dto.ScheduleInterviewRequest{
		CandidateID: 1,
		JobID:       100,
		Round:       models.RoundManagerial,
		ScheduledAt: time.Now().UTC().Add(48 * time.Hour),
	}, 5)
	require.NoError(t, err)

	assert.Equal(t, models.InterviewStatusScheduled, interview.Status)
	assert.Equal(t, 60, interview.DurationMinutes)
	assert.Equal(t, models.ModeVideoCall, interview.Mode)
	assert.Equal(t, models.Int64List{5}, interview.PanelMembers)
	assert.Contains(t, store.interviews, interview.ID)
	assert.Equal(t, []string{models.EventInterviewScheduled}, notifier.events())
}

func TestSubmitEvaluationPassingOutcome(t *testing.T) {
	svc, store, _, notifier := newInterviewFixture()

	result, err := svc.SubmitEvaluation(context.Background(), dto.SubmitEvaluationRequest{
		InterviewID:   1,
		CandidateID:   1,
		OverallRating: 4.5,
		Outcome:       "selected",
	}, 9)
	require.NoError(t, err)

	assert.False(t, result.InterviewSynthesized)
	assert.Equal(t, models.ApplicationStatusInterview, result.ApplicationStatus)
	assert.Equal(t, models.InterviewStatusCompleted, result.Interview.Status)
	assert.Equal(t, models.InterviewStatusCompleted, store.interviews[1].Status)
	assert.Empty(t, notifier.sent)
}

func TestSubmitEvaluationFailingOutcome(t *testing.T) {
	svc, store, _, notifier := newInterviewFixture()

	for _, outcome := range []string{"rejected", "reject", "fail"} {
		result, err := svc.SubmitEvaluation(context.Background(), dto.SubmitEvaluationRequest{
			InterviewID:   1,
			CandidateID:   1,
			OverallRating: 2,
			Outcome:       outcome,
		}, 9)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusRejected, result.ApplicationStatus)
	}
	assert.Equal(t, models.ApplicationStatusRejected, store.appStatus[1])
	assert.Contains(t, notifier.events(), models.EventRejected)
}

func TestSubmitEvaluationIdempotent(t *testing.T) {
	svc, store, _, _ := newInterviewFixture()

	first, err := svc.SubmitEvaluation(context.Background(), dto.SubmitEvaluationRequest{
		InterviewID:   1,
		CandidateID:   1,
		OverallRating: 3,
		Outcome:       "hold",
	}, 9)
	require.NoError(t, err)

	second, err := svc.SubmitEvaluation(context.Background(), dto.SubmitEvaluationRequest{
		InterviewID:     1,
		CandidateID:     1,
		TechnicalRating: intPtr(5),
		OverallRating:   4.5,
		Outcome:         "selected",
	}, 9)
	require.NoError(t, err)

	assert.Equal(t, first.Interview.ID, second.Interview.ID)
	// The resubmission overwrites the stored row in place.
	require.Len(t, store.evals, 1)
	stored := store.evals[1]
	assert.Equal(t, 4.5, stored.OverallRating)
	assert.Equal(t, "selected", stored.Outcome)
	require.NotNil(t, stored.TechnicalRating)
	assert.Equal(t, 5, *stored.TechnicalRating)
}

func TestSubmitEvaluationSynthesizesInterview(t *testing.T) {
	svc, store, apps, _ := newInterviewFixture()
	apps.latest[1] = &models.Application{ID: 50, CandidateID: 1, JobID: 100, Status: models.ApplicationStatusShortlisted}

	result, err := svc.SubmitEvaluation(context.Background(), dto.SubmitEvaluationRequest{
		InterviewID:   999,
		CandidateID:   1,
		OverallRating: 4,
		Outcome:       "selected",
	}, 9)
	require.NoError(t, err)

	assert.True(t, result.InterviewSynthesized)
	assert.Equal(t, models.RoundScreening, result.Interview.Round)
	assert.Equal(t, models.InterviewStatusCompleted, result.Interview.Status)
	assert.Equal(t, int64(100), result.Interview.JobID)
	assert.Equal(t, models.Int64List{9}, result.Interview.PanelMembers)
	assert.NotZero(t, result.Interview.ID)
	assert.Contains(t, store.interviews, result.Interview.ID)
}

func TestSubmitEvaluationNoApplicationToAttach(t *testing.T) {
	svc, _, _, _ := newInterviewFixture()

	_, err := svc.SubmitEvaluation(context.Background(), dto.SubmitEvaluationRequest{
		InterviewID:   999,
		CandidateID:   1,
		OverallRating: 4,
		Outcome:       "selected",
	}, 9)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "no application found to attach the evaluation to", appErr.Message)
}

func TestSubmitEvaluationMissingIdentifiers(t *testing.T) {
	svc, _, _, _ := newInterviewFixture()

	_, err := svc.SubmitEvaluation(context.Background(), dto.SubmitEvaluationRequest{
		OverallRating: 4,
		Outcome:       "selected",
	}, 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestInterviewUpdateStatusUnsupported(t *testing.T) {
	svc, _, _, _ := newInterviewFixture()

	err := svc.UpdateStatus(context.Background(), 1, "postponed")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedStatus.Code, appErrors.FromError(err).Code)
}
