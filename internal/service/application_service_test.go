package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

type mockApplicationStore struct {
	apps    map[int64]*models.Application
	active  map[[2]int64]bool
	created *models.Application
	nextID  int64
}

func (m *mockApplicationStore) Create(ctx context.Context, exec sqlx.ExtContext, app *models.Application) error {
	if m.apps == nil {
		m.apps = make(map[int64]*models.Application)
	}
	m.nextID++
	app.ID = m.nextID
	m.apps[app.ID] = app
	m.created = app
	return nil
}

func (m *mockApplicationStore) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Application, error) {
	return m.apps[id], nil
}

func (m *mockApplicationStore) ExistsActive(ctx context.Context, candidateID, jobID int64) (bool, error) {
	return m.active[[2]int64{candidateID, jobID}], nil
}

func (m *mockApplicationStore) List(ctx context.Context, filter dto.ApplicationQuery) ([]dto.ApplicationResponse, int, error) {
	return nil, 0, nil
}

func newApplicationFixture() (*ApplicationService, *mockApplicationStore, *mockNotifier) {
	store := &mockApplicationStore{active: map[[2]int64]bool{}}
	candidates := &mockCandidateReader{byUserID: map[int64]*models.Candidate{
		10: {ID: 1, UserID: 10, Email: "dev@example.com", FullName: "Dev One",
			Skills: models.StringList{"go", "postgres", "docker", "redis"}, ExperienceYears: 5},
	}}
	jobs := &mockJobReader{jobs: map[int64]*models.Job{
		100: {ID: 100, Title: "Backend Engineer", Status: models.JobStatusOpen},
		101: {ID: 101, Title: "Closed Role", Status: models.JobStatusClosed},
	}}
	notifier := &mockNotifier{}
	svc := NewApplicationService(store, candidates, jobs, notifier, validator.New(), zap.NewNop())
	return svc, store, notifier
}

func TestApplicationSubmit(t *testing.T) {
	svc, store, notifier := newApplicationFixture()

	app, err := svc.Submit(context.Background(), 10, dto.SubmitApplicationRequest{
		JobID:       100,
		CoverLetter: "hello",
	})
	require.NoError(t, err)
	require.NotNil(t, store.created)

	assert.Equal(t, models.ApplicationStatusApplied, app.Status)
	assert.Equal(t, int64(1), app.CandidateID)
	require.NotNil(t, app.AIScore)
	// 50 base + 4 skills * 5 + 5 years * 3
	assert.Equal(t, 85, *app.AIScore)
	assert.Equal(t, "hello", app.ApplicationData["cover_letter"])
	assert.Equal(t, []string{models.EventApplicationSubmitted}, notifier.events())
}

func TestApplicationSubmitDuplicate(t *testing.T) {
	svc, store, notifier := newApplicationFixture()
	store.active[[2]int64{1, 100}] = true

	_, err := svc.Submit(context.Background(), 10, dto.SubmitApplicationRequest{JobID: 100})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "already applied for this job", appErr.Message)
	assert.Empty(t, notifier.sent)
}

func TestApplicationSubmitRejectedAllowsReapply(t *testing.T) {
	// A previously rejected application does not count as active, so the
	// candidate can apply again.
	svc, store, _ := newApplicationFixture()
	store.active[[2]int64{1, 100}] = false

	_, err := svc.Submit(context.Background(), 10, dto.SubmitApplicationRequest{JobID: 100})
	assert.NoError(t, err)
}

func TestApplicationSubmitJobNotOpen(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	_, err := svc.Submit(context.Background(), 10, dto.SubmitApplicationRequest{JobID: 101})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestApplicationSubmitUnknownJob(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	_, err := svc.Submit(context.Background(), 10, dto.SubmitApplicationRequest{JobID: 999})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicationSubmitNoProfile(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	_, err := svc.Submit(context.Background(), 99, dto.SubmitApplicationRequest{JobID: 100})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
