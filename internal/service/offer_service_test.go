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

type mockOfferStore struct {
	offers    map[int64]*models.Offer
	appStatus map[[2]int64]models.ApplicationStatus
	nextID    int64
}

func (m *mockOfferStore) CreateWithCascade(ctx context.Context, offer *models.Offer) error {
	if m.offers == nil {
		m.offers = make(map[int64]*models.Offer)
	}
	m.nextID++
	offer.ID = m.nextID
	offer.OfferedAt = time.Now().UTC()
	copied := *offer
	m.offers[offer.ID] = &copied
	m.cascade(offer, models.ApplicationStatusOffered)
	return nil
}

func (m *mockOfferStore) SaveWithCascade(ctx context.Context, offer *models.Offer, appStatus models.ApplicationStatus) error {
	copied := *offer
	m.offers[offer.ID] = &copied
	if appStatus != "" {
		m.cascade(offer, appStatus)
	}
	return nil
}

func (m *mockOfferStore) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Offer, error) {
	offer, ok := m.offers[id]
	if !ok {
		return nil, nil
	}
	copied := *offer
	return &copied, nil
}

func (m *mockOfferStore) List(ctx context.Context, filter dto.OfferQuery) ([]models.Offer, int, error) {
	return nil, 0, nil
}

func (m *mockOfferStore) cascade(offer *models.Offer, status models.ApplicationStatus) {
	if m.appStatus == nil {
		m.appStatus = make(map[[2]int64]models.ApplicationStatus)
	}
	m.appStatus[[2]int64{offer.CandidateID, offer.JobID}] = status
}

func newOfferFixture() (*OfferService, *mockOfferStore, *mockNotifier) {
	store := &mockOfferStore{}
	candidates := &mockCandidateReader{
		byID: map[int64]*models.Candidate{
			1: {ID: 1, UserID: 10, Email: "dev@example.com", FullName: "Dev One"},
		},
		byUserID: map[int64]*models.Candidate{
			10: {ID: 1, UserID: 10, Email: "dev@example.com", FullName: "Dev One"},
			20: {ID: 2, UserID: 20, Email: "other@example.com", FullName: "Other"},
		},
	}
	jobs := &mockJobReader{jobs: map[int64]*models.Job{
		100: {ID: 100, Title: "Backend Engineer", Status: models.JobStatusOpen, BudgetMax: floatPtr(95000)},
		101: {ID: 101, Title: "Unbudgeted Role", Status: models.JobStatusOpen},
	}}
	mprs := &mockMPRReader{
		byJobID: map[int64]*models.MPR{
			101: {ID: 7, Status: models.MPRStatusApproved, Config: models.JSONMap{"budget_max": float64(80000)}},
		},
	}
	notifier := &mockNotifier{}
	svc := NewOfferService(store, candidates, jobs, mprs, notifier, config.PipelineConfig{}, validator.New(), zap.NewNop())
	return svc, store, notifier
}

func releaseBasicOffer(t *testing.T, svc *OfferService) *models.Offer {
	t.Helper()
	offer, err := svc.Release(context.Background(), dto.ReleaseOfferRequest{
		CandidateID: 1,
		JobID:       100,
		CTCFixed:    80000,
		CTCVariable: 10000,
	}, 5)
	require.NoError(t, err)
	return offer
}

func TestOfferReleaseOverBudget(t *testing.T) {
	svc, store, notifier := newOfferFixture()

	offer, err := svc.Release(context.Background(), dto.ReleaseOfferRequest{
		CandidateID: 1,
		JobID:       100,
		CTCFixed:    100000,
		CTCVariable: 10000,
	}, 5)
	require.NoError(t, err)

	assert.Equal(t, 110000.0, offer.CTCTotal)
	assert.InDelta(t, 15.79, offer.VariancePercent, 0.001)
	assert.True(t, offer.RequiresApproval)
	assert.Equal(t, models.OfferStatusOffered, offer.Status)
	assert.Contains(t, offer.OfferCode, "OFFER-")
	require.NotNil(t, offer.ValidUntil)

	assert.Equal(t, models.ApplicationStatusOffered, store.appStatus[[2]int64{1, 100}])
	assert.Equal(t, []string{models.EventOfferReleased}, notifier.events())
}

func TestOfferReleaseWithinBudget(t *testing.T) {
	svc, _, _ := newOfferFixture()

	offer := releaseBasicOffer(t, svc)
	assert.Equal(t, 90000.0, offer.CTCTotal)
	assert.InDelta(t, -5.26, offer.VariancePercent, 0.001)
	assert.False(t, offer.RequiresApproval)
}

func TestOfferReleaseFallsBackToRequisitionBudget(t *testing.T) {
	// The job carries no budget ceiling, so the frozen budget of the
	// approved requisition linked to it is used instead.
	svc, _, _ := newOfferFixture()

	offer, err := svc.Release(context.Background(), dto.ReleaseOfferRequest{
		CandidateID: 1,
		JobID:       101,
		CTCFixed:    88000,
	}, 5)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, offer.VariancePercent, 0.001)
	assert.True(t, offer.RequiresApproval)
	require.NotNil(t, offer.MPRID)
	assert.Equal(t, int64(7), *offer.MPRID)
}

func TestOfferReleaseUnknownCandidate(t *testing.T) {
	svc, _, _ := newOfferFixture()

	_, err := svc.Release(context.Background(), dto.ReleaseOfferRequest{CandidateID: 42, JobID: 100}, 5)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestOfferUpdateStatusJoined(t *testing.T) {
	svc, store, notifier := newOfferFixture()
	offer := releaseBasicOffer(t, svc)

	joining := time.Now().UTC().AddDate(0, 1, 0)
	updated, err := svc.UpdateStatus(context.Background(), offer.ID, dto.UpdateOfferStatusRequest{
		Status:      models.OfferStatusJoined,
		JoiningDate: &joining,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OfferStatusJoined, updated.Status)
	require.NotNil(t, updated.JoiningDate)
	assert.Equal(t, joining, *updated.JoiningDate)
	assert.Equal(t, 90000.0, updated.CTCTotal)

	jr, ok := updated.GetJoiningRequest()
	require.True(t, ok)
	assert.Equal(t, models.JoiningRequestApproved, jr.Status)

	assert.Equal(t, models.ApplicationStatusJoined, store.appStatus[[2]int64{1, 100}])
	assert.Contains(t, notifier.events(), models.EventJoined)
}

func TestOfferUpdateStatusJoinedIsTerminal(t *testing.T) {
	svc, _, _ := newOfferFixture()
	offer := releaseBasicOffer(t, svc)

	_, err := svc.UpdateStatus(context.Background(), offer.ID, dto.UpdateOfferStatusRequest{Status: models.OfferStatusJoined})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), offer.ID, dto.UpdateOfferStatusRequest{Status: models.OfferStatusWithdrawn})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "offer is already finalized", appErr.Message)
}

func TestOfferUpdateStatusUnsupported(t *testing.T) {
	svc, _, _ := newOfferFixture()
	offer := releaseBasicOffer(t, svc)

	_, err := svc.UpdateStatus(context.Background(), offer.ID, dto.UpdateOfferStatusRequest{Status: "negotiation"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedStatus.Code, appErrors.FromError(err).Code)
}

func TestOfferUpdateStatusDeclinedCascades(t *testing.T) {
	svc, store, notifier := newOfferFixture()
	offer := releaseBasicOffer(t, svc)

	updated, err := svc.UpdateStatus(context.Background(), offer.ID, dto.UpdateOfferStatusRequest{Status: models.OfferStatusDeclined})
	require.NoError(t, err)

	assert.Equal(t, models.OfferStatusDeclined, updated.Status)
	assert.Equal(t, models.ApplicationStatusRejected, store.appStatus[[2]int64{1, 100}])
	assert.Contains(t, notifier.events(), models.EventRejected)
}

func TestOfferDecide(t *testing.T) {
	svc, _, _ := newOfferFixture()
	offer := releaseBasicOffer(t, svc)

	decided, err := svc.Decide(context.Background(), offer.ID, 10, dto.OfferDecisionRequest{Decision: " Accepted "})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, decided.Status)
	assert.NotNil(t, decided.AcceptedAt)
}

func TestOfferDecideRestrictedValues(t *testing.T) {
	svc, _, _ := newOfferFixture()
	offer := releaseBasicOffer(t, svc)

	_, err := svc.Decide(context.Background(), offer.ID, 10, dto.OfferDecisionRequest{Decision: "withdrawn"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "decision must be accepted or declined", appErr.Message)
}

func TestOfferDecideWrongCandidate(t *testing.T) {
	svc, _, _ := newOfferFixture()
	offer := releaseBasicOffer(t, svc)

	_, err := svc.Decide(context.Background(), offer.ID, 20, dto.OfferDecisionRequest{Decision: "accepted"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestOfferRequestJoiningRequiresAccepted(t *testing.T) {
	svc, _, _ := newOfferFixture()
	offer := releaseBasicOffer(t, svc)

	_, err := svc.RequestJoining(context.Background(), offer.ID, 10, dto.JoiningRequestPayload{RequestedDate: "2026-10-01"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "joining can only be requested on an accepted offer", appErr.Message)
}

func TestOfferRequestJoining(t *testing.T) {
	svc, _, _ := newOfferFixture()
	offer := releaseBasicOffer(t, svc)

	_, err := svc.Decide(context.Background(), offer.ID, 10, dto.OfferDecisionRequest{Decision: "accepted"})
	require.NoError(t, err)

	updated, err := svc.RequestJoining(context.Background(), offer.ID, 10, dto.JoiningRequestPayload{
		RequestedDate: "2026-10-01",
		Note:          "after notice period",
	})
	require.NoError(t, err)

	jr, ok := updated.GetJoiningRequest()
	require.True(t, ok)
	assert.Equal(t, models.JoiningRequestPending, jr.Status)
	assert.Equal(t, "2026-10-01", jr.RequestedDate)
	assert.NotEmpty(t, jr.RequestedAt)
}

func TestOfferApproveClearsFlagOnly(t *testing.T) {
	svc, _, _ := newOfferFixture()

	offer, err := svc.Release(context.Background(), dto.ReleaseOfferRequest{
		CandidateID: 1,
		JobID:       100,
		CTCFixed:    100000,
		CTCVariable: 10000,
	}, 5)
	require.NoError(t, err)
	require.True(t, offer.RequiresApproval)

	approved, err := svc.Approve(context.Background(), offer.ID, 77)
	require.NoError(t, err)

	assert.False(t, approved.RequiresApproval)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, int64(77), *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)
	// Approval is an audit action; the offer status does not move.
	assert.Equal(t, models.OfferStatusOffered, approved.Status)
	assert.InDelta(t, 15.79, approved.VariancePercent, 0.001)
}
