package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepulse/hirepulse-api/internal/models"
)

func offerRow(id int64, status models.OfferStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "offer_code", "candidate_id", "job_id", "mpr_id",
		"ctc_fixed", "ctc_variable", "joining_bonus", "relocation_bonus", "ctc_total", "variance_percent",
		"requires_approval", "approved_by", "approved_at", "status", "valid_until", "joining_date",
		"other_benefits", "offered_by", "offered_at", "accepted_at", "updated_at"}).
		AddRow(id, "OFFER-AB12CD34", int64(1), int64(100), nil,
			90000.0, 10000.0, 0.0, 0.0, 100000.0, 5.26,
			true, nil, nil, status, nil, nil,
			[]byte(`{}`), int64(5), time.Now(), nil, nil)
}

func TestOfferRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM offers WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(offerRow(1, models.OfferStatusOffered))

	offer, err := repo.GetByID(context.Background(), nil, 1)
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.Equal(t, "OFFER-AB12CD34", offer.OfferCode)
	assert.Equal(t, 100000.0, offer.CTCTotal)
	assert.True(t, offer.RequiresApproval)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryGetByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM offers WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	offer, err := repo.GetByID(context.Background(), nil, 404)
	require.NoError(t, err)
	assert.Nil(t, offer)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryCreateWithCascade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO offers`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1`)).
		WithArgs(models.ApplicationStatusOffered, int64(1), int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	offer := &models.Offer{
		OfferCode:   "OFFER-TEST0001",
		CandidateID: 1,
		JobID:       100,
		CTCFixed:    90000,
		CTCVariable: 10000,
		CTCTotal:    100000,
		Status:      models.OfferStatusOffered,
		OfferedBy:   5,
	}
	err := repo.CreateWithCascade(context.Background(), offer)
	require.NoError(t, err)
	assert.Equal(t, int64(3), offer.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryCreateWithCascadeNoApplication(t *testing.T) {
	// The cascade update matches zero rows when the pair never applied.
	// That is legal: offers are siblings of applications, not children.
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO offers`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1`)).
		WithArgs(models.ApplicationStatusOffered, int64(2), int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	offer := &models.Offer{OfferCode: "OFFER-TEST0002", CandidateID: 2, JobID: 100, OfferedBy: 5}
	err := repo.CreateWithCascade(context.Background(), offer)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositorySaveWithCascade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE offers SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1`)).
		WithArgs(models.ApplicationStatusJoined, int64(1), int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	offer := &models.Offer{ID: 3, CandidateID: 1, JobID: 100, Status: models.OfferStatusJoined}
	err := repo.SaveWithCascade(context.Background(), offer, models.ApplicationStatusJoined)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositorySaveWithCascadeSkipsApplication(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE offers SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	offer := &models.Offer{ID: 3, CandidateID: 1, JobID: 100, Status: models.OfferStatusOffered}
	err := repo.SaveWithCascade(context.Background(), offer, "")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepositoryStats(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM offers`)).
		WillReturnRows(sqlmock.NewRows([]string{"offered", "accepted", "declined", "joined",
			"pending_approval", "average_variance"}).
			AddRow(4, 2, 1, 1, 2, 7.5))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Offered)
	assert.Equal(t, 2, stats.Accepted)
	assert.Equal(t, 1, stats.Joined)
	assert.Equal(t, 7.5, stats.AverageVariance)
	require.NoError(t, mock.ExpectationsWereMet())
}
