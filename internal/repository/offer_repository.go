package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
)

// OfferRepository provides persistence for compensation offers.
type OfferRepository struct {
	db *sqlx.DB
}

// NewOfferRepository constructs the repository.
func NewOfferRepository(db *sqlx.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

const offerColumns = `id, offer_code, candidate_id, job_id, mpr_id,
ctc_fixed, ctc_variable, joining_bonus, relocation_bonus, ctc_total, variance_percent,
requires_approval, approved_by, approved_at, status, valid_until, joining_date,
other_benefits, offered_by, offered_at, accepted_at, updated_at`

// Create inserts an offer and fills in the generated id. A unique-violation
// on offer_code is returned as-is so the caller can map it to a conflict.
func (r *OfferRepository) Create(ctx context.Context, exec sqlx.ExtContext, offer *models.Offer) error {
	if exec == nil {
		exec = r.db
	}
	offer.OfferedAt = time.Now().UTC()
	if offer.Status == "" {
		offer.Status = models.OfferStatusOffered
	}
	const query = `
INSERT INTO offers (offer_code, candidate_id, job_id, mpr_id,
	ctc_fixed, ctc_variable, joining_bonus, relocation_bonus, ctc_total, variance_percent,
	requires_approval, status, valid_until, joining_date, other_benefits,
	offered_by, offered_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING id`
	if err := sqlx.GetContext(ctx, exec, &offer.ID, query,
		offer.OfferCode, offer.CandidateID, offer.JobID, offer.MPRID,
		offer.CTCFixed, offer.CTCVariable, offer.JoiningBonus, offer.RelocationBonus,
		offer.CTCTotal, offer.VariancePercent, offer.RequiresApproval, offer.Status,
		offer.ValidUntil, offer.JoiningDate, offer.OtherBenefits,
		offer.OfferedBy, offer.OfferedAt); err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

// GetByID fetches an offer. Returns nil when absent.
func (r *OfferRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Offer, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf(`SELECT %s FROM offers WHERE id = $1`, offerColumns)
	var offer models.Offer
	if err := sqlx.GetContext(ctx, exec, &offer, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return &offer, nil
}

// GetByIDForUpdate locks and fetches an offer inside a transaction. Every
// offer mutation goes through this lock so concurrent moves serialize.
func (r *OfferRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Offer, error) {
	query := fmt.Sprintf(`SELECT %s FROM offers WHERE id = $1 FOR UPDATE`, offerColumns)
	var offer models.Offer
	if err := tx.GetContext(ctx, &offer, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("lock offer: %w", err)
	}
	return &offer, nil
}

// List returns offers matching the filter, newest first.
func (r *OfferRepository) List(ctx context.Context, filter dto.OfferQuery) ([]models.Offer, int, error) {
	query := strings.Builder{}
	fmt.Fprintf(&query, `SELECT %s FROM offers WHERE 1=1`, offerColumns)
	args := []interface{}{}
	if filter.CandidateID > 0 {
		args = append(args, filter.CandidateID)
		fmt.Fprintf(&query, " AND candidate_id = $%d", len(args))
	}
	if filter.JobID > 0 {
		args = append(args, filter.JobID)
		fmt.Fprintf(&query, " AND job_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&query, " AND status = $%d", len(args))
	}
	if filter.RequiresApproval != nil {
		args = append(args, *filter.RequiresApproval)
		fmt.Fprintf(&query, " AND requires_approval = $%d", len(args))
	}

	countQuery := "SELECT COUNT(*) FROM (" + query.String() + ") sub"
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count offers: %w", err)
	}

	query.WriteString(" ORDER BY offered_at DESC")
	page, size := normalizePage(filter.Page, filter.PageSize)
	args = append(args, size, (page-1)*size)
	fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var offers []models.Offer
	if err := r.db.SelectContext(ctx, &offers, query.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("list offers: %w", err)
	}
	return offers, total, nil
}

// Save persists the mutable fields of an offer. Totals and variance are
// expected to be recomputed by the caller before saving.
func (r *OfferRepository) Save(ctx context.Context, exec sqlx.ExtContext, offer *models.Offer) error {
	if exec == nil {
		exec = r.db
	}
	const query = `
UPDATE offers SET ctc_fixed = :ctc_fixed, ctc_variable = :ctc_variable,
	joining_bonus = :joining_bonus, relocation_bonus = :relocation_bonus,
	ctc_total = :ctc_total, variance_percent = :variance_percent,
	requires_approval = :requires_approval, approved_by = :approved_by,
	approved_at = :approved_at, status = :status, valid_until = :valid_until,
	joining_date = :joining_date, other_benefits = :other_benefits,
	accepted_at = :accepted_at, updated_at = NOW()
WHERE id = :id`
	result, err := sqlx.NamedExecContext(ctx, exec, query, offer)
	if err != nil {
		return fmt.Errorf("save offer: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateWithCascade inserts the offer and moves the candidate's latest
// application for the job to "offered" in one transaction.
func (r *OfferRepository) CreateWithCascade(ctx context.Context, offer *models.Offer) error {
	return WithinTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.Create(ctx, tx, offer); err != nil {
			return err
		}
		return setLatestApplicationStatus(ctx, tx, offer.CandidateID, offer.JobID, models.ApplicationStatusOffered)
	})
}

// SaveWithCascade persists the offer and, when appStatus is non-empty,
// cascades it onto the candidate's latest application for the job, in one
// transaction.
func (r *OfferRepository) SaveWithCascade(ctx context.Context, offer *models.Offer, appStatus models.ApplicationStatus) error {
	return WithinTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.Save(ctx, tx, offer); err != nil {
			return err
		}
		if appStatus == "" {
			return nil
		}
		return setLatestApplicationStatus(ctx, tx, offer.CandidateID, offer.JobID, appStatus)
	})
}

// OfferStats aggregates funnel counts for the dashboard.
type OfferStats struct {
	Offered         int     `db:"offered"`
	Accepted        int     `db:"accepted"`
	Declined        int     `db:"declined"`
	Joined          int     `db:"joined"`
	PendingApproval int     `db:"pending_approval"`
	AverageVariance float64 `db:"average_variance"`
}

// Stats computes offer funnel aggregates in one pass.
func (r *OfferRepository) Stats(ctx context.Context) (*OfferStats, error) {
	const query = `
SELECT
	COUNT(*) FILTER (WHERE status = 'offered') AS offered,
	COUNT(*) FILTER (WHERE status = 'accepted') AS accepted,
	COUNT(*) FILTER (WHERE status = 'declined') AS declined,
	COUNT(*) FILTER (WHERE status = 'joined') AS joined,
	COUNT(*) FILTER (WHERE requires_approval) AS pending_approval,
	COALESCE(AVG(variance_percent), 0) AS average_variance
FROM offers`
	var stats OfferStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("offer stats: %w", err)
	}
	return &stats, nil
}
