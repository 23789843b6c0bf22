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

// MPRRepository provides persistence for manpower requisitions.
type MPRRepository struct {
	db *sqlx.DB
}

// NewMPRRepository constructs the repository.
func NewMPRRepository(db *sqlx.DB) *MPRRepository {
	return &MPRRepository{db: db}
}

const mprColumns = `id, requisition_code, title, department, headcount, justification,
budget_min, budget_max, requested_by, approved_by, job_id, status, config,
created_at, approved_at, updated_at`

// Create inserts a requisition and fills in the generated id.
func (r *MPRRepository) Create(ctx context.Context, mpr *models.MPR) error {
	mpr.CreatedAt = time.Now().UTC()
	if mpr.Status == "" {
		mpr.Status = models.MPRStatusSubmitted
	}
	const query = `
INSERT INTO mprs (requisition_code, title, department, headcount, justification,
	budget_min, budget_max, requested_by, job_id, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`
	if err := r.db.GetContext(ctx, &mpr.ID, query,
		mpr.RequisitionCode, mpr.Title, mpr.Department, mpr.Headcount, mpr.JustificationID,
		mpr.BudgetMin, mpr.BudgetMax, mpr.RequestedBy, mpr.JobID, mpr.Status, mpr.CreatedAt); err != nil {
		return fmt.Errorf("insert mpr: %w", err)
	}
	return nil
}

// GetByID fetches a requisition. Returns nil when absent.
func (r *MPRRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.MPR, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf(`SELECT %s FROM mprs WHERE id = $1`, mprColumns)
	var mpr models.MPR
	if err := sqlx.GetContext(ctx, exec, &mpr, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get mpr: %w", err)
	}
	return &mpr, nil
}

// GetApprovedByJobID fetches the approved requisition backing a job, if any.
func (r *MPRRepository) GetApprovedByJobID(ctx context.Context, exec sqlx.ExtContext, jobID int64) (*models.MPR, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf(`SELECT %s FROM mprs WHERE job_id = $1 AND status = 'approved' ORDER BY approved_at DESC LIMIT 1`, mprColumns)
	var mpr models.MPR
	if err := sqlx.GetContext(ctx, exec, &mpr, query, jobID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get approved mpr for job: %w", err)
	}
	return &mpr, nil
}

// List returns requisitions matching the filter, newest first.
func (r *MPRRepository) List(ctx context.Context, filter dto.MPRQuery) ([]models.MPR, int, error) {
	query := strings.Builder{}
	fmt.Fprintf(&query, `SELECT %s FROM mprs WHERE 1=1`, mprColumns)
	args := []interface{}{}
	if filter.Department != "" {
		args = append(args, filter.Department)
		fmt.Fprintf(&query, " AND department = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&query, " AND status = $%d", len(args))
	}

	countQuery := "SELECT COUNT(*) FROM (" + query.String() + ") sub"
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count mprs: %w", err)
	}

	query.WriteString(" ORDER BY created_at DESC")
	page, size := normalizePage(filter.Page, filter.PageSize)
	args = append(args, size, (page-1)*size)
	fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var mprs []models.MPR
	if err := r.db.SelectContext(ctx, &mprs, query.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("list mprs: %w", err)
	}
	return mprs, total, nil
}

// Review records the approval or rejection of a submitted requisition.
// Approval freezes the budget snapshot into the config column so later edits
// cannot shift the variance of offers already released against it.
func (r *MPRRepository) Review(ctx context.Context, id int64, status models.MPRStatus, reviewerID int64, config models.JSONMap) error {
	const query = `
UPDATE mprs SET status = $1, approved_by = $2, config = $3,
	approved_at = CASE WHEN $1 = 'approved' THEN NOW() ELSE approved_at END,
	updated_at = NOW()
WHERE id = $4 AND status = 'submitted'`
	result, err := r.db.ExecContext(ctx, query, status, reviewerID, config, id)
	if err != nil {
		return fmt.Errorf("review mpr: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// LinkJob attaches a posting created from this requisition.
func (r *MPRRepository) LinkJob(ctx context.Context, id, jobID int64) error {
	const query = `UPDATE mprs SET job_id = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, jobID, id); err != nil {
		return fmt.Errorf("link mpr job: %w", err)
	}
	return nil
}

// MarkFulfilled closes out a requisition once its headcount has joined.
func (r *MPRRepository) MarkFulfilled(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	if exec == nil {
		exec = r.db
	}
	const query = `UPDATE mprs SET status = 'fulfilled', updated_at = NOW() WHERE id = $1 AND status = 'approved'`
	if _, err := exec.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark mpr fulfilled: %w", err)
	}
	return nil
}
