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

// JobRepository provides persistence for job postings.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository constructs the repository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, title, description, department, location, job_type, experience_required,
budget_min, budget_max, manager_id, status, visibility, skills_required, responsibilities,
requirements, posted_at, closed_at, created_at, updated_at`

// Create inserts a job posting and fills in the generated id.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	job.CreatedAt = time.Now().UTC()
	if job.Status == "" {
		job.Status = models.JobStatusDraft
	}
	if job.Visibility == "" {
		job.Visibility = "public"
	}
	const query = `
INSERT INTO jobs (title, description, department, location, job_type, experience_required,
	budget_min, budget_max, manager_id, status, visibility, skills_required,
	responsibilities, requirements, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING id`
	if err := r.db.GetContext(ctx, &job.ID, query,
		job.Title, job.Description, job.Department, job.Location, job.JobType, job.ExperienceRequired,
		job.BudgetMin, job.BudgetMax, job.ManagerID, job.Status, job.Visibility, job.SkillsRequired,
		job.Responsibilities, job.Requirements, job.CreatedAt); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID fetches a job. Returns nil when absent.
func (r *JobRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Job, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns)
	var job models.Job
	if err := sqlx.GetContext(ctx, exec, &job, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// List returns jobs matching the filter, newest first.
func (r *JobRepository) List(ctx context.Context, filter dto.JobQuery) ([]models.Job, int, error) {
	query := strings.Builder{}
	fmt.Fprintf(&query, `SELECT %s FROM jobs WHERE 1=1`, jobColumns)
	args := []interface{}{}
	if filter.Department != "" {
		args = append(args, filter.Department)
		fmt.Fprintf(&query, " AND department = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&query, " AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		fmt.Fprintf(&query, " AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	countQuery := "SELECT COUNT(*) FROM (" + query.String() + ") sub"
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	query.WriteString(" ORDER BY created_at DESC")
	page, size := normalizePage(filter.Page, filter.PageSize)
	args = append(args, size, (page-1)*size)
	fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, total, nil
}

// Update applies a partial edit to a job posting.
func (r *JobRepository) Update(ctx context.Context, id int64, update dto.UpdateJobRequest) error {
	query := strings.Builder{}
	query.WriteString("UPDATE jobs SET updated_at = NOW()")
	args := []interface{}{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		fmt.Fprintf(&query, ", %s = $%d", column, len(args))
	}
	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.Location != nil {
		set("location", *update.Location)
	}
	if update.JobType != nil {
		set("job_type", *update.JobType)
	}
	if update.ExperienceRequired != nil {
		set("experience_required", *update.ExperienceRequired)
	}
	if update.BudgetMin != nil {
		set("budget_min", *update.BudgetMin)
	}
	if update.BudgetMax != nil {
		set("budget_max", *update.BudgetMax)
	}
	if update.SkillsRequired != nil {
		set("skills_required", models.StringList(update.SkillsRequired))
	}
	if update.Responsibilities != nil {
		set("responsibilities", *update.Responsibilities)
	}
	if update.Requirements != nil {
		set("requirements", *update.Requirements)
	}
	if update.Visibility != nil {
		set("visibility", *update.Visibility)
	}
	if len(args) == 0 {
		return nil
	}
	args = append(args, id)
	fmt.Fprintf(&query, " WHERE id = $%d", len(args))
	if _, err := r.db.ExecContext(ctx, query.String(), args...); err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// UpdateStatus moves a job between posting states, stamping posted/closed
// times as appropriate.
func (r *JobRepository) UpdateStatus(ctx context.Context, id int64, status models.JobStatus) error {
	query := `UPDATE jobs SET status = $1, updated_at = NOW()`
	switch status {
	case models.JobStatusOpen:
		query += `, posted_at = COALESCE(posted_at, NOW())`
	case models.JobStatusClosed, models.JobStatusFilled, models.JobStatusCancelled:
		query += `, closed_at = NOW()`
	}
	query += ` WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountOpen returns the number of open postings.
func (r *JobRepository) CountOpen(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM jobs WHERE status = 'open'`); err != nil {
		return 0, fmt.Errorf("count open jobs: %w", err)
	}
	return count, nil
}
