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

// ApplicationRepository provides persistence for pipeline applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs the repository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, candidate_id, job_id, status, application_data, ai_score,
screening_notes, applied_at, updated_at`

// Create inserts an application and fills in the generated id.
func (r *ApplicationRepository) Create(ctx context.Context, exec sqlx.ExtContext, app *models.Application) error {
	if exec == nil {
		exec = r.db
	}
	app.AppliedAt = time.Now().UTC()
	if app.Status == "" {
		app.Status = models.ApplicationStatusApplied
	}
	const query = `
INSERT INTO applications (candidate_id, job_id, status, application_data, ai_score, applied_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	if err := sqlx.GetContext(ctx, exec, &app.ID, query,
		app.CandidateID, app.JobID, app.Status, app.ApplicationData, app.AIScore, app.AppliedAt); err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// GetByID fetches an application. Returns nil when absent.
func (r *ApplicationRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Application, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1`, applicationColumns)
	var app models.Application
	if err := sqlx.GetContext(ctx, exec, &app, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

// GetByIDForUpdate locks and fetches an application inside a transaction.
func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1 FOR UPDATE`, applicationColumns)
	var app models.Application
	if err := tx.GetContext(ctx, &app, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("lock application: %w", err)
	}
	return &app, nil
}

// ExistsActive reports whether the candidate already has a live application
// for the job. Rejected rows do not block reapplying.
func (r *ApplicationRepository) ExistsActive(ctx context.Context, candidateID, jobID int64) (bool, error) {
	const query = `SELECT EXISTS (
	SELECT 1 FROM applications
	WHERE candidate_id = $1 AND job_id = $2 AND status <> 'rejected')`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, candidateID, jobID); err != nil {
		return false, fmt.Errorf("check existing application: %w", err)
	}
	return exists, nil
}

// LatestByCandidateAndJob fetches the newest application for the pair,
// regardless of status. Returns nil when none exists.
func (r *ApplicationRepository) LatestByCandidateAndJob(ctx context.Context, exec sqlx.ExtContext, candidateID, jobID int64) (*models.Application, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf(`SELECT %s FROM applications
WHERE candidate_id = $1 AND job_id = $2 ORDER BY applied_at DESC LIMIT 1`, applicationColumns)
	var app models.Application
	if err := sqlx.GetContext(ctx, exec, &app, query, candidateID, jobID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest application: %w", err)
	}
	return &app, nil
}

// LatestByCandidate fetches the candidate's newest application across all
// jobs. Used when synthesizing an interview for a stale evaluation reference.
func (r *ApplicationRepository) LatestByCandidate(ctx context.Context, exec sqlx.ExtContext, candidateID int64) (*models.Application, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf(`SELECT %s FROM applications
WHERE candidate_id = $1 ORDER BY applied_at DESC LIMIT 1`, applicationColumns)
	var app models.Application
	if err := sqlx.GetContext(ctx, exec, &app, query, candidateID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest application for candidate: %w", err)
	}
	return &app, nil
}

// List returns enriched application rows matching the filter, newest first.
func (r *ApplicationRepository) List(ctx context.Context, filter dto.ApplicationQuery) ([]dto.ApplicationResponse, int, error) {
	query := strings.Builder{}
	query.WriteString(`
SELECT a.id, a.candidate_id, u.full_name AS candidate_name, a.job_id, j.title AS job_title,
	a.status, a.ai_score, a.screening_notes, a.applied_at, a.updated_at
FROM applications a
JOIN candidates c ON c.id = a.candidate_id
JOIN users u ON u.id = c.user_id
JOIN jobs j ON j.id = a.job_id
WHERE 1=1`)
	args := []interface{}{}
	if filter.JobID > 0 {
		args = append(args, filter.JobID)
		fmt.Fprintf(&query, " AND a.job_id = $%d", len(args))
	}
	if filter.CandidateID > 0 {
		args = append(args, filter.CandidateID)
		fmt.Fprintf(&query, " AND a.candidate_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&query, " AND a.status = $%d", len(args))
	}

	countQuery := "SELECT COUNT(*) FROM (" + query.String() + ") sub"
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	query.WriteString(" ORDER BY a.applied_at DESC")
	page, size := normalizePage(filter.Page, filter.PageSize)
	args = append(args, size, (page-1)*size)
	fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var apps []dto.ApplicationResponse
	if err := r.db.SelectContext(ctx, &apps, query.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	return apps, total, nil
}

// UpdateStatus moves an application, optionally appending screening notes.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status models.ApplicationStatus, notes *string) error {
	if exec == nil {
		exec = r.db
	}
	const query = `UPDATE applications SET status = $1,
	screening_notes = COALESCE($2, screening_notes), updated_at = NOW()
WHERE id = $3`
	result, err := exec.ExecContext(ctx, query, status, notes, id)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TransitionOutcome reports what a pipeline move changed.
type TransitionOutcome struct {
	Application      *models.Application
	PreviousStatus   models.ApplicationStatus
	InterviewCreated bool
	InterviewID      int64
}

// Transition moves an application to the target status in one transaction.
// When autoInterview is non-nil it is inserted iff no scheduled or completed
// interview already exists for the candidate-job pair; the one-auto-interview
// rule holds under the row lock taken on the application.
func (r *ApplicationRepository) Transition(ctx context.Context, id int64, status models.ApplicationStatus, notes *string, autoInterview *models.Interview) (*TransitionOutcome, error) {
	outcome := &TransitionOutcome{}
	err := WithinTx(ctx, r.db, func(tx *sqlx.Tx) error {
		app, err := r.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if app == nil {
			return sql.ErrNoRows
		}
		outcome.PreviousStatus = app.Status

		if err := r.UpdateStatus(ctx, tx, id, status, notes); err != nil {
			return err
		}
		app.Status = status
		if notes != nil {
			app.ScreeningNotes = notes
		}
		outcome.Application = app

		if autoInterview == nil {
			return nil
		}
		const activeQuery = `SELECT EXISTS (
	SELECT 1 FROM interviews
	WHERE candidate_id = $1 AND job_id = $2 AND status IN ('scheduled', 'completed'))`
		var exists bool
		if err := tx.GetContext(ctx, &exists, activeQuery, app.CandidateID, app.JobID); err != nil {
			return fmt.Errorf("check active interview: %w", err)
		}
		if exists {
			return nil
		}
		autoInterview.CandidateID = app.CandidateID
		autoInterview.JobID = app.JobID
		const insertQuery = `
INSERT INTO interviews (candidate_id, job_id, round, scheduled_at, duration_minutes,
	mode, meeting_link, location, panel_members, status, notes, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`
		if err := tx.GetContext(ctx, &outcome.InterviewID, insertQuery,
			autoInterview.CandidateID, autoInterview.JobID, autoInterview.Round,
			autoInterview.ScheduledAt, autoInterview.DurationMinutes, autoInterview.Mode,
			autoInterview.MeetingLink, autoInterview.Location, autoInterview.PanelMembers,
			autoInterview.Status, autoInterview.Notes, autoInterview.CreatedBy,
			time.Now().UTC()); err != nil {
			return fmt.Errorf("auto-create interview: %w", err)
		}
		outcome.InterviewCreated = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// UpdateScore records the automated screening score.
func (r *ApplicationRepository) UpdateScore(ctx context.Context, exec sqlx.ExtContext, id int64, score int) error {
	if exec == nil {
		exec = r.db
	}
	const query = `UPDATE applications SET ai_score = $1, updated_at = NOW() WHERE id = $2`
	if _, err := exec.ExecContext(ctx, query, score, id); err != nil {
		return fmt.Errorf("update application score: %w", err)
	}
	return nil
}

// CountByStatus aggregates pipeline counts for the dashboard.
func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	const query = `SELECT status, COUNT(*) AS count FROM applications GROUP BY status`
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
