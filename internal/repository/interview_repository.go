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

// InterviewRepository provides persistence for interviews and their
// evaluations.
type InterviewRepository struct {
	db *sqlx.DB
}

// NewInterviewRepository constructs the repository.
func NewInterviewRepository(db *sqlx.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

const interviewColumns = `id, candidate_id, job_id, round, scheduled_at,
duration_minutes, mode, meeting_link, location, panel_members, status, notes,
created_by, created_at, updated_at`

// Create inserts an interview and fills in the generated id.
func (r *InterviewRepository) Create(ctx context.Context, exec sqlx.ExtContext, interview *models.Interview) error {
	if exec == nil {
		exec = r.db
	}
	interview.CreatedAt = time.Now().UTC()
	if interview.Status == "" {
		interview.Status = models.InterviewStatusScheduled
	}
	const query = `
INSERT INTO interviews (candidate_id, job_id, round, scheduled_at,
	duration_minutes, mode, meeting_link, location, panel_members, status, notes,
	created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`
	if err := sqlx.GetContext(ctx, exec, &interview.ID, query,
		interview.CandidateID, interview.JobID, interview.Round,
		interview.ScheduledAt, interview.DurationMinutes, interview.Mode, interview.MeetingLink,
		interview.Location, interview.PanelMembers, interview.Status, interview.Notes,
		interview.CreatedBy, interview.CreatedAt); err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

// GetByID fetches an interview. Returns nil when absent.
func (r *InterviewRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Interview, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf(`SELECT %s FROM interviews WHERE id = $1`, interviewColumns)
	var interview models.Interview
	if err := sqlx.GetContext(ctx, exec, &interview, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get interview: %w", err)
	}
	return &interview, nil
}

// FindActive returns the latest scheduled or completed interview for the
// candidate-job pair. Cancelled and no-show rows do not count.
func (r *InterviewRepository) FindActive(ctx context.Context, exec sqlx.ExtContext, candidateID, jobID int64) (*models.Interview, error) {
	if exec == nil {
		exec = r.db
	}
	query := fmt.Sprintf(`SELECT %s FROM interviews
WHERE candidate_id = $1 AND job_id = $2 AND status IN ('scheduled', 'completed')
ORDER BY scheduled_at DESC LIMIT 1`, interviewColumns)
	var interview models.Interview
	if err := sqlx.GetContext(ctx, exec, &interview, query, candidateID, jobID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find active interview: %w", err)
	}
	return &interview, nil
}

// List returns interviews matching the filter, soonest first.
func (r *InterviewRepository) List(ctx context.Context, filter dto.InterviewQuery) ([]models.Interview, int, error) {
	query := strings.Builder{}
	fmt.Fprintf(&query, `SELECT %s FROM interviews WHERE 1=1`, interviewColumns)
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
	if filter.PanelMember > 0 {
		args = append(args, fmt.Sprintf("%d", filter.PanelMember))
		fmt.Fprintf(&query, " AND panel_members @> $%d::jsonb", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		fmt.Fprintf(&query, " AND scheduled_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		fmt.Fprintf(&query, " AND scheduled_at < $%d", len(args))
	}

	countQuery := "SELECT COUNT(*) FROM (" + query.String() + ") sub"
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count interviews: %w", err)
	}

	query.WriteString(" ORDER BY scheduled_at ASC")
	page, size := normalizePage(filter.Page, filter.PageSize)
	args = append(args, size, (page-1)*size)
	fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var interviews []models.Interview
	if err := r.db.SelectContext(ctx, &interviews, query.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("list interviews: %w", err)
	}
	return interviews, total, nil
}

// UpdateStatus moves an interview between lifecycle states.
func (r *InterviewRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status models.InterviewStatus) error {
	if exec == nil {
		exec = r.db
	}
	const query = `UPDATE interviews SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update interview status: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Reschedule moves an interview to a new slot and marks it rescheduled.
func (r *InterviewRepository) Reschedule(ctx context.Context, id int64, req dto.RescheduleInterviewRequest) error {
	const query = `
UPDATE interviews SET scheduled_at = $1,
	duration_minutes = CASE WHEN $2 > 0 THEN $2 ELSE duration_minutes END,
	meeting_link = COALESCE(NULLIF($3, ''), meeting_link),
	status = 'scheduled', updated_at = NOW()
WHERE id = $4 AND status = 'scheduled'`
	result, err := r.db.ExecContext(ctx, query, req.ScheduledAt, req.DurationMinutes, req.MeetingLink, id)
	if err != nil {
		return fmt.Errorf("reschedule interview: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatusSince aggregates interview counts for the dashboard.
func (r *InterviewRepository) CountByStatusSince(ctx context.Context, since time.Time) (map[string]int, error) {
	const query = `SELECT status, COUNT(*) AS count FROM interviews WHERE created_at >= $1 GROUP BY status`
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, since); err != nil {
		return nil, fmt.Errorf("count interviews by status: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// FinalizeEvaluation persists a feedback submission in one transaction:
// the interview is inserted first when it was synthesized (ID == 0), the
// evaluation is upserted, the interview is forced completed, and the
// candidate's latest application for the job cascades to appStatus.
func (r *InterviewRepository) FinalizeEvaluation(ctx context.Context, interview *models.Interview, eval *models.InterviewEvaluation, appStatus models.ApplicationStatus) error {
	return WithinTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if interview.ID == 0 {
			if err := r.Create(ctx, tx, interview); err != nil {
				return err
			}
		}
		eval.InterviewID = interview.ID
		if err := r.UpsertEvaluation(ctx, tx, eval); err != nil {
			return err
		}
		if interview.Status != models.InterviewStatusCompleted {
			if err := r.UpdateStatus(ctx, tx, interview.ID, models.InterviewStatusCompleted); err != nil {
				return err
			}
			interview.Status = models.InterviewStatusCompleted
		}
		return setLatestApplicationStatus(ctx, tx, interview.CandidateID, interview.JobID, appStatus)
	})
}

// GetEvaluation fetches the evaluation for an interview. Returns nil when
// none has been submitted.
func (r *InterviewRepository) GetEvaluation(ctx context.Context, exec sqlx.ExtContext, interviewID int64) (*models.InterviewEvaluation, error) {
	if exec == nil {
		exec = r.db
	}
	const query = `SELECT id, interview_id, evaluator_id, technical_rating, communication_rating,
cultural_fit_rating, overall_rating, outcome, recommendation, feedback, submitted_at, updated_at
FROM interview_evaluations WHERE interview_id = $1`
	var eval models.InterviewEvaluation
	if err := sqlx.GetContext(ctx, exec, &eval, query, interviewID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get interview evaluation: %w", err)
	}
	return &eval, nil
}

// UpsertEvaluation writes the panel verdict, overwriting any previous
// submission for the same interview. interview_id carries a unique
// constraint so concurrent submissions collapse to a single row.
func (r *InterviewRepository) UpsertEvaluation(ctx context.Context, exec sqlx.ExtContext, eval *models.InterviewEvaluation) error {
	if exec == nil {
		exec = r.db
	}
	eval.SubmittedAt = time.Now().UTC()
	const query = `
INSERT INTO interview_evaluations (interview_id, evaluator_id, technical_rating, communication_rating,
	cultural_fit_rating, overall_rating, outcome, recommendation, feedback, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (interview_id) DO UPDATE SET
	evaluator_id = EXCLUDED.evaluator_id,
	technical_rating = EXCLUDED.technical_rating,
	communication_rating = EXCLUDED.communication_rating,
	cultural_fit_rating = EXCLUDED.cultural_fit_rating,
	overall_rating = EXCLUDED.overall_rating,
	outcome = EXCLUDED.outcome,
	recommendation = EXCLUDED.recommendation,
	feedback = EXCLUDED.feedback,
	updated_at = NOW()
RETURNING id`
	if err := sqlx.GetContext(ctx, exec, &eval.ID, query,
		eval.InterviewID, eval.EvaluatorID, eval.TechnicalRating, eval.CommunicationRating,
		eval.CulturalFitRating, eval.OverallRating, eval.Outcome, eval.Recommendation,
		eval.Feedback, eval.SubmittedAt); err != nil {
		return fmt.Errorf("upsert interview evaluation: %w", err)
	}
	return nil
}
