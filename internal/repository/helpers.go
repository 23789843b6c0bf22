package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hirepulse/hirepulse-api/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func pqStringArray(values []string) driver.Valuer {
	return pq.Array(values)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, used to surface duplicate offer codes as conflicts.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// setLatestApplicationStatus cascades a status onto the candidate's newest
// application for the job. A no-op when the pair has no application, which
// is legal: interviews and offers are siblings of the application, not
// children.
func setLatestApplicationStatus(ctx context.Context, exec sqlx.ExtContext, candidateID, jobID int64, status models.ApplicationStatus) error {
	const query = `
UPDATE applications SET status = $1, updated_at = NOW()
WHERE id = (
	SELECT id FROM applications
	WHERE candidate_id = $2 AND job_id = $3
	ORDER BY applied_at DESC LIMIT 1)`
	if _, err := exec.ExecContext(ctx, query, status, candidateID, jobID); err != nil {
		return fmt.Errorf("cascade application status: %w", err)
	}
	return nil
}
