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

// CandidateRepository provides persistence for candidate profiles and
// uploaded documents.
type CandidateRepository struct {
	db *sqlx.DB
}

// NewCandidateRepository constructs the repository.
func NewCandidateRepository(db *sqlx.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

const candidateColumns = `c.id, c.user_id, c.phone, c.address, c.city, c.country, c.skills,
c.experience_years, c.current_company, c.current_position, c.expected_ctc, c.notice_period,
c.resume_url, c.created_at, c.updated_at, u.full_name, u.email`

// Create inserts a candidate profile and fills in the generated id.
func (r *CandidateRepository) Create(ctx context.Context, exec sqlx.ExtContext, candidate *models.Candidate) error {
	if exec == nil {
		exec = r.db
	}
	candidate.CreatedAt = time.Now().UTC()
	const query = `
INSERT INTO candidates (user_id, phone, skills, experience_years, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	if err := sqlx.GetContext(ctx, exec, &candidate.ID, query,
		candidate.UserID, candidate.Phone, candidate.Skills, candidate.ExperienceYears, candidate.CreatedAt); err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

// GetByID fetches a candidate with joined user fields. Returns nil when absent.
func (r *CandidateRepository) GetByID(ctx context.Context, id int64) (*models.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates c JOIN users u ON u.id = c.user_id WHERE c.id = $1`, candidateColumns)
	var candidate models.Candidate
	if err := r.db.GetContext(ctx, &candidate, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return &candidate, nil
}

// GetByUserID fetches the candidate profile owned by a portal account.
func (r *CandidateRepository) GetByUserID(ctx context.Context, userID int64) (*models.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates c JOIN users u ON u.id = c.user_id WHERE c.user_id = $1`, candidateColumns)
	var candidate models.Candidate
	if err := r.db.GetContext(ctx, &candidate, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get candidate by user: %w", err)
	}
	return &candidate, nil
}

// List returns candidates matching the filter, newest first.
func (r *CandidateRepository) List(ctx context.Context, filter dto.CandidateQuery) ([]models.Candidate, int, error) {
	query := strings.Builder{}
	fmt.Fprintf(&query, `SELECT %s FROM candidates c JOIN users u ON u.id = c.user_id WHERE 1=1`, candidateColumns)
	args := []interface{}{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		fmt.Fprintf(&query, " AND (u.full_name ILIKE $%d OR u.email ILIKE $%d)", len(args), len(args))
	}
	if filter.Skill != "" {
		args = append(args, filter.Skill)
		fmt.Fprintf(&query, " AND c.skills @> to_jsonb(ARRAY[$%d::text])", len(args))
	}
	if filter.MinExp > 0 {
		args = append(args, filter.MinExp)
		fmt.Fprintf(&query, " AND c.experience_years >= $%d", len(args))
	}

	countQuery := "SELECT COUNT(*) FROM (" + query.String() + ") sub"
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count candidates: %w", err)
	}

	query.WriteString(" ORDER BY c.created_at DESC")
	page, size := normalizePage(filter.Page, filter.PageSize)
	args = append(args, size, (page-1)*size)
	fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var candidates []models.Candidate
	if err := r.db.SelectContext(ctx, &candidates, query.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, total, nil
}

// ListBySkillsAny returns candidates holding at least one of the given skills.
// Used by job matching to bound the scoring set.
func (r *CandidateRepository) ListBySkillsAny(ctx context.Context, skills []string) ([]models.Candidate, error) {
	if len(skills) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM candidates c JOIN users u ON u.id = c.user_id
WHERE EXISTS (SELECT 1 FROM jsonb_array_elements_text(c.skills) s WHERE s = ANY($1))`, candidateColumns)
	var candidates []models.Candidate
	if err := r.db.SelectContext(ctx, &candidates, query, pqStringArray(skills)); err != nil {
		return nil, fmt.Errorf("list candidates by skills: %w", err)
	}
	return candidates, nil
}

// Update applies a partial profile update.
func (r *CandidateRepository) Update(ctx context.Context, id int64, update models.CandidateUpdate) error {
	query := strings.Builder{}
	query.WriteString("UPDATE candidates SET updated_at = NOW()")
	args := []interface{}{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		fmt.Fprintf(&query, ", %s = $%d", column, len(args))
	}
	if update.Phone != nil {
		set("phone", *update.Phone)
	}
	if update.Address != nil {
		set("address", *update.Address)
	}
	if update.City != nil {
		set("city", *update.City)
	}
	if update.Country != nil {
		set("country", *update.Country)
	}
	if update.Skills != nil {
		set("skills", update.Skills)
	}
	if update.ExperienceYears != nil {
		set("experience_years", *update.ExperienceYears)
	}
	if update.CurrentCompany != nil {
		set("current_company", *update.CurrentCompany)
	}
	if update.CurrentPosition != nil {
		set("current_position", *update.CurrentPosition)
	}
	if update.ExpectedCTC != nil {
		set("expected_ctc", *update.ExpectedCTC)
	}
	if update.NoticePeriod != nil {
		set("notice_period", *update.NoticePeriod)
	}
	if update.ResumeURL != nil {
		set("resume_url", *update.ResumeURL)
	}
	if len(args) == 0 {
		return nil
	}
	args = append(args, id)
	fmt.Fprintf(&query, " WHERE id = $%d", len(args))
	if _, err := r.db.ExecContext(ctx, query.String(), args...); err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	return nil
}

// AddDocument records an uploaded document for a candidate.
func (r *CandidateRepository) AddDocument(ctx context.Context, doc *models.CandidateDocument) error {
	doc.UploadedAt = time.Now().UTC()
	const query = `
INSERT INTO candidate_documents (candidate_id, document_type, document_url, file_name, file_size, verified, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	if err := r.db.GetContext(ctx, &doc.ID, query,
		doc.CandidateID, doc.DocumentType, doc.DocumentURL, doc.FileName, doc.FileSize, doc.Verified, doc.UploadedAt); err != nil {
		return fmt.Errorf("insert candidate document: %w", err)
	}
	return nil
}

// ListDocuments returns a candidate's uploaded documents, newest first.
func (r *CandidateRepository) ListDocuments(ctx context.Context, candidateID int64) ([]models.CandidateDocument, error) {
	const query = `SELECT id, candidate_id, document_type, document_url, file_name, file_size, verified, uploaded_at
FROM candidate_documents WHERE candidate_id = $1 ORDER BY uploaded_at DESC`
	var docs []models.CandidateDocument
	if err := r.db.SelectContext(ctx, &docs, query, candidateID); err != nil {
		return nil, fmt.Errorf("list candidate documents: %w", err)
	}
	return docs, nil
}
