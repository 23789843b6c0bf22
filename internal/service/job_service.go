package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

type jobStore interface {
	jobReader
	Create(ctx context.Context, job *models.Job) error
	List(ctx context.Context, filter dto.JobQuery) ([]models.Job, int, error)
	Update(ctx context.Context, id int64, update dto.UpdateJobRequest) error
	UpdateStatus(ctx context.Context, id int64, status models.JobStatus) error
}

type matchCandidateReader interface {
	ListBySkillsAny(ctx context.Context, skills []string) ([]models.Candidate, error)
}

// JobService owns job posting management and candidate matching.
type JobService struct {
	store      jobStore
	candidates matchCandidateReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewJobService constructs the service.
func NewJobService(store jobStore, candidates matchCandidateReader, validate *validator.Validate, logger *zap.Logger) *JobService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{store: store, candidates: candidates, validator: validate, logger: logger}
}

// Create inserts a new posting in draft state.
func (s *JobService) Create(ctx context.Context, req dto.CreateJobRequest, managerID int64) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	job := &models.Job{
		Title:              req.Title,
		Description:        req.Description,
		Department:         req.Department,
		ExperienceRequired: req.ExperienceRequired,
		BudgetMin:          req.BudgetMin,
		BudgetMax:          req.BudgetMax,
		SkillsRequired:     models.StringList(req.SkillsRequired),
		Status:             models.JobStatusDraft,
		Visibility:         req.Visibility,
	}
	if req.Location != "" {
		job.Location = &req.Location
	}
	if req.JobType != "" {
		job.JobType = &req.JobType
	}
	if req.Responsibilities != "" {
		job.Responsibilities = &req.Responsibilities
	}
	if req.Requirements != "" {
		job.Requirements = &req.Requirements
	}
	if req.ManagerID != nil {
		job.ManagerID = req.ManagerID
	} else if managerID > 0 {
		job.ManagerID = &managerID
	}

	if err := s.store.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create job")
	}
	return job, nil
}

// Get fetches one job.
func (s *JobService) Get(ctx context.Context, id int64) (*models.Job, error) {
	job, err := s.store.GetByID(ctx, nil, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch job")
	}
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
	}
	return job, nil
}

// List returns jobs matching the filter.
func (s *JobService) List(ctx context.Context, filter dto.JobQuery) ([]models.Job, int, error) {
	jobs, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	return jobs, total, nil
}

// ListPublic returns the open, publicly visible job board.
func (s *JobService) ListPublic(ctx context.Context, filter dto.JobQuery) ([]models.Job, int, error) {
	filter.Status = models.JobStatusOpen
	jobs, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	visible := jobs[:0]
	for _, job := range jobs {
		if job.Visibility == "public" {
			visible = append(visible, job)
		}
	}
	return visible, total, nil
}

// Update applies a partial edit to a posting.
func (s *JobService) Update(ctx context.Context, id int64, req dto.UpdateJobRequest) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, id, req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	return s.Get(ctx, id)
}

// UpdateStatus moves a posting between states.
func (s *JobService) UpdateStatus(ctx context.Context, id int64, status models.JobStatus) error {
	switch status {
	case models.JobStatusDraft, models.JobStatusOpen, models.JobStatusClosed,
		models.JobStatusFilled, models.JobStatusCancelled:
	default:
		return appErrors.Clone(appErrors.ErrUnsupportedStatus, "unsupported job status")
	}
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job status")
	}
	return nil
}

// Matches ranks candidates against a job by compatibility score, best first.
func (s *JobService) Matches(ctx context.Context, jobID int64, limit int) ([]dto.JobMatchResponse, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	candidates, err := s.candidates.ListBySkillsAny(ctx, job.SkillsRequired)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list candidates")
	}

	matches := make([]dto.JobMatchResponse, 0, len(candidates))
	for _, candidate := range candidates {
		profile := MatchProfile{
			Skills:          candidate.Skills,
			ExperienceYears: candidate.ExperienceYears,
			HasEducation:    candidate.ResumeURL != nil,
		}
		if candidate.City != nil {
			profile.Location = *candidate.City
		}
		suggestions := Suggestions(profile, job)
		matches = append(matches, dto.JobMatchResponse{
			CandidateID:     candidate.ID,
			CandidateName:   candidate.FullName,
			Score:           MatchScore(profile, job),
			MatchedSkills:   suggestions.MatchedSkills,
			MissingSkills:   suggestions.MissingSkills,
			ExperienceYears: candidate.ExperienceYears,
		})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
