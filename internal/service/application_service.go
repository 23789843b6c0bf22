package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

type applicationStore interface {
	Create(ctx context.Context, exec sqlx.ExtContext, app *models.Application) error
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Application, error)
	ExistsActive(ctx context.Context, candidateID, jobID int64) (bool, error)
	List(ctx context.Context, filter dto.ApplicationQuery) ([]dto.ApplicationResponse, int, error)
}

type candidateReader interface {
	GetByID(ctx context.Context, id int64) (*models.Candidate, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Candidate, error)
}

type jobReader interface {
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Job, error)
}

type candidateNotifier interface {
	SendCandidateEvent(ctx context.Context, event, toEmail, candidateName string, userID *int64, payload map[string]string)
}

// ApplicationService handles candidate application submission and listing.
type ApplicationService struct {
	store      applicationStore
	candidates candidateReader
	jobs       jobReader
	notifier   candidateNotifier
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewApplicationService constructs the service.
func NewApplicationService(store applicationStore, candidates candidateReader, jobs jobReader, notifier candidateNotifier, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		store:      store,
		candidates: candidates,
		jobs:       jobs,
		notifier:   notifier,
		validator:  validate,
		logger:     logger,
	}
}

// Submit creates an application for the candidate owned by userID. The
// application payload is auto-filled from the stored profile, a screening
// score is stamped on, and a submission notification is queued.
func (s *ApplicationService) Submit(ctx context.Context, userID int64, req dto.SubmitApplicationRequest) (*models.Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}

	candidate, err := s.candidates.GetByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch candidate")
	}
	if candidate == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "candidate profile not found")
	}

	job, err := s.jobs.GetByID(ctx, nil, req.JobID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch job")
	}
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
	}
	if job.Status != models.JobStatusOpen {
		return nil, appErrors.Clone(appErrors.ErrConflict, "job is not open for applications")
	}

	exists, err := s.store.ExistsActive(ctx, candidate.ID, job.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing applications")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "already applied for this job")
	}

	data := models.JSONMap{}
	for k, v := range req.ApplicationData {
		data[k] = v
	}
	if req.CoverLetter != "" {
		data["cover_letter"] = req.CoverLetter
	}
	data["skills"] = []string(candidate.Skills)
	data["experience_years"] = candidate.ExperienceYears
	if candidate.ExpectedCTC != nil {
		data["expected_ctc"] = *candidate.ExpectedCTC
	}
	if candidate.NoticePeriod != nil {
		data["notice_period"] = *candidate.NoticePeriod
	}

	score := ScreeningScore(len(candidate.Skills), candidate.ExperienceYears)
	app := &models.Application{
		CandidateID:     candidate.ID,
		JobID:           job.ID,
		Status:          models.ApplicationStatusApplied,
		ApplicationData: data,
		AIScore:         &score,
	}
	if err := s.store.Create(ctx, nil, app); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application")
	}

	s.notifier.SendCandidateEvent(ctx, models.EventApplicationSubmitted, candidate.Email, candidate.FullName,
		&candidate.UserID, map[string]string{"job_title": job.Title})

	return app, nil
}

// Get fetches one application.
func (s *ApplicationService) Get(ctx context.Context, id int64) (*models.Application, error) {
	app, err := s.store.GetByID(ctx, nil, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch application")
	}
	if app == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
	}
	return app, nil
}

// List returns applications matching the filter.
func (s *ApplicationService) List(ctx context.Context, filter dto.ApplicationQuery) ([]dto.ApplicationResponse, int, error) {
	apps, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	return apps, total, nil
}

// ListMine returns the portal account owner's applications.
func (s *ApplicationService) ListMine(ctx context.Context, userID int64, filter dto.ApplicationQuery) ([]dto.ApplicationResponse, int, error) {
	candidate, err := s.candidates.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch candidate")
	}
	if candidate == nil {
		return nil, 0, appErrors.Clone(appErrors.ErrNotFound, "candidate profile not found")
	}
	filter.CandidateID = candidate.ID
	return s.List(ctx, filter)
}
