package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/pkg/config"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

type interviewStore interface {
	Create(ctx context.Context, exec sqlx.ExtContext, interview *models.Interview) error
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Interview, error)
	List(ctx context.Context, filter dto.InterviewQuery) ([]models.Interview, int, error)
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status models.InterviewStatus) error
	Reschedule(ctx context.Context, id int64, req dto.RescheduleInterviewRequest) error
	GetEvaluation(ctx context.Context, exec sqlx.ExtContext, interviewID int64) (*models.InterviewEvaluation, error)
	FinalizeEvaluation(ctx context.Context, interview *models.Interview, eval *models.InterviewEvaluation, appStatus models.ApplicationStatus) error
}

type latestApplicationReader interface {
	LatestByCandidate(ctx context.Context, exec sqlx.ExtContext, candidateID int64) (*models.Application, error)
}

// InterviewService owns interview scheduling and evaluation submission.
type InterviewService struct {
	store        interviewStore
	applications latestApplicationReader
	candidates   candidateReader
	jobs         jobReader
	notifier     candidateNotifier
	cfg          config.PipelineConfig
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewInterviewService constructs the service.
func NewInterviewService(store interviewStore, applications latestApplicationReader, candidates candidateReader, jobs jobReader, notifier candidateNotifier, cfg config.PipelineConfig, validate *validator.Validate, logger *zap.Logger) *InterviewService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.InterviewDurationMinutes <= 0 {
		cfg.InterviewDurationMinutes = 60
	}
	return &InterviewService{
		store:        store,
		applications: applications,
		candidates:   candidates,
		jobs:         jobs,
		notifier:     notifier,
		cfg:          cfg,
		validator:    validate,
		logger:       logger,
	}
}

// Schedule creates an interview manually. Unlike auto-scheduling from the
// pipeline, manual creation is not constrained to one active interview per
// candidate-job pair.
func (s *InterviewService) Schedule(ctx context.Context, req dto.ScheduleInterviewRequest, createdBy int64) (*models.Interview, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid interview payload")
	}

	candidate, err := s.candidates.GetByID(ctx, req.CandidateID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch candidate")
	}
	if candidate == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "candidate not found")
	}
	job, err := s.jobs.GetByID(ctx, nil, req.JobID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch job")
	}
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
	}

	interview := &models.Interview{
		CandidateID:     req.CandidateID,
		JobID:           req.JobID,
		Round:           req.Round,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Mode:            req.Mode,
		PanelMembers:    models.Int64List(req.PanelMembers),
		Status:          models.InterviewStatusScheduled,
		CreatedBy:       createdBy,
	}
	if interview.DurationMinutes <= 0 {
		interview.DurationMinutes = s.cfg.InterviewDurationMinutes
	}
	if interview.Mode == "" {
		interview.Mode = models.ModeVideoCall
	}
	if req.MeetingLink != "" {
		interview.MeetingLink = &req.MeetingLink
	}
	if req.Location != "" {
		interview.Location = &req.Location
	}
	if req.Notes != "" {
		interview.Notes = &req.Notes
	}
	if len(interview.PanelMembers) == 0 {
		interview.PanelMembers = models.Int64List{createdBy}
	}

	if err := s.store.Create(ctx, nil, interview); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create interview")
	}

	s.notifier.SendCandidateEvent(ctx, models.EventInterviewScheduled, candidate.Email, candidate.FullName,
		&candidate.UserID, map[string]string{
			"job_title":      job.Title,
			"interview_date": interview.ScheduledAt.Format("2006-01-02"),
			"interview_time": interview.ScheduledAt.Format("15:04"),
			"interview_mode": string(interview.Mode),
		})

	return interview, nil
}

// SubmitEvaluation records the panel verdict. Submissions are idempotent per
// interview: a resubmission overwrites the stored row. The interview is
// forced to completed and the candidate's latest application moves to
// rejected on a failing outcome, interview otherwise. A stale interview id
// does not fail the call: a completed session is synthesized from the
// candidate's latest application instead.
func (s *InterviewService) SubmitEvaluation(ctx context.Context, req dto.SubmitEvaluationRequest, evaluatorID int64) (*dto.EvaluationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "interview_id and candidate_id are required")
	}

	interview, err := s.store.GetByID(ctx, nil, req.InterviewID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch interview")
	}

	synthesized := false
	if interview == nil {
		app, err := s.applications.LatestByCandidate(ctx, nil, req.CandidateID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch latest application")
		}
		if app == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no application found to attach the evaluation to")
		}
		interview = &models.Interview{
			CandidateID:     req.CandidateID,
			JobID:           app.JobID,
			Round:           models.RoundScreening,
			ScheduledAt:     time.Now().UTC(),
			DurationMinutes: s.cfg.InterviewDurationMinutes,
			Mode:            models.ModeVideoCall,
			PanelMembers:    models.Int64List{evaluatorID},
			Status:          models.InterviewStatusCompleted,
			CreatedBy:       evaluatorID,
		}
		synthesized = true
	}

	eval := &models.InterviewEvaluation{
		EvaluatorID:         evaluatorID,
		TechnicalRating:     req.TechnicalRating,
		CommunicationRating: req.CommunicationRating,
		CulturalFitRating:   req.CulturalFitRating,
		OverallRating:       req.OverallRating,
		Outcome:             req.Outcome,
	}
	if req.Recommendation != "" {
		eval.Recommendation = &req.Recommendation
	}
	if req.Feedback != "" {
		eval.Feedback = &req.Feedback
	}

	appStatus := models.ApplicationStatusInterview
	if models.OutcomeRejects(req.Outcome) {
		appStatus = models.ApplicationStatusRejected
	}

	if err := s.store.FinalizeEvaluation(ctx, interview, eval, appStatus); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record evaluation")
	}

	if appStatus == models.ApplicationStatusRejected {
		if candidate, err := s.candidates.GetByID(ctx, interview.CandidateID); err == nil && candidate != nil {
			jobTitle := ""
			if job, err := s.jobs.GetByID(ctx, nil, interview.JobID); err == nil && job != nil {
				jobTitle = job.Title
			}
			s.notifier.SendCandidateEvent(ctx, models.EventRejected, candidate.Email, candidate.FullName,
				&candidate.UserID, map[string]string{"job_title": jobTitle})
		}
	}

	return &dto.EvaluationResult{
		Evaluation:           eval,
		Interview:            interview,
		InterviewSynthesized: synthesized,
		ApplicationStatus:    appStatus,
	}, nil
}

// Get fetches one interview.
func (s *InterviewService) Get(ctx context.Context, id int64) (*models.Interview, error) {
	interview, err := s.store.GetByID(ctx, nil, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch interview")
	}
	if interview == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "interview not found")
	}
	return interview, nil
}

// GetEvaluation fetches the evaluation submitted for an interview.
func (s *InterviewService) GetEvaluation(ctx context.Context, interviewID int64) (*models.InterviewEvaluation, error) {
	eval, err := s.store.GetEvaluation(ctx, nil, interviewID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch evaluation")
	}
	if eval == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "evaluation not found")
	}
	return eval, nil
}

// List returns interviews matching the filter.
func (s *InterviewService) List(ctx context.Context, filter dto.InterviewQuery) ([]models.Interview, int, error) {
	interviews, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list interviews")
	}
	return interviews, total, nil
}

// Reschedule moves a scheduled interview to a new slot.
func (s *InterviewService) Reschedule(ctx context.Context, id int64, req dto.RescheduleInterviewRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reschedule payload")
	}
	if err := s.store.Reschedule(ctx, id, req); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrConflict, "interview is not in a reschedulable state")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reschedule interview")
	}
	return nil
}

// UpdateStatus moves an interview between lifecycle states.
func (s *InterviewService) UpdateStatus(ctx context.Context, id int64, status models.InterviewStatus) error {
	switch status {
	case models.InterviewStatusScheduled, models.InterviewStatusCompleted,
		models.InterviewStatusCancelled, models.InterviewStatusNoShow:
	default:
		return appErrors.Clone(appErrors.ErrUnsupportedStatus, "unsupported interview status")
	}
	if err := s.store.UpdateStatus(ctx, nil, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "interview not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update interview status")
	}
	return nil
}
