package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/internal/repository"
	"github.com/hirepulse/hirepulse-api/pkg/config"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

type pipelineStore interface {
	Transition(ctx context.Context, id int64, status models.ApplicationStatus, notes *string, autoInterview *models.Interview) (*repository.TransitionOutcome, error)
}

// PipelineService is the application status transition engine. It validates
// the target status against the allow-list, applies the move together with
// its derived side effects in one transaction, and queues candidate
// notifications after the commit.
//
// The flow is quasi-linear (applied, screening, shortlisted, interview,
// offered, joined, with rejected and hold as jumps); legality is checked
// against the allow-list only, so direct jumps like applied to rejected
// stay legal.
type PipelineService struct {
	store      pipelineStore
	candidates candidateReader
	jobs       jobReader
	notifier   candidateNotifier
	cfg        config.PipelineConfig
	logger     *zap.Logger
}

// NewPipelineService constructs the transition engine.
func NewPipelineService(store pipelineStore, candidates candidateReader, jobs jobReader, notifier candidateNotifier, cfg config.PipelineConfig, logger *zap.Logger) *PipelineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.InterviewLeadTime <= 0 {
		cfg.InterviewLeadTime = 24 * time.Hour
	}
	if cfg.InterviewDurationMinutes <= 0 {
		cfg.InterviewDurationMinutes = 60
	}
	return &PipelineService{
		store:      store,
		candidates: candidates,
		jobs:       jobs,
		notifier:   notifier,
		cfg:        cfg,
		logger:     logger,
	}
}

// Transition moves an application to the target status on behalf of actorID.
// Entering shortlisted auto-schedules a screening interview when the
// candidate-job pair has none in a scheduled or completed state.
func (s *PipelineService) Transition(ctx context.Context, applicationID int64, target models.ApplicationStatus, actorID int64, notes string) (*dto.StatusTransitionResult, error) {
	if _, ok := models.AllowedApplicationStatuses[target]; !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedStatus, fmt.Sprintf("unsupported application status %q", target))
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	var autoInterview *models.Interview
	if target == models.ApplicationStatusShortlisted {
		autoInterview = &models.Interview{
			Round:           models.RoundScreening,
			ScheduledAt:     time.Now().UTC().Add(s.cfg.InterviewLeadTime),
			DurationMinutes: s.cfg.InterviewDurationMinutes,
			Mode:            models.ModeVideoCall,
			PanelMembers:    models.Int64List{actorID},
			Status:          models.InterviewStatusScheduled,
			CreatedBy:       actorID,
		}
	}

	outcome, err := s.store.Transition(ctx, applicationID, target, notesPtr, autoInterview)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application status")
	}

	s.notifyTransition(ctx, outcome, autoInterview)

	result := &dto.StatusTransitionResult{
		Application:          outcome.Application,
		PreviousStatus:       outcome.PreviousStatus,
		InterviewAutoCreated: outcome.InterviewCreated,
	}
	if outcome.InterviewCreated {
		id := outcome.InterviewID
		result.InterviewID = &id
	}
	return result, nil
}

// notifyTransition queues the candidate-facing messages for a committed
// move. Lookup or delivery problems are logged and swallowed.
func (s *PipelineService) notifyTransition(ctx context.Context, outcome *repository.TransitionOutcome, autoInterview *models.Interview) {
	app := outcome.Application

	var event string
	switch app.Status {
	case models.ApplicationStatusShortlisted:
		event = models.EventSelected
	case models.ApplicationStatusRejected:
		event = models.EventRejected
	default:
		if !outcome.InterviewCreated {
			return
		}
	}

	candidate, err := s.candidates.GetByID(ctx, app.CandidateID)
	if err != nil || candidate == nil {
		s.logger.Warn("skipping transition notification, candidate lookup failed",
			zap.Int64("candidate_id", app.CandidateID), zap.Error(err))
		return
	}
	jobTitle := ""
	if job, err := s.jobs.GetByID(ctx, nil, app.JobID); err == nil && job != nil {
		jobTitle = job.Title
	}

	if event != "" {
		s.notifier.SendCandidateEvent(ctx, event, candidate.Email, candidate.FullName,
			&candidate.UserID, map[string]string{"job_title": jobTitle})
	}
	if outcome.InterviewCreated && autoInterview != nil {
		s.notifier.SendCandidateEvent(ctx, models.EventInterviewScheduled, candidate.Email, candidate.FullName,
			&candidate.UserID, map[string]string{
				"job_title":      jobTitle,
				"interview_date": autoInterview.ScheduledAt.Format("2006-01-02"),
				"interview_time": autoInterview.ScheduledAt.Format("15:04"),
				"interview_mode": string(autoInterview.Mode),
			})
	}
}
