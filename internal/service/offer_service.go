package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/internal/repository"
	"github.com/hirepulse/hirepulse-api/pkg/config"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

type offerStore interface {
	CreateWithCascade(ctx context.Context, offer *models.Offer) error
	SaveWithCascade(ctx context.Context, offer *models.Offer, appStatus models.ApplicationStatus) error
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Offer, error)
	List(ctx context.Context, filter dto.OfferQuery) ([]models.Offer, int, error)
}

type mprReader interface {
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.MPR, error)
	GetApprovedByJobID(ctx context.Context, exec sqlx.ExtContext, jobID int64) (*models.MPR, error)
}

// OfferService owns the offer lifecycle: release, budget gating, recruiter
// and candidate status moves, joining requests and approval.
type OfferService struct {
	store      offerStore
	candidates candidateReader
	jobs       jobReader
	mprs       mprReader
	notifier   candidateNotifier
	cfg        config.PipelineConfig
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewOfferService constructs the service.
func NewOfferService(store offerStore, candidates candidateReader, jobs jobReader, mprs mprReader, notifier candidateNotifier, cfg config.PipelineConfig, validate *validator.Validate, logger *zap.Logger) *OfferService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.OfferValidityDays <= 0 {
		cfg.OfferValidityDays = 15
	}
	return &OfferService{
		store:      store,
		candidates: candidates,
		jobs:       jobs,
		mprs:       mprs,
		notifier:   notifier,
		cfg:        cfg,
		validator:  validate,
		logger:     logger,
	}
}

// Release creates an offer. ctc_total is derived from the four compensation
// components; variance_percent measures the total against the budget ceiling
// (the job's budget_max, or the frozen budget of the backing approved
// requisition when the job carries none); requires_approval is set iff the
// offer exceeds the ceiling. The candidate's latest application moves to
// offered in the same transaction.
func (s *OfferService) Release(ctx context.Context, req dto.ReleaseOfferRequest, offeredBy int64) (*models.Offer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid offer payload")
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

	budgetMax, mprID := s.resolveBudget(ctx, job, req.MPRID)

	offer := &models.Offer{
		OfferCode:       generateOfferCode(),
		CandidateID:     req.CandidateID,
		JobID:           req.JobID,
		MPRID:           mprID,
		CTCFixed:        req.CTCFixed,
		CTCVariable:     req.CTCVariable,
		JoiningBonus:    req.JoiningBonus,
		RelocationBonus: req.RelocationBonus,
		Status:          models.OfferStatusOffered,
		ValidUntil:      req.ValidUntil,
		JoiningDate:     req.JoiningDate,
		OtherBenefits:   req.OtherBenefits,
		OfferedBy:       offeredBy,
	}
	offer.ComputeCTCTotal()
	offer.VariancePercent = variancePercent(offer.CTCTotal, budgetMax)
	offer.RequiresApproval = offer.VariancePercent > 0
	if offer.ValidUntil == nil {
		until := time.Now().UTC().AddDate(0, 0, s.cfg.OfferValidityDays)
		offer.ValidUntil = &until
	}

	if err := s.store.CreateWithCascade(ctx, offer); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrIntegrity, "offer could not be created, verify candidate and job ids")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create offer")
	}

	s.notifier.SendCandidateEvent(ctx, models.EventOfferReleased, candidate.Email, candidate.FullName,
		&candidate.UserID, map[string]string{"job_title": job.Title})

	return offer, nil
}

// UpdateStatus applies a recruiter-side offer move. joined is terminal:
// any update against a joined offer returns a conflict. Side effects
// cascade onto the candidate's latest application in the same transaction.
func (s *OfferService) UpdateStatus(ctx context.Context, offerID int64, req dto.UpdateOfferStatusRequest) (*models.Offer, error) {
	if _, ok := models.AllowedOfferStatuses[req.Status]; !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedStatus, fmt.Sprintf("unsupported offer status %q", req.Status))
	}

	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.Status == models.OfferStatusJoined {
		return nil, appErrors.Clone(appErrors.ErrConflict, "offer is already finalized")
	}

	now := time.Now().UTC()
	appStatus := models.ApplicationStatus("")
	notifyEvent := ""

	switch req.Status {
	case models.OfferStatusAccepted:
		offer.AcceptedAt = &now
		appStatus = models.ApplicationStatusOffered
	case models.OfferStatusDeclined:
		appStatus = models.ApplicationStatusRejected
		notifyEvent = models.EventRejected
	case models.OfferStatusJoined:
		joiningDate := now
		if req.JoiningDate != nil {
			joiningDate = *req.JoiningDate
		} else if offer.JoiningDate != nil {
			joiningDate = *offer.JoiningDate
		}
		offer.JoiningDate = &joiningDate
		jr, _ := offer.GetJoiningRequest()
		jr.Status = models.JoiningRequestApproved
		if jr.RequestedAt == "" {
			jr.RequestedAt = now.Format(time.RFC3339)
		}
		offer.SetJoiningRequest(jr)
		appStatus = models.ApplicationStatusJoined
		notifyEvent = models.EventJoined
	}
	offer.Status = req.Status
	offer.ComputeCTCTotal()

	if err := s.store.SaveWithCascade(ctx, offer, appStatus); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update offer")
	}

	if notifyEvent != "" {
		s.notifyOffer(ctx, offer, notifyEvent)
	}
	return offer, nil
}

// Decide records the candidate's own accept/decline choice. Only the offer's
// candidate may decide, only accepted/declined are legal inputs, and a
// joined offer admits no further decision.
func (s *OfferService) Decide(ctx context.Context, offerID, candidateUserID int64, req dto.OfferDecisionRequest) (*models.Offer, error) {
	decision := models.OfferStatus(strings.ToLower(strings.TrimSpace(req.Decision)))
	if decision != models.OfferStatusAccepted && decision != models.OfferStatusDeclined {
		return nil, appErrors.Clone(appErrors.ErrValidation, "decision must be accepted or declined")
	}

	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, offer, candidateUserID); err != nil {
		return nil, err
	}
	if offer.Status == models.OfferStatusJoined {
		return nil, appErrors.Clone(appErrors.ErrConflict, "offer is already finalized")
	}

	now := time.Now().UTC()
	appStatus := models.ApplicationStatusOffered
	if decision == models.OfferStatusAccepted {
		offer.AcceptedAt = &now
	} else {
		appStatus = models.ApplicationStatusRejected
	}
	offer.Status = decision
	offer.ComputeCTCTotal()

	if err := s.store.SaveWithCascade(ctx, offer, appStatus); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record decision")
	}
	return offer, nil
}

// RequestJoining files the candidate's joining request on an accepted offer.
func (s *OfferService) RequestJoining(ctx context.Context, offerID, candidateUserID int64, req dto.JoiningRequestPayload) (*models.Offer, error) {
	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, offer, candidateUserID); err != nil {
		return nil, err
	}
	if offer.Status != models.OfferStatusAccepted {
		return nil, appErrors.Clone(appErrors.ErrConflict, "joining can only be requested on an accepted offer")
	}

	offer.SetJoiningRequest(models.JoiningRequest{
		RequestedDate: req.RequestedDate,
		Note:          req.Note,
		RequestedAt:   time.Now().UTC().Format(time.RFC3339),
		Status:        models.JoiningRequestPending,
	})
	offer.ComputeCTCTotal()

	if err := s.store.SaveWithCascade(ctx, offer, ""); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record joining request")
	}
	return offer, nil
}

// Approve clears the over-budget approval flag. A pure administrative audit
// action: the offer status is left untouched.
func (s *OfferService) Approve(ctx context.Context, offerID, approverID int64) (*models.Offer, error) {
	offer, err := s.getOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	offer.RequiresApproval = false
	offer.ApprovedBy = &approverID
	offer.ApprovedAt = &now
	offer.ComputeCTCTotal()

	if err := s.store.SaveWithCascade(ctx, offer, ""); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve offer")
	}
	return offer, nil
}

// Get fetches one offer.
func (s *OfferService) Get(ctx context.Context, id int64) (*models.Offer, error) {
	return s.getOffer(ctx, id)
}

// GetForCandidate fetches one offer enforcing candidate ownership.
func (s *OfferService) GetForCandidate(ctx context.Context, id, candidateUserID int64) (*models.Offer, error) {
	offer, err := s.getOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, offer, candidateUserID); err != nil {
		return nil, err
	}
	return offer, nil
}

// List returns offers matching the filter.
func (s *OfferService) List(ctx context.Context, filter dto.OfferQuery) ([]models.Offer, int, error) {
	offers, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list offers")
	}
	return offers, total, nil
}

// ListMine returns the portal account owner's offers.
func (s *OfferService) ListMine(ctx context.Context, userID int64, filter dto.OfferQuery) ([]models.Offer, int, error) {
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

func (s *OfferService) getOffer(ctx context.Context, id int64) (*models.Offer, error) {
	offer, err := s.store.GetByID(ctx, nil, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch offer")
	}
	if offer == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "offer not found")
	}
	return offer, nil
}

func (s *OfferService) checkOwnership(ctx context.Context, offer *models.Offer, candidateUserID int64) error {
	candidate, err := s.candidates.GetByUserID(ctx, candidateUserID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch candidate")
	}
	if candidate == nil || candidate.ID != offer.CandidateID {
		return appErrors.Clone(appErrors.ErrForbidden, "offer does not belong to this candidate")
	}
	return nil
}

// resolveBudget picks the ceiling the offer is measured against: the job's
// own budget_max when present, otherwise the frozen budget of the backing
// approved requisition. Lookup failures degrade to no ceiling (variance 0).
func (s *OfferService) resolveBudget(ctx context.Context, job *models.Job, mprID *int64) (float64, *int64) {
	if job.BudgetMax != nil && *job.BudgetMax > 0 {
		return *job.BudgetMax, mprID
	}
	var mpr *models.MPR
	var err error
	if mprID != nil {
		mpr, err = s.mprs.GetByID(ctx, nil, *mprID)
	} else {
		mpr, err = s.mprs.GetApprovedByJobID(ctx, nil, job.ID)
	}
	if err != nil {
		s.logger.Warn("budget lookup failed, releasing without ceiling", zap.Int64("job_id", job.ID), zap.Error(err))
		return 0, mprID
	}
	if mpr == nil {
		return 0, mprID
	}
	id := mpr.ID
	if budget, ok := mpr.FrozenBudgetMax(); ok {
		return budget, &id
	}
	return 0, &id
}

func (s *OfferService) notifyOffer(ctx context.Context, offer *models.Offer, event string) {
	candidate, err := s.candidates.GetByID(ctx, offer.CandidateID)
	if err != nil || candidate == nil {
		s.logger.Warn("skipping offer notification, candidate lookup failed",
			zap.Int64("candidate_id", offer.CandidateID), zap.Error(err))
		return
	}
	jobTitle := ""
	if job, err := s.jobs.GetByID(ctx, nil, offer.JobID); err == nil && job != nil {
		jobTitle = job.Title
	}
	s.notifier.SendCandidateEvent(ctx, event, candidate.Email, candidate.FullName,
		&candidate.UserID, map[string]string{"job_title": jobTitle})
}

// variancePercent measures total compensation against the budget ceiling,
// rounded to two decimals. No ceiling means no variance.
func variancePercent(total, budgetMax float64) float64 {
	if budgetMax <= 0 {
		return 0
	}
	return math.Round((total-budgetMax)/budgetMax*100*100) / 100
}

func generateOfferCode() string {
	return "OFFER-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
