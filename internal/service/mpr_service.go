package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

type mprStore interface {
	Create(ctx context.Context, mpr *models.MPR) error
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.MPR, error)
	List(ctx context.Context, filter dto.MPRQuery) ([]models.MPR, int, error)
	Review(ctx context.Context, id int64, status models.MPRStatus, reviewerID int64, config models.JSONMap) error
	LinkJob(ctx context.Context, id, jobID int64) error
}

// MPRService owns manpower requisitions. Approval freezes the budget
// snapshot offers are later measured against.
type MPRService struct {
	store     mprStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMPRService constructs the service.
func NewMPRService(store mprStore, validate *validator.Validate, logger *zap.Logger) *MPRService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MPRService{store: store, validator: validate, logger: logger}
}

// Create raises a requisition in submitted state.
func (s *MPRService) Create(ctx context.Context, req dto.CreateMPRRequest, requestedBy int64) (*models.MPR, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid requisition payload")
	}

	mpr := &models.MPR{
		RequisitionCode: generateRequisitionCode(),
		Title:           req.Title,
		Department:      req.Department,
		Headcount:       req.Headcount,
		BudgetMin:       req.BudgetMin,
		BudgetMax:       req.BudgetMax,
		RequestedBy:     requestedBy,
		JobID:           req.JobID,
		Status:          models.MPRStatusSubmitted,
	}
	if req.Justification != "" {
		mpr.JustificationID = &req.Justification
	}
	if err := s.store.Create(ctx, mpr); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create requisition")
	}
	return mpr, nil
}

// Get fetches one requisition.
func (s *MPRService) Get(ctx context.Context, id int64) (*models.MPR, error) {
	mpr, err := s.store.GetByID(ctx, nil, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch requisition")
	}
	if mpr == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "requisition not found")
	}
	return mpr, nil
}

// List returns requisitions matching the filter.
func (s *MPRService) List(ctx context.Context, filter dto.MPRQuery) ([]models.MPR, int, error) {
	mprs, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requisitions")
	}
	return mprs, total, nil
}

// Review approves or rejects a submitted requisition. Approval snapshots
// the budget into the config column so later edits to the requisition do
// not shift the variance of offers already measured against it.
func (s *MPRService) Review(ctx context.Context, id int64, req dto.ReviewMPRRequest, reviewerID int64) (*models.MPR, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}

	mpr, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var frozen models.JSONMap
	if req.Status == models.MPRStatusApproved {
		frozen = models.JSONMap{
			"headcount": mpr.Headcount,
			"frozen_at": time.Now().UTC().Format(time.RFC3339),
		}
		if mpr.BudgetMin != nil {
			frozen["budget_min"] = *mpr.BudgetMin
		}
		if mpr.BudgetMax != nil {
			frozen["budget_max"] = *mpr.BudgetMax
		}
	}

	if err := s.store.Review(ctx, id, req.Status, reviewerID, frozen); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "requisition is not awaiting review")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to review requisition")
	}
	return s.Get(ctx, id)
}

// LinkJob attaches a posting created from this requisition.
func (s *MPRService) LinkJob(ctx context.Context, id, jobID int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.LinkJob(ctx, id, jobID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link requisition to job")
	}
	return nil
}

func generateRequisitionCode() string {
	return "MPR-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
