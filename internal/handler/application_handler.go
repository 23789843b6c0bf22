package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/internal/service"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
	"github.com/hirepulse/hirepulse-api/pkg/response"
)

// ApplicationHandler exposes application submission and pipeline endpoints.
type ApplicationHandler struct {
	applications *service.ApplicationService
	pipeline     *service.PipelineService
	metrics      *service.MetricsService
}

// NewApplicationHandler constructs ApplicationHandler.
func NewApplicationHandler(applications *service.ApplicationService, pipeline *service.PipelineService, metrics *service.MetricsService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, pipeline: pipeline, metrics: metrics}
}

// Submit godoc
// @Summary Apply for a job
// @Tags Applications
// @Accept json
// @Produce json
// @Param payload body dto.SubmitApplicationRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	app, err := h.applications.Submit(c.Request.Context(), actorID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, app)
}

// Get godoc
// @Summary Fetch one application
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Envelope
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid application id"))
		return
	}
	app, err := h.applications.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, app, nil)
}

// List godoc
// @Summary List applications
// @Tags Applications
// @Produce json
// @Param job_id query int false "Filter by job"
// @Param candidate_id query int false "Filter by candidate"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := dto.ApplicationQuery{
		JobID:       queryInt64(c, "job_id"),
		CandidateID: queryInt64(c, "candidate_id"),
		Status:      models.ApplicationStatus(c.Query("status")),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "limit", 20),
	}
	apps, total, err := h.applications.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps, pagination(c, total))
}

// ListMine godoc
// @Summary List the caller's own applications
// @Tags Applications
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /my/applications [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	filter := dto.ApplicationQuery{
		Status:   models.ApplicationStatus(c.Query("status")),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "limit", 20),
	}
	apps, total, err := h.applications.ListMine(c.Request.Context(), actorID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps, pagination(c, total))
}

// UpdateStatus godoc
// @Summary Move an application through the pipeline
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param payload body dto.UpdateApplicationStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid application id"))
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.pipeline.Transition(c.Request.Context(), id, req.Status, actorID(c), req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveTransition(string(req.Status))
	response.JSON(c, http.StatusOK, result, nil)
}
