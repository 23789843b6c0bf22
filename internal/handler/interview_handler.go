package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/internal/service"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
	"github.com/hirepulse/hirepulse-api/pkg/response"
)

// InterviewHandler exposes interview scheduling and evaluation endpoints.
type InterviewHandler struct {
	interviews *service.InterviewService
}

// NewInterviewHandler constructs InterviewHandler.
func NewInterviewHandler(interviews *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

// Schedule godoc
// @Summary Schedule an interview
// @Tags Interviews
// @Accept json
// @Produce json
// @Param payload body dto.ScheduleInterviewRequest true "Interview payload"
// @Success 201 {object} response.Envelope
// @Router /interviews [post]
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req dto.ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	interview, err := h.interviews.Schedule(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, interview)
}

// Get godoc
// @Summary Fetch one interview
// @Tags Interviews
// @Produce json
// @Param id path int true "Interview ID"
// @Success 200 {object} response.Envelope
// @Router /interviews/{id} [get]
func (h *InterviewHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid interview id"))
		return
	}
	interview, err := h.interviews.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, interview, nil)
}

// List godoc
// @Summary List interviews
// @Tags Interviews
// @Produce json
// @Param candidate_id query int false "Filter by candidate"
// @Param job_id query int false "Filter by job"
// @Param status query string false "Filter by status"
// @Param from query string false "Scheduled-at lower bound (RFC3339)"
// @Param to query string false "Scheduled-at upper bound (RFC3339)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /interviews [get]
func (h *InterviewHandler) List(c *gin.Context) {
	filter := dto.InterviewQuery{
		CandidateID: queryInt64(c, "candidate_id"),
		JobID:       queryInt64(c, "job_id"),
		Status:      models.InterviewStatus(c.Query("status")),
		PanelMember: queryInt64(c, "panel_member"),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "limit", 20),
	}
	if raw := c.Query("from"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.From = &ts
		}
	}
	if raw := c.Query("to"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.To = &ts
		}
	}
	interviews, total, err := h.interviews.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, interviews, pagination(c, total))
}

// Reschedule godoc
// @Summary Move an interview to a new slot
// @Tags Interviews
// @Accept json
// @Produce json
// @Param id path int true "Interview ID"
// @Param payload body dto.RescheduleInterviewRequest true "Reschedule payload"
// @Success 200 {object} response.Envelope
// @Router /interviews/{id}/reschedule [put]
func (h *InterviewHandler) Reschedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid interview id"))
		return
	}
	var req dto.RescheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.interviews.Reschedule(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	interview, err := h.interviews.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, interview, nil)
}

// UpdateStatus godoc
// @Summary Update interview lifecycle status
// @Tags Interviews
// @Accept json
// @Produce json
// @Param id path int true "Interview ID"
// @Success 200 {object} response.Envelope
// @Router /interviews/{id}/status [put]
func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid interview id"))
		return
	}
	var req struct {
		Status models.InterviewStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.interviews.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SubmitEvaluation godoc
// @Summary Submit the panel verdict for an interview
// @Tags Interviews
// @Accept json
// @Produce json
// @Param payload body dto.SubmitEvaluationRequest true "Evaluation payload"
// @Success 200 {object} response.Envelope
// @Router /interviews/evaluations [post]
func (h *InterviewHandler) SubmitEvaluation(c *gin.Context) {
	var req dto.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.interviews.SubmitEvaluation(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetEvaluation godoc
// @Summary Fetch the evaluation for an interview
// @Tags Interviews
// @Produce json
// @Param id path int true "Interview ID"
// @Success 200 {object} response.Envelope
// @Router /interviews/{id}/evaluation [get]
func (h *InterviewHandler) GetEvaluation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid interview id"))
		return
	}
	eval, err := h.interviews.GetEvaluation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, eval, nil)
}
