package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/internal/service"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
	"github.com/hirepulse/hirepulse-api/pkg/export"
	"github.com/hirepulse/hirepulse-api/pkg/response"
)

// JobHandler exposes posting management, the public board and matching.
type JobHandler struct {
	jobs         *service.JobService
	applications *service.ApplicationService
	csv          *export.CSVExporter
}

// NewJobHandler constructs JobHandler.
func NewJobHandler(jobs *service.JobService, applications *service.ApplicationService, csv *export.CSVExporter) *JobHandler {
	return &JobHandler{jobs: jobs, applications: applications, csv: csv}
}

// Create godoc
// @Summary Create a job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body dto.CreateJobRequest true "Job payload"
// @Success 201 {object} response.Envelope
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, err := h.jobs.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, job)
}

// Get godoc
// @Summary Fetch one job
// @Tags Jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid job id"))
		return
	}
	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// List godoc
// @Summary List jobs
// @Tags Jobs
// @Produce json
// @Param department query string false "Filter by department"
// @Param status query string false "Filter by status"
// @Param search query string false "Title search"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, total, err := h.jobs.List(c.Request.Context(), jobQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, pagination(c, total))
}

// ListPublic godoc
// @Summary Public job board
// @Tags Jobs
// @Produce json
// @Param department query string false "Filter by department"
// @Param search query string false "Title search"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /board/jobs [get]
func (h *JobHandler) ListPublic(c *gin.Context) {
	jobs, total, err := h.jobs.ListPublic(c.Request.Context(), jobQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, pagination(c, total))
}

// Update godoc
// @Summary Edit a job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param payload body dto.UpdateJobRequest true "Job payload"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid job id"))
		return
	}
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, err := h.jobs.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// UpdateStatus godoc
// @Summary Move a posting between states
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param payload body dto.UpdateJobStatusRequest true "Target status"
// @Success 204 "No Content"
// @Router /jobs/{id}/status [put]
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid job id"))
		return
	}
	var req dto.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.jobs.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Matches godoc
// @Summary Rank candidates against a job
// @Tags Jobs
// @Produce json
// @Param id path int true "Job ID"
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/matches [get]
func (h *JobHandler) Matches(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid job id"))
		return
	}
	matches, err := h.jobs.Matches(c.Request.Context(), id, queryInt(c, "limit", 10))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, matches, nil)
}

// ExportApplications godoc
// @Summary Export a job's applications as CSV
// @Tags Jobs
// @Produce text/csv
// @Param id path int true "Job ID"
// @Success 200 {file} binary
// @Router /jobs/{id}/applications/export [get]
func (h *JobHandler) ExportApplications(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid job id"))
		return
	}
	if _, err := h.jobs.Get(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	apps, _, err := h.applications.List(c.Request.Context(), dto.ApplicationQuery{
		JobID:    id,
		Page:     1,
		PageSize: 1000,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	dataset := export.Dataset{
		Headers: []string{"application_id", "candidate_id", "candidate_name", "status", "ai_score", "applied_at"},
		Rows:    make([]map[string]string, 0, len(apps)),
	}
	for _, app := range apps {
		row := map[string]string{
			"application_id": strconv.FormatInt(app.ID, 10),
			"candidate_id":   strconv.FormatInt(app.CandidateID, 10),
			"candidate_name": app.CandidateName,
			"status":         string(app.Status),
			"applied_at":     app.AppliedAt.Format("2006-01-02 15:04:05"),
		}
		if app.AIScore != nil {
			row["ai_score"] = strconv.Itoa(*app.AIScore)
		}
		dataset.Rows = append(dataset.Rows, row)
	}

	out, err := h.csv.Render(dataset)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=job_%d_applications.csv", id))
	c.Data(http.StatusOK, "text/csv", out)
}

func jobQuery(c *gin.Context) dto.JobQuery {
	return dto.JobQuery{
		Department: c.Query("department"),
		Status:     models.JobStatus(c.Query("status")),
		Search:     c.Query("search"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "limit", 20),
	}
}
