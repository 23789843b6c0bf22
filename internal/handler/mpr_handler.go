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

// MPRHandler exposes manpower requisition endpoints.
type MPRHandler struct {
	mprs *service.MPRService
}

// NewMPRHandler constructs MPRHandler.
func NewMPRHandler(mprs *service.MPRService) *MPRHandler {
	return &MPRHandler{mprs: mprs}
}

// Create godoc
// @Summary Raise a manpower requisition
// @Tags Requisitions
// @Accept json
// @Produce json
// @Param payload body dto.CreateMPRRequest true "Requisition payload"
// @Success 201 {object} response.Envelope
// @Router /mprs [post]
func (h *MPRHandler) Create(c *gin.Context) {
	var req dto.CreateMPRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	mpr, err := h.mprs.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mpr)
}

// Get godoc
// @Summary Fetch one requisition
// @Tags Requisitions
// @Produce json
// @Param id path int true "Requisition ID"
// @Success 200 {object} response.Envelope
// @Router /mprs/{id} [get]
func (h *MPRHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid requisition id"))
		return
	}
	mpr, err := h.mprs.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mpr, nil)
}

// List godoc
// @Summary List requisitions
// @Tags Requisitions
// @Produce json
// @Param department query string false "Filter by department"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /mprs [get]
func (h *MPRHandler) List(c *gin.Context) {
	filter := dto.MPRQuery{
		Department: c.Query("department"),
		Status:     models.MPRStatus(c.Query("status")),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "limit", 20),
	}
	mprs, total, err := h.mprs.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mprs, pagination(c, total))
}

// Review godoc
// @Summary Approve or reject a submitted requisition
// @Tags Requisitions
// @Accept json
// @Produce json
// @Param id path int true "Requisition ID"
// @Param payload body dto.ReviewMPRRequest true "Review payload"
// @Success 200 {object} response.Envelope
// @Router /mprs/{id}/review [post]
func (h *MPRHandler) Review(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid requisition id"))
		return
	}
	var req dto.ReviewMPRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	mpr, err := h.mprs.Review(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mpr, nil)
}

// LinkJob godoc
// @Summary Attach a posting created from this requisition
// @Tags Requisitions
// @Accept json
// @Produce json
// @Param id path int true "Requisition ID"
// @Success 204 "No Content"
// @Router /mprs/{id}/link-job [post]
func (h *MPRHandler) LinkJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid requisition id"))
		return
	}
	var req struct {
		JobID int64 `json:"job_id" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.mprs.LinkJob(c.Request.Context(), id, req.JobID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
