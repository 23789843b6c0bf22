package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/internal/service"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
	"github.com/hirepulse/hirepulse-api/pkg/export"
	"github.com/hirepulse/hirepulse-api/pkg/response"
)

// OfferHandler exposes offer lifecycle endpoints for recruiters and managers.
type OfferHandler struct {
	offers     *service.OfferService
	candidates *service.CandidateService
	jobs       *service.JobService
	letters    *export.OfferLetterRenderer
}

// NewOfferHandler constructs OfferHandler.
func NewOfferHandler(offers *service.OfferService, candidates *service.CandidateService, jobs *service.JobService, letters *export.OfferLetterRenderer) *OfferHandler {
	return &OfferHandler{offers: offers, candidates: candidates, jobs: jobs, letters: letters}
}

// Release godoc
// @Summary Release a compensation offer
// @Tags Offers
// @Accept json
// @Produce json
// @Param payload body dto.ReleaseOfferRequest true "Offer payload"
// @Success 201 {object} response.Envelope
// @Router /offers [post]
func (h *OfferHandler) Release(c *gin.Context) {
	var req dto.ReleaseOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offer, err := h.offers.Release(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, offer)
}

// Get godoc
// @Summary Fetch one offer
// @Tags Offers
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} response.Envelope
// @Router /offers/{id} [get]
func (h *OfferHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid offer id"))
		return
	}
	offer, err := h.offers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offer, nil)
}

// List godoc
// @Summary List offers
// @Tags Offers
// @Produce json
// @Param candidate_id query int false "Filter by candidate"
// @Param job_id query int false "Filter by job"
// @Param status query string false "Filter by status"
// @Param requires_approval query bool false "Only offers pending approval"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /offers [get]
func (h *OfferHandler) List(c *gin.Context) {
	filter := dto.OfferQuery{
		CandidateID: queryInt64(c, "candidate_id"),
		JobID:       queryInt64(c, "job_id"),
		Status:      models.OfferStatus(c.Query("status")),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "limit", 20),
	}
	if raw := c.Query("requires_approval"); raw != "" {
		pending := raw == "true" || raw == "1"
		filter.RequiresApproval = &pending
	}
	offers, total, err := h.offers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offers, pagination(c, total))
}

// UpdateStatus godoc
// @Summary Update offer status
// @Tags Offers
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Param payload body dto.UpdateOfferStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /offers/{id}/status [put]
func (h *OfferHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid offer id"))
		return
	}
	var req dto.UpdateOfferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offer, err := h.offers.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offer, nil)
}

// Approve godoc
// @Summary Sign off an over-budget offer
// @Tags Offers
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} response.Envelope
// @Router /offers/{id}/approve [post]
func (h *OfferHandler) Approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid offer id"))
		return
	}
	offer, err := h.offers.Approve(c.Request.Context(), id, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offer, nil)
}

// ListMine godoc
// @Summary List the caller's own offers
// @Tags Offers
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /my/offers [get]
func (h *OfferHandler) ListMine(c *gin.Context) {
	filter := dto.OfferQuery{
		Status:   models.OfferStatus(c.Query("status")),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "limit", 20),
	}
	offers, total, err := h.offers.ListMine(c.Request.Context(), actorID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offers, pagination(c, total))
}

// GetMine godoc
// @Summary Fetch one of the caller's offers
// @Tags Offers
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} response.Envelope
// @Router /offers/{id}/mine [get]
func (h *OfferHandler) GetMine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid offer id"))
		return
	}
	offer, err := h.offers.GetForCandidate(c.Request.Context(), id, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offer, nil)
}

// Decide godoc
// @Summary Accept or decline an offer as the candidate
// @Tags Offers
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Param payload body dto.OfferDecisionRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /offers/{id}/decision [post]
func (h *OfferHandler) Decide(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid offer id"))
		return
	}
	var req dto.OfferDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offer, err := h.offers.Decide(c.Request.Context(), id, actorID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offer, nil)
}

// RequestJoining godoc
// @Summary Request a joining date on an accepted offer
// @Tags Offers
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Param payload body dto.JoiningRequestPayload true "Joining request"
// @Success 200 {object} response.Envelope
// @Router /offers/{id}/joining-request [post]
func (h *OfferHandler) RequestJoining(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid offer id"))
		return
	}
	var req dto.JoiningRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offer, err := h.offers.RequestJoining(c.Request.Context(), id, actorID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offer, nil)
}

// Letter godoc
// @Summary Download the offer letter as PDF
// @Tags Offers
// @Produce application/pdf
// @Param id path int true "Offer ID"
// @Success 200 {file} binary
// @Router /offers/{id}/letter [get]
func (h *OfferHandler) Letter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid offer id"))
		return
	}
	offer, err := h.offers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := export.OfferLetterData{
		OfferCode:       offer.OfferCode,
		CTCFixed:        offer.CTCFixed,
		CTCVariable:     offer.CTCVariable,
		JoiningBonus:    offer.JoiningBonus,
		RelocationBonus: offer.RelocationBonus,
		CTCTotal:        offer.CTCTotal,
		ValidityDays:    30,
	}
	if offer.JoiningDate != nil {
		data.DateOfJoining = *offer.JoiningDate
	}
	if offer.ValidUntil != nil {
		if days := int(time.Until(*offer.ValidUntil).Hours() / 24); days > 0 {
			data.ValidityDays = days
		}
	}
	if candidate, err := h.candidates.Get(c.Request.Context(), offer.CandidateID); err == nil {
		data.CandidateName = candidate.FullName
	}
	if job, err := h.jobs.Get(c.Request.Context(), offer.JobID); err == nil {
		data.JobTitle = job.Title
		data.Department = job.Department
	}

	pdf, err := h.letters.Render(data)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render offer letter"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", offer.OfferCode))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
