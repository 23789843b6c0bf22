package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/service"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
	"github.com/hirepulse/hirepulse-api/pkg/response"
	"github.com/hirepulse/hirepulse-api/pkg/storage"
)

// CandidateHandler exposes portal profile endpoints and recruiter-facing
// candidate lookups.
type CandidateHandler struct {
	candidates    *service.CandidateService
	files         *storage.LocalStorage
	signer        *storage.SignedURLSigner
	maxResumeSize int64
}

// NewCandidateHandler constructs CandidateHandler.
func NewCandidateHandler(candidates *service.CandidateService, files *storage.LocalStorage, signer *storage.SignedURLSigner, maxResumeSize int64) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, files: files, signer: signer, maxResumeSize: maxResumeSize}
}

// Profile godoc
// @Summary Current candidate profile
// @Tags Candidates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *CandidateHandler) Profile(c *gin.Context) {
	candidate, err := h.candidates.GetByUserID(c.Request.Context(), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidate, nil)
}

// UpdateProfile godoc
// @Summary Update the current candidate profile
// @Tags Candidates
// @Accept json
// @Produce json
// @Param payload body dto.UpdateCandidateProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Router /profile [put]
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateCandidateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	candidate, err := h.candidates.UpdateProfile(c.Request.Context(), actorID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidate, nil)
}

// UploadResume godoc
// @Summary Upload a resume and merge parsed fields into the profile
// @Tags Candidates
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume file"
// @Success 201 {object} response.Envelope
// @Router /profile/resume [post]
func (h *CandidateHandler) UploadResume(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "resume file is required"))
		return
	}
	if h.maxResumeSize > 0 && header.Size > h.maxResumeSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("resume exceeds the %d byte limit", h.maxResumeSize)))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}

	doc, parsed, err := h.candidates.UploadResume(c.Request.Context(), actorID(c), header.Filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"document": doc, "parsed": parsed})
}

// Documents godoc
// @Summary List the current candidate's uploaded documents
// @Tags Candidates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile/documents [get]
func (h *CandidateHandler) Documents(c *gin.Context) {
	docs, err := h.candidates.Documents(c.Request.Context(), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs, nil)
}

// DocumentLink godoc
// @Summary Issue a signed download link for one of the caller's documents
// @Tags Candidates
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} response.Envelope
// @Router /profile/documents/{id}/link [post]
func (h *CandidateHandler) DocumentLink(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid document id"))
		return
	}
	docs, err := h.candidates.Documents(c.Request.Context(), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	for _, doc := range docs {
		if doc.ID != id {
			continue
		}
		token, expiresAt, err := h.signer.Generate(strconv.FormatInt(doc.ID, 10), doc.DocumentURL)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link"))
			return
		}
		response.JSON(c, http.StatusOK, gin.H{
			"url":        fmt.Sprintf("/documents/download?token=%s", token),
			"expires_at": expiresAt,
		}, nil)
		return
	}
	response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "document not found"))
}

// Download godoc
// @Summary Download a document with a signed token
// @Tags Candidates
// @Produce application/octet-stream
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Router /documents/download [get]
func (h *CandidateHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	_, relPath, _, err := h.signer.Parse(token, false)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "download link is invalid or expired"))
		return
	}
	c.FileAttachment(h.files.Path(relPath), relPath)
}

// Suggestions godoc
// @Summary Resume improvement suggestions against a job
// @Tags Candidates
// @Produce json
// @Param job_id query int true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /profile/suggestions [get]
func (h *CandidateHandler) Suggestions(c *gin.Context) {
	jobID := queryInt64(c, "job_id")
	if jobID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "job_id is required"))
		return
	}
	suggestions, err := h.candidates.ResumeSuggestions(c.Request.Context(), actorID(c), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, suggestions, nil)
}

// Get godoc
// @Summary Fetch one candidate
// @Tags Candidates
// @Produce json
// @Param id path int true "Candidate ID"
// @Success 200 {object} response.Envelope
// @Router /candidates/{id} [get]
func (h *CandidateHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid candidate id"))
		return
	}
	candidate, err := h.candidates.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidate, nil)
}

// List godoc
// @Summary List candidates
// @Tags Candidates
// @Produce json
// @Param search query string false "Name or email search"
// @Param skill query string false "Filter by skill"
// @Param min_exp query int false "Minimum years of experience"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	filter := dto.CandidateQuery{
		Search:   c.Query("search"),
		Skill:    c.Query("skill"),
		MinExp:   queryInt(c, "min_exp", 0),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "limit", 20),
	}
	candidates, total, err := h.candidates.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidates, pagination(c, total))
}
