package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirepulse/hirepulse-api/internal/service"
	"github.com/hirepulse/hirepulse-api/pkg/response"
)

// DashboardHandler exposes the recruiter overview.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Recruiter godoc
// @Summary Recruiter pipeline, interview and offer overview
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/recruiter [get]
func (h *DashboardHandler) Recruiter(c *gin.Context) {
	data, err := h.dashboard.Recruiter(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data, nil)
}
