package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hirepulse/hirepulse-api/internal/middleware"
	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/internal/repository"
	"github.com/hirepulse/hirepulse-api/internal/service"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Auth         *AuthHandler
	Candidates   *CandidateHandler
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Interviews   *InterviewHandler
	Offers       *OfferHandler
	MPRs         *MPRHandler
	Dashboard    *DashboardHandler
}

// RouterDeps carries the cross-cutting pieces route registration needs.
type RouterDeps struct {
	AuthService *service.AuthService
	AuditRepo   *repository.AuditRepository
	Metrics     *service.MetricsService
	APIPrefix   string
}

// RegisterRoutes mounts the API surface under the configured prefix.
func RegisterRoutes(r *gin.Engine, h Handlers, deps RouterDeps) {
	prefix := deps.APIPrefix
	if prefix == "" {
		prefix = "/api/v1"
	}
	api := r.Group(prefix)
	api.Use(middleware.Metrics(deps.Metrics))

	staff := []models.UserRole{models.RoleAdmin, models.RoleRecruiter, models.RoleManager}
	recruiters := []models.UserRole{models.RoleAdmin, models.RoleRecruiter}
	managers := []models.UserRole{models.RoleAdmin, models.RoleManager}

	// Public surface: account bootstrap and the job board.
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.GET("/board/jobs", h.Jobs.ListPublic)
	api.GET("/documents/download", h.Candidates.Download)

	authed := api.Group("", middleware.JWT(deps.AuthService))
	authed.GET("/auth/me", h.Auth.Me)

	portal := authed.Group("", middleware.RequireRoles(models.RoleCandidate))
	{
		portal.GET("/profile", h.Candidates.Profile)
		portal.PUT("/profile", h.Candidates.UpdateProfile)
		portal.POST("/profile/resume", h.Candidates.UploadResume)
		portal.GET("/profile/documents", h.Candidates.Documents)
		portal.POST("/profile/documents/:id/link", h.Candidates.DocumentLink)
		portal.GET("/profile/suggestions", h.Candidates.Suggestions)
		portal.POST("/applications", h.Applications.Submit)
		portal.GET("/my/applications", h.Applications.ListMine)
		portal.GET("/my/offers", h.Offers.ListMine)
		portal.GET("/offers/:id/mine", h.Offers.GetMine)
		portal.POST("/offers/:id/decision",
			middleware.Audit(deps.AuditRepo, "offer.decision", "offer"), h.Offers.Decide)
		portal.POST("/offers/:id/joining-request",
			middleware.Audit(deps.AuditRepo, "offer.joining_request", "offer"), h.Offers.RequestJoining)
	}

	hiring := authed.Group("", middleware.RequireRoles(staff...))
	{
		hiring.GET("/candidates", h.Candidates.List)
		hiring.GET("/candidates/:id", h.Candidates.Get)

		hiring.GET("/jobs", h.Jobs.List)
		hiring.GET("/jobs/:id", h.Jobs.Get)
		hiring.GET("/jobs/:id/matches", h.Jobs.Matches)
		hiring.GET("/jobs/:id/applications/export", h.Jobs.ExportApplications)

		hiring.GET("/applications", h.Applications.List)
		hiring.GET("/applications/:id", h.Applications.Get)
		hiring.PUT("/applications/:id/status",
			middleware.Audit(deps.AuditRepo, "application.transition", "application"), h.Applications.UpdateStatus)

		hiring.POST("/interviews",
			middleware.Audit(deps.AuditRepo, "interview.schedule", "interview"), h.Interviews.Schedule)
		hiring.GET("/interviews", h.Interviews.List)
		hiring.GET("/interviews/:id", h.Interviews.Get)
		hiring.PUT("/interviews/:id/reschedule",
			middleware.Audit(deps.AuditRepo, "interview.reschedule", "interview"), h.Interviews.Reschedule)
		hiring.PUT("/interviews/:id/status",
			middleware.Audit(deps.AuditRepo, "interview.status", "interview"), h.Interviews.UpdateStatus)
		hiring.POST("/interviews/evaluations",
			middleware.Audit(deps.AuditRepo, "interview.evaluate", "interview"), h.Interviews.SubmitEvaluation)
		hiring.GET("/interviews/:id/evaluation", h.Interviews.GetEvaluation)

		hiring.GET("/offers", h.Offers.List)
		hiring.GET("/offers/:id", h.Offers.Get)
		hiring.GET("/offers/:id/letter", h.Offers.Letter)

		hiring.GET("/mprs", h.MPRs.List)
		hiring.GET("/mprs/:id", h.MPRs.Get)

		hiring.GET("/dashboard/recruiter", h.Dashboard.Recruiter)
	}

	recruiting := authed.Group("", middleware.RequireRoles(recruiters...))
	{
		recruiting.POST("/jobs",
			middleware.Audit(deps.AuditRepo, "job.create", "job"), h.Jobs.Create)
		recruiting.PUT("/jobs/:id",
			middleware.Audit(deps.AuditRepo, "job.update", "job"), h.Jobs.Update)
		recruiting.PUT("/jobs/:id/status",
			middleware.Audit(deps.AuditRepo, "job.status", "job"), h.Jobs.UpdateStatus)

		recruiting.POST("/offers",
			middleware.Audit(deps.AuditRepo, "offer.release", "offer"), h.Offers.Release)
		recruiting.PUT("/offers/:id/status",
			middleware.Audit(deps.AuditRepo, "offer.status", "offer"), h.Offers.UpdateStatus)

		recruiting.POST("/mprs",
			middleware.Audit(deps.AuditRepo, "mpr.create", "mpr"), h.MPRs.Create)
		recruiting.POST("/mprs/:id/link-job",
			middleware.Audit(deps.AuditRepo, "mpr.link_job", "mpr"), h.MPRs.LinkJob)
	}

	managing := authed.Group("", middleware.RequireRoles(managers...))
	{
		managing.POST("/offers/:id/approve",
			middleware.Audit(deps.AuditRepo, "offer.approve", "offer"), h.Offers.Approve)
		managing.POST("/mprs/:id/review",
			middleware.Audit(deps.AuditRepo, "mpr.review", "mpr"), h.MPRs.Review)
	}
}
