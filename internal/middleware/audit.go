package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/internal/repository"
)

// Audit records an audit trail entry after successful mutating requests.
// Writes are best effort and never fail the request that produced them.
func Audit(repo *repository.AuditRepository, action, entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		entry := &models.AuditLog{
			Action:     action,
			EntityType: entityType,
			IP:         c.ClientIP(),
			Detail: models.JSONMap{
				"path":       c.FullPath(),
				"method":     c.Request.Method,
				"status":     c.Writer.Status(),
				"latency_ms": time.Since(start).Milliseconds(),
			},
		}
		if claimsValue, ok := c.Get(ContextUserKey); ok {
			if claims, ok := claimsValue.(*models.JWTClaims); ok {
				entry.ActorID = &claims.UserID
				entry.ActorEmail = claims.Email
			}
		}
		if raw := c.Param("id"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				entry.EntityID = &id
			}
		}

		_ = repo.Insert(c.Request.Context(), entry)
	}
}
