package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hirepulse/hirepulse-api/internal/middleware"
	"github.com/hirepulse/hirepulse-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func actorID(c *gin.Context) int64 {
	if claims := claimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return 0
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(fallback))); err == nil {
		return v
	}
	return fallback
}

func queryInt64(c *gin.Context, key string) int64 {
	v, _ := strconv.ParseInt(c.Query(key), 10, 64)
	return v
}

func pagination(c *gin.Context, total int) *models.Pagination {
	return &models.Pagination{
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "limit", 20),
		TotalCount: total,
	}
}
