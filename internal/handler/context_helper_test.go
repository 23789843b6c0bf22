package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hirepulse/hirepulse-api/internal/middleware"
	"github.com/hirepulse/hirepulse-api/internal/models"
)

func TestActorIDFromClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 42, Role: models.RoleRecruiter})

	assert.Equal(t, int64(42), actorID(c))
}

func TestActorIDWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	assert.Equal(t, int64(0), actorID(c))
}

func TestIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "17"}}

	id, ok := idParam(c)
	assert.True(t, ok)
	assert.Equal(t, int64(17), id)

	c.Params = gin.Params{{Key: "id", Value: "-3"}}
	_, ok = idParam(c)
	assert.False(t, ok)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, ok = idParam(c)
	assert.False(t, ok)
}

func TestPaginationReflectsQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/applications?page=3&limit=50", nil)

	p := pagination(c, 120)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PageSize)
	assert.Equal(t, 120, p.TotalCount)
}
