package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepulse/hirepulse-api/pkg/storage"
)

func newDownloadHandler(t *testing.T) (*CandidateHandler, *storage.SignedURLSigner) {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	_, err = files.Save("resumes/1_cv.pdf", []byte("resume bytes"))
	require.NoError(t, err)

	signer := storage.NewSignedURLSigner("test-secret", time.Minute)
	return NewCandidateHandler(nil, files, signer, 0), signer
}

func TestDownloadRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newDownloadHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/documents/download", nil)

	handler.Download(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadRejectsTamperedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, signer := newDownloadHandler(t)

	token, _, err := signer.Generate("1", "resumes/1_cv.pdf")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/documents/download?token="+token+"x", nil)

	handler.Download(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDownloadServesSignedFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, signer := newDownloadHandler(t)

	token, _, err := signer.Generate("1", "resumes/1_cv.pdf")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/documents/download?token="+token, nil)

	handler.Download(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "resume bytes", rec.Body.String())
}
