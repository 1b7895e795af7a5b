package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"vidshare-go/internal/service"
)

func processTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProcessHandler(service.NewProcessService(nil, nil, nil, nil, nil, "hook-secret"))

	r := gin.New()
	r.POST("/process/videos", h.VideoReady)
	r.POST("/process/images", h.ImageReady)
	r.POST("/process/error", h.ProcessError)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// The pipeline sends its shared secret as "secretKey"; the binding must
// accept that field name, and a mismatched secret is a 403, not a 401.
func TestProcessCallbackSecretKeyField(t *testing.T) {
	r := processTestRouter()

	w := postJSON(r, "/process/videos",
		`{"secretKey":"wrong","objKey":"42.mp4","streamUrls":{"360p":"u"},"duration":10}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = postJSON(r, "/process/images",
		`{"secretKey":"wrong","objKey":"uid-avatar7.png","url":"u"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = postJSON(r, "/process/error",
		`{"secretKey":"wrong","objKey":"42.mp4","message":"boom"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProcessCallbackRejectsMissingSecretKey(t *testing.T) {
	r := processTestRouter()

	w := postJSON(r, "/process/videos",
		`{"secret":"hook-secret","objKey":"42.mp4","streamUrls":{"360p":"u"},"duration":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
