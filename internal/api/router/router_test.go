package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"vidshare-go/internal/api/handler"
	"vidshare-go/internal/api/middleware"
	"vidshare-go/internal/config"
)

// Credential endpoints sit behind the login limiter, so a drained bucket
// answers 429 before the handler runs.
func TestLoginRoutesThrottled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Handlers{Auth: handler.NewAuthHandler(nil, &config.AuthConfig{})}

	loginLimiter := middleware.RateLimit(0.001, 1)
	uploadLimiter := middleware.RateLimit(0.001, 1)
	Setup(r, h, middleware.AuthConfig{AccessSecret: "s", CookieName: "accesToken"}, loginLimiter, uploadLimiter)

	// First request drains the single-token bucket; the malformed body
	// keeps the handler away from its (absent) service.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// register shares the limiter, so it is already drained too
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/users/register", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
