package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performOK(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestOKEnvelope(t *testing.T) {
	w, env := performOK(t, func(c *gin.Context) {
		OK(c, "done", gin.H{"id": 1})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "done", env.Message)
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
}

func TestCreatedEnvelope(t *testing.T) {
	w, env := performOK(t, func(c *gin.Context) {
		Created(c, "made", nil)
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.True(t, env.Success)
	// nil data is serialized as an empty object, never null.
	assert.NotNil(t, env.Data)
}

func TestErrorEnvelopes(t *testing.T) {
	cases := []struct {
		fn   func(c *gin.Context)
		code int
	}{
		{func(c *gin.Context) { BadRequest(c, "bad") }, http.StatusBadRequest},
		{func(c *gin.Context) { Unauthorized(c, "no") }, http.StatusUnauthorized},
		{func(c *gin.Context) { Forbidden(c, "no") }, http.StatusForbidden},
		{func(c *gin.Context) { NotFound(c, "gone") }, http.StatusNotFound},
		{func(c *gin.Context) { Conflict(c, "dup") }, http.StatusConflict},
		{func(c *gin.Context) { TooManyRequests(c, "slow down") }, http.StatusTooManyRequests},
		{func(c *gin.Context) { InternalError(c, "boom") }, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w, env := performOK(t, tc.fn)
		assert.Equal(t, tc.code, w.Code)
		assert.Equal(t, tc.code, env.StatusCode)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Message)
	}
}
