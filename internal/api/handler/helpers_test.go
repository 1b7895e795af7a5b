package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestParsePaginationDefaults(t *testing.T) {
	page, limit := parsePagination(contextWithQuery(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}

func TestParsePaginationExplicit(t *testing.T) {
	page, limit := parsePagination(contextWithQuery("page=3&limit=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}

func TestParsePaginationClamps(t *testing.T) {
	page, limit := parsePagination(contextWithQuery("page=0&limit=0"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = parsePagination(contextWithQuery("page=-2&limit=500"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}

func TestParsePaginationGarbage(t *testing.T) {
	page, limit := parsePagination(contextWithQuery("page=abc&limit=xyz"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, ok := parseIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "-1", "0", "1.5"} {
		c.Params = gin.Params{{Key: "id", Value: bad}}
		_, ok := parseIDParam(c, "id")
		assert.False(t, ok, bad)
	}
}

func TestContentTypeChecks(t *testing.T) {
	assert.True(t, isImageType("image/png"))
	assert.True(t, isImageType("image/jpeg"))
	assert.False(t, isImageType("video/mp4"))
	assert.False(t, isImageType(""))

	assert.True(t, isMP4Type("video/mp4"))
	assert.False(t, isMP4Type("video/webm"))
	assert.False(t, isMP4Type("image/png"))
}
