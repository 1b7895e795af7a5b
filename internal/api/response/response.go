package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body of every endpoint.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// New builds an envelope; success derives from the status code.
func New(statusCode int, data interface{}, message string) Envelope {
	if data == nil {
		data = gin.H{}
	}
	return Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, New(http.StatusOK, data, message))
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, New(http.StatusCreated, data, message))
}

func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, New(statusCode, nil, message))
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}
