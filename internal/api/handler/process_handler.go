package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/logger"
)

// ProcessHandler receives the transcoder's and image pipeline's
// webhooks. Every endpoint is gated by the shared secret inside the
// payload, not by user auth.
type ProcessHandler struct {
	processService *service.ProcessService
}

func NewProcessHandler(processService *service.ProcessService) *ProcessHandler {
	return &ProcessHandler{processService: processService}
}

// VideoReady POST /api/v1/process/videos
// @Summary Transcoder completion callback
// @Tags process
// @Accept json
// @Produce json
// @Param request body dto.VideoReadyRequest true "transcode result"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /process/videos [post]
func (h *ProcessHandler) VideoReady(c *gin.Context) {
	var req dto.VideoReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.processService.HandleVideoReady(c.Request.Context(), &req); err != nil {
		handleProcessError(c, err)
		return
	}
	response.OK(c, "video finalized", nil)
}

// ImageReady POST /api/v1/process/images
// @Summary Image pipeline completion callback
// @Tags process
// @Accept json
// @Produce json
// @Param request body dto.ImageReadyRequest true "processed image"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /process/images [post]
func (h *ProcessHandler) ImageReady(c *gin.Context) {
	var req dto.ImageReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.processService.HandleImageReady(c.Request.Context(), &req); err != nil {
		handleProcessError(c, err)
		return
	}
	response.OK(c, "image stored", nil)
}

// ProcessError POST /api/v1/process/error
// @Summary Transcoder failure callback
// @Tags process
// @Accept json
// @Produce json
// @Param request body dto.ProcessErrorRequest true "failure report"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /process/error [post]
func (h *ProcessHandler) ProcessError(c *gin.Context) {
	var req dto.ProcessErrorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.processService.HandleProcessError(c.Request.Context(), &req); err != nil {
		handleProcessError(c, err)
		return
	}
	response.OK(c, "video canceled", nil)
}

func handleProcessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBadWebhookSecret):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrBadObjectKey),
		errors.Is(err, service.ErrBadTransition):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCommunityNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Process callback failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
