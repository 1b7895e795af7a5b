package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vidshare-go/internal/api/middleware"
	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/logger"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Toggle POST /api/v1/likes/video/:id
// @Summary Toggle a like on a video
// @Tags likes
// @Produce json
// @Param id path int true "video id"
// @Success 200 {object} response.Envelope{data=dto.LikeToggleResult}
// @Security ApiKeyAuth
// @Router /likes/video/{id} [post]
func (h *LikeHandler) Toggle(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	result, err := h.likeService.Toggle(userID, videoID)
	if err != nil {
		handleLikeError(c, err)
		return
	}
	response.OK(c, "like toggled", result)
}

// Status GET /api/v1/likes/video/:id/status
// @Summary Report whether the caller has liked a video
// @Tags likes
// @Produce json
// @Param id path int true "video id"
// @Success 200 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /likes/video/{id}/status [get]
func (h *LikeHandler) Status(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	liked, err := h.likeService.Status(userID, videoID)
	if err != nil {
		handleLikeError(c, err)
		return
	}
	response.OK(c, "like status fetched", gin.H{"liked": liked})
}

// ListLiked GET /api/v1/likes/videos
// @Summary List the videos the caller has liked
// @Tags likes
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.VideoListData}
// @Security ApiKeyAuth
// @Router /likes/videos [get]
func (h *LikeHandler) ListLiked(c *gin.Context) {
	page, limit := parsePagination(c)
	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.likeService.ListLiked(userID, page, limit)
	if err != nil {
		handleLikeError(c, err)
		return
	}
	response.OK(c, "liked videos fetched", data)
}

func handleLikeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Like operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
