package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/api/middleware"
	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/logger"
)

type VideoHandler struct {
	videoService *service.VideoService
	tempDir      string
	maxBytes     int64
}

func NewVideoHandler(videoService *service.VideoService, tempDir string, maxBytes int64) *VideoHandler {
	return &VideoHandler{videoService: videoService, tempDir: tempDir, maxBytes: maxBytes}
}

type uploadEvent struct {
	name string
	data interface{}
}

// Upload POST /api/v1/videos
// @Summary Upload a video with its thumbnail
// @Description Streams both files to storage and queues transcoding.
// With Accept: text/event-stream the response is a progress stream.
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "video title"
// @Param description formData string true "video description"
// @Param video formData file true "mp4 video file"
// @Param thumbnail formData file true "thumbnail image"
// @Success 201 {object} response.Envelope{data=dto.PendingVideoInfo}
// @Failure 400 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /videos [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	if c.Request.ContentLength > h.maxBytes {
		response.BadRequest(c, "upload exceeds the size limit")
		return
	}

	var req dto.VideoUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	videoFile, err := c.FormFile("video")
	if err != nil {
		response.BadRequest(c, "missing video file")
		return
	}
	if !isMP4Type(videoFile.Header.Get("Content-Type")) {
		response.BadRequest(c, "video must be an mp4 file")
		return
	}

	thumbFile, err := c.FormFile("thumbnail")
	if err != nil {
		response.BadRequest(c, "missing thumbnail file")
		return
	}
	if !isImageType(thumbFile.Header.Get("Content-Type")) {
		response.BadRequest(c, "thumbnail must be an image")
		return
	}

	staged := make([]*stagedFile, 0, 2)
	defer func() { removeStaged(staged...) }()

	video, err := stageUpload(c, videoFile, h.tempDir)
	if err != nil {
		response.InternalError(c, "failed to receive video file")
		return
	}
	staged = append(staged, video)

	thumb, err := stageUpload(c, thumbFile, h.tempDir)
	if err != nil {
		response.InternalError(c, "failed to receive thumbnail file")
		return
	}
	staged = append(staged, thumb)

	files := &service.UploadFiles{
		VideoPath:     video.Path,
		VideoType:     video.ContentType,
		ThumbnailPath: thumb.Path,
		ThumbnailType: thumb.ContentType,
		ThumbnailExt:  thumb.Ext,
	}
	userID, _ := middleware.GetCurrentUserID(c)

	if strings.Contains(c.GetHeader("Accept"), "text/event-stream") {
		h.uploadWithProgress(c, userID, &req, files)
		return
	}

	info, err := h.videoService.Upload(c.Request.Context(), userID, &req, files, nil)
	if err != nil {
		handleVideoError(c, err)
		return
	}
	response.Created(c, "upload accepted, transcoding queued", info)
}

// uploadWithProgress runs the upload while streaming per-stage progress
// as server-sent events, ending with a complete or error event.
func (h *VideoHandler) uploadWithProgress(c *gin.Context, userID int64, req *dto.VideoUploadRequest, files *service.UploadFiles) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events := make(chan uploadEvent, 16)

	go func() {
		defer close(events)

		onProgress := func(stage string, percent int) {
			select {
			case events <- uploadEvent{name: "progress", data: gin.H{"stage": stage, "percent": percent}}:
			default:
				// A slow client must not stall the upload.
			}
		}

		info, err := h.videoService.Upload(c.Request.Context(), userID, req, files, onProgress)
		if err != nil {
			events <- uploadEvent{name: "error", data: gin.H{"message": err.Error()}}
			return
		}
		events <- uploadEvent{name: "complete", data: info}
	}()

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(ev.name, ev.data)
		return true
	})
}

// Get GET /api/v1/videos/:id
// @Summary Get a video's joined detail view
// @Tags videos
// @Produce json
// @Param id path int true "video id"
// @Success 200 {object} response.Envelope{data=dto.VideoDetail}
// @Failure 404 {object} response.Envelope
// @Router /videos/{id} [get]
func (h *VideoHandler) Get(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	requesterID, _ := middleware.GetCurrentUserID(c)
	detail, err := h.videoService.GetVideo(c.Request.Context(), videoID, requesterID)
	if err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, "video fetched", detail)
}

// Update PATCH /api/v1/videos/:id
// @Summary Edit a video's details
// @Tags videos
// @Accept json
// @Produce json
// @Param id path int true "video id"
// @Param request body dto.VideoUpdateRequest true "fields to update"
// @Success 200 {object} response.Envelope{data=dto.VideoInfo}
// @Failure 403 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /videos/{id} [patch]
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	requesterID, _ := middleware.GetCurrentUserID(c)
	info, err := h.videoService.UpdateDetails(c.Request.Context(), videoID, requesterID, &req)
	if err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, "video updated", info)
}

// UpdateThumbnail PATCH /api/v1/videos/:id/thumbnail
// @Summary Replace a video's thumbnail
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "video id"
// @Param thumbnail formData file true "thumbnail image"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /videos/{id}/thumbnail [patch]
func (h *VideoHandler) UpdateThumbnail(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		response.BadRequest(c, "missing thumbnail file")
		return
	}
	if !isImageType(file.Header.Get("Content-Type")) {
		response.BadRequest(c, "thumbnail must be an image")
		return
	}

	thumb, err := stageUpload(c, file, h.tempDir)
	if err != nil {
		response.InternalError(c, "failed to receive thumbnail")
		return
	}
	defer removeStaged(thumb)

	requesterID, _ := middleware.GetCurrentUserID(c)
	if err := h.videoService.UpdateThumbnail(c.Request.Context(), videoID, requesterID, toProfileImage(thumb)); err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, "thumbnail queued for processing", nil)
}

// Delete DELETE /api/v1/videos/:id
// @Summary Delete a video and all its stored objects
// @Tags videos
// @Produce json
// @Param id path int true "video id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	requesterID, _ := middleware.GetCurrentUserID(c)
	if err := h.videoService.DeleteVideo(c.Request.Context(), videoID, requesterID); err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, "video deleted", nil)
}

// Watch POST /api/v1/videos/:id/watch
// @Summary Record a view and, for signed-in users, watch history
// @Tags videos
// @Produce json
// @Param id path int true "video id"
// @Success 200 {object} response.Envelope
// @Router /videos/{id}/watch [post]
func (h *VideoHandler) Watch(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	requesterID, _ := middleware.GetCurrentUserID(c)
	if err := h.videoService.AddToWatchHistory(videoID, requesterID); err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, "view recorded", nil)
}

// History GET /api/v1/videos/history
// @Summary List the caller's watch history
// @Tags videos
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} response.Envelope{data=[]dto.WatchHistoryItem}
// @Security ApiKeyAuth
// @Router /videos/history [get]
func (h *VideoHandler) History(c *gin.Context) {
	page, limit := parsePagination(c)
	requesterID, _ := middleware.GetCurrentUserID(c)

	items, err := h.videoService.WatchHistory(requesterID, page, limit)
	if err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, "watch history fetched", items)
}

// ListNew GET /api/v1/videos
// @Summary List the latest ready, published videos
// @Tags videos
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} response.Envelope{data=dto.VideoListData}
// @Router /videos [get]
func (h *VideoHandler) ListNew(c *gin.Context) {
	page, limit := parsePagination(c)

	data, err := h.videoService.ListNew(page, limit)
	if err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, "videos fetched", data)
}

// UploadState GET /api/v1/videos/state
// @Summary List the caller's videos still uploading, processing, or canceled
// @Tags videos
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.PendingVideoInfo}
// @Security ApiKeyAuth
// @Router /videos/state [get]
func (h *VideoHandler) UploadState(c *gin.Context) {
	page, limit := parsePagination(c)
	requesterID, _ := middleware.GetCurrentUserID(c)

	infos, err := h.videoService.ListUploadState(requesterID, page, limit)
	if err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, "upload state fetched", infos)
}

// ListMine GET /api/v1/videos/me
// @Summary List every video the caller has uploaded
// @Tags videos
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.VideoListData}
// @Security ApiKeyAuth
// @Router /videos/me [get]
func (h *VideoHandler) ListMine(c *gin.Context) {
	page, limit := parsePagination(c)
	requesterID, _ := middleware.GetCurrentUserID(c)

	data, err := h.videoService.ListMine(requesterID, page, limit)
	if err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, "videos fetched", data)
}

// ListByChannel GET /api/v1/videos/channel/:id
// @Summary List a channel's ready, published videos
// @Tags videos
// @Produce json
// @Param id path int true "channel user id"
// @Success 200 {object} response.Envelope{data=dto.VideoListData}
// @Router /videos/channel/{id} [get]
func (h *VideoHandler) ListByChannel(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid channel id")
		return
	}
	page, limit := parsePagination(c)

	data, err := h.videoService.ListByOwner(ownerID, page, limit)
	if err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, "channel videos fetched", data)
}

// Recommended GET /api/v1/videos/recommended
// @Summary Recommended videos (not yet available)
// @Tags videos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /videos/recommended [get]
func (h *VideoHandler) Recommended(c *gin.Context) {
	msg, err := h.videoService.Recommended()
	if err != nil {
		handleVideoError(c, err)
		return
	}
	response.OK(c, msg, nil)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotVideoOwner),
		errors.Is(err, service.ErrVideoForbidden),
		errors.Is(err, service.ErrEmailNotVerified):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrVideoNotReady),
		errors.Is(err, service.ErrNoUpdateFields):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
