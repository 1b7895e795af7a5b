package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/api/middleware"
	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/logger"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create POST /api/v1/playlists
// @Summary Create a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param request body dto.PlaylistCreateRequest true "playlist"
// @Success 201 {object} response.Envelope{data=dto.PlaylistInfo}
// @Security ApiKeyAuth
// @Router /playlists [post]
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.playlistService.Create(userID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}
	response.Created(c, "playlist created", info)
}

// Get GET /api/v1/playlists/:id
// @Summary Get a playlist with its videos in order
// @Tags playlists
// @Produce json
// @Param id path int true "playlist id"
// @Success 200 {object} response.Envelope{data=dto.PlaylistDetail}
// @Failure 404 {object} response.Envelope
// @Router /playlists/{id} [get]
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}

	detail, err := h.playlistService.Get(playlistID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}
	response.OK(c, "playlist fetched", detail)
}

// ListByUser GET /api/v1/playlists/user/:id
// @Summary List a user's playlists
// @Tags playlists
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} response.Envelope{data=[]dto.PlaylistInfo}
// @Router /playlists/user/{id} [get]
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	infos, err := h.playlistService.ListByOwner(ownerID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}
	response.OK(c, "playlists fetched", infos)
}

// ListMine GET /api/v1/playlists/me
// @Summary List the caller's playlists
// @Tags playlists
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.PlaylistInfo}
// @Security ApiKeyAuth
// @Router /playlists/me [get]
func (h *PlaylistHandler) ListMine(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	infos, err := h.playlistService.ListByOwner(userID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}
	response.OK(c, "playlists fetched", infos)
}

// Update PATCH /api/v1/playlists/:id
// @Summary Edit playlist metadata
// @Tags playlists
// @Accept json
// @Produce json
// @Param id path int true "playlist id"
// @Param request body dto.PlaylistUpdateRequest true "fields to update"
// @Success 200 {object} response.Envelope{data=dto.PlaylistInfo}
// @Failure 403 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /playlists/{id} [patch]
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}

	var req dto.PlaylistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.playlistService.Update(playlistID, userID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}
	response.OK(c, "playlist updated", info)
}

// Delete DELETE /api/v1/playlists/:id
// @Summary Delete a playlist
// @Tags playlists
// @Produce json
// @Param id path int true "playlist id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /playlists/{id} [delete]
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.playlistService.Delete(playlistID, userID); err != nil {
		handlePlaylistError(c, err)
		return
	}
	response.OK(c, "playlist deleted", nil)
}

// AddVideos POST /api/v1/playlists/:id/videos
// @Summary Append videos to a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param id path int true "playlist id"
// @Param request body dto.PlaylistVideosRequest true "video ids"
// @Success 200 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /playlists/{id}/videos [post]
func (h *PlaylistHandler) AddVideos(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}

	var req dto.PlaylistVideosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.playlistService.AddVideos(playlistID, userID, req.VideoIDs); err != nil {
		handlePlaylistError(c, err)
		return
	}
	response.OK(c, "videos added", nil)
}

// RemoveVideos DELETE /api/v1/playlists/:id/videos
// @Summary Remove videos from a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param id path int true "playlist id"
// @Param request body dto.PlaylistVideosRequest true "video ids"
// @Success 200 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /playlists/{id}/videos [delete]
func (h *PlaylistHandler) RemoveVideos(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}

	var req dto.PlaylistVideosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.playlistService.RemoveVideos(playlistID, userID, req.VideoIDs); err != nil {
		handlePlaylistError(c, err)
		return
	}
	response.OK(c, "videos removed", nil)
}

// Clear DELETE /api/v1/playlists/:id/videos/all
// @Summary Remove every video from a playlist
// @Tags playlists
// @Produce json
// @Param id path int true "playlist id"
// @Success 200 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /playlists/{id}/videos/all [delete]
func (h *PlaylistHandler) Clear(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.playlistService.Clear(playlistID, userID); err != nil {
		handlePlaylistError(c, err)
		return
	}
	response.OK(c, "playlist cleared", nil)
}

// Arrange PUT /api/v1/playlists/:id/arrange
// @Summary Reorder a playlist to the given sequence
// @Tags playlists
// @Accept json
// @Produce json
// @Param id path int true "playlist id"
// @Param request body dto.PlaylistArrangeRequest true "ordered video ids"
// @Success 200 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /playlists/{id}/arrange [put]
func (h *PlaylistHandler) Arrange(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}

	var req dto.PlaylistArrangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.playlistService.Arrange(playlistID, userID, req.VideoIDs); err != nil {
		handlePlaylistError(c, err)
		return
	}
	response.OK(c, "playlist arranged", nil)
}

func handlePlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlaylistNotFound),
		errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotPlaylistOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrVideoNotInList),
		errors.Is(err, service.ErrArrangeMismatch),
		errors.Is(err, service.ErrNoUpdateFields):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Playlist operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
