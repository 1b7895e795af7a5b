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

type UserHandler struct {
	userService *service.UserService
	tempDir     string
}

func NewUserHandler(userService *service.UserService, tempDir string) *UserHandler {
	return &UserHandler{userService: userService, tempDir: tempDir}
}

// GetCurrentUser GET /api/v1/users/me
// @Summary Get the authenticated user's channel view
// @Tags users
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.ChannelInfo}
// @Security ApiKeyAuth
// @Router /users/me [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.userService.GetCurrentUser(userID)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.OK(c, "user fetched", info)
}

// GetChannel GET /api/v1/users/channel/:username
// @Summary Get a channel by username
// @Tags users
// @Produce json
// @Param username path string true "channel username"
// @Success 200 {object} response.Envelope{data=dto.ChannelInfo}
// @Failure 404 {object} response.Envelope
// @Router /users/channel/{username} [get]
func (h *UserHandler) GetChannel(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "missing username")
		return
	}

	requesterID, _ := middleware.GetCurrentUserID(c)
	info, err := h.userService.GetChannel(username, requesterID)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.OK(c, "channel fetched", info)
}

// UpdateProfile PATCH /api/v1/users/me
// @Summary Update profile fields
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserUpdateRequest true "fields to update"
// @Success 200 {object} response.Envelope{data=dto.UserInfo}
// @Failure 400 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.OK(c, "profile updated", info)
}

// UpdateImages PATCH /api/v1/users/me/images
// @Summary Upload a new avatar and/or background image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file false "avatar image"
// @Param background formData file false "background image"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /users/me/images [patch]
func (h *UserHandler) UpdateImages(c *gin.Context) {
	avatarFile, avatarErr := c.FormFile("avatar")
	bgFile, bgErr := c.FormFile("background")
	if avatarErr != nil && bgErr != nil {
		response.BadRequest(c, "provide an avatar or background image")
		return
	}

	var avatar, background *stagedFile
	defer func() { removeStaged(avatar, background) }()

	if avatarErr == nil {
		if !isImageType(avatarFile.Header.Get("Content-Type")) {
			response.BadRequest(c, "avatar must be an image")
			return
		}
		var err error
		if avatar, err = stageUpload(c, avatarFile, h.tempDir); err != nil {
			response.InternalError(c, "failed to receive avatar")
			return
		}
	}
	if bgErr == nil {
		if !isImageType(bgFile.Header.Get("Content-Type")) {
			response.BadRequest(c, "background must be an image")
			return
		}
		var err error
		if background, err = stageUpload(c, bgFile, h.tempDir); err != nil {
			response.InternalError(c, "failed to receive background")
			return
		}
	}

	userID, _ := middleware.GetCurrentUserID(c)
	err := h.userService.UpdateImages(c.Request.Context(), userID,
		toProfileImage(avatar), toProfileImage(background))
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.OK(c, "images queued for processing", nil)
}

func toProfileImage(f *stagedFile) *service.ProfileImage {
	if f == nil {
		return nil
	}
	return &service.ProfileImage{
		LocalPath:   f.Path,
		ContentType: f.ContentType,
		Ext:         f.Ext,
	}
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoProfileFields):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
