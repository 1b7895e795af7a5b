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

type CommunityHandler struct {
	communityService *service.CommunityService
	tempDir          string
}

func NewCommunityHandler(communityService *service.CommunityService, tempDir string) *CommunityHandler {
	return &CommunityHandler{communityService: communityService, tempDir: tempDir}
}

// Create POST /api/v1/community
// @Summary Post a community entry with an optional image
// @Tags community
// @Accept multipart/form-data
// @Produce json
// @Param content formData string true "post text"
// @Param image formData file false "post image"
// @Success 201 {object} response.Envelope{data=dto.CommunityInfo}
// @Security ApiKeyAuth
// @Router /community [post]
func (h *CommunityHandler) Create(c *gin.Context) {
	var req dto.CommunityCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	var image *stagedFile
	if file, err := c.FormFile("image"); err == nil {
		if !isImageType(file.Header.Get("Content-Type")) {
			response.BadRequest(c, "post image must be an image")
			return
		}
		image, err = stageUpload(c, file, h.tempDir)
		if err != nil {
			response.InternalError(c, "failed to receive image")
			return
		}
		defer removeStaged(image)
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.communityService.Create(c.Request.Context(), userID, req.Content, toProfileImage(image))
	if err != nil {
		handleCommunityError(c, err)
		return
	}
	response.Created(c, "post created", info)
}

// ListByUser GET /api/v1/community/user/:id
// @Summary List a user's community posts
// @Tags community
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} response.Envelope{data=[]dto.CommunityInfo}
// @Router /community/user/{id} [get]
func (h *CommunityHandler) ListByUser(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	page, limit := parsePagination(c)

	infos, err := h.communityService.ListByOwner(ownerID, page, limit)
	if err != nil {
		handleCommunityError(c, err)
		return
	}
	response.OK(c, "posts fetched", infos)
}

// Update PATCH /api/v1/community/:id
// @Summary Edit a community post's text
// @Tags community
// @Accept json
// @Produce json
// @Param id path int true "post id"
// @Param request body dto.CommunityUpdateRequest true "new content"
// @Success 200 {object} response.Envelope{data=dto.CommunityInfo}
// @Failure 403 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /community/{id} [patch]
func (h *CommunityHandler) Update(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req dto.CommunityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.communityService.Update(postID, userID, req.Content)
	if err != nil {
		handleCommunityError(c, err)
		return
	}
	response.OK(c, "post updated", info)
}

// Delete DELETE /api/v1/community/:id
// @Summary Delete a community post
// @Tags community
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /community/{id} [delete]
func (h *CommunityHandler) Delete(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.communityService.Delete(c.Request.Context(), postID, userID); err != nil {
		handleCommunityError(c, err)
		return
	}
	response.OK(c, "post deleted", nil)
}

func handleCommunityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommunityNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotCommunityOwner):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Community operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
