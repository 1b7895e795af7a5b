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

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create POST /api/v1/comments/video/:id
// @Summary Comment on a video, or reply when parentId is set
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "video id"
// @Param request body dto.CommentCreateRequest true "comment"
// @Success 201 {object} response.Envelope{data=dto.CommentInfo}
// @Security ApiKeyAuth
// @Router /comments/video/{id} [post]
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.commentService.Create(userID, videoID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}
	response.Created(c, "comment posted", info)
}

// ListByVideo GET /api/v1/comments/video/:id
// @Summary List a video's top-level comments
// @Tags comments
// @Produce json
// @Param id path int true "video id"
// @Success 200 {object} response.Envelope{data=dto.CommentListData}
// @Router /comments/video/{id} [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}
	page, limit := parsePagination(c)

	data, err := h.commentService.ListByVideo(videoID, page, limit)
	if err != nil {
		handleCommentError(c, err)
		return
	}
	response.OK(c, "comments fetched", data)
}

// ListReplies GET /api/v1/comments/:id/replies
// @Summary List a comment's replies
// @Tags comments
// @Produce json
// @Param id path int true "comment id"
// @Success 200 {object} response.Envelope{data=dto.CommentListData}
// @Router /comments/{id}/replies [get]
func (h *CommentHandler) ListReplies(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid comment id")
		return
	}
	page, limit := parsePagination(c)

	data, err := h.commentService.ListReplies(commentID, page, limit)
	if err != nil {
		handleCommentError(c, err)
		return
	}
	response.OK(c, "replies fetched", data)
}

// ListMine GET /api/v1/comments/me
// @Summary List the caller's own comments
// @Tags comments
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.CommentListData}
// @Security ApiKeyAuth
// @Router /comments/me [get]
func (h *CommentHandler) ListMine(c *gin.Context) {
	page, limit := parsePagination(c)
	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.commentService.ListByOwner(userID, page, limit)
	if err != nil {
		handleCommentError(c, err)
		return
	}
	response.OK(c, "comments fetched", data)
}

// Update PATCH /api/v1/comments/:id
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "comment id"
// @Param request body dto.CommentUpdateRequest true "new content"
// @Success 200 {object} response.Envelope{data=dto.CommentInfo}
// @Failure 403 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /comments/{id} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid comment id")
		return
	}

	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.commentService.Update(commentID, userID, req.Content)
	if err != nil {
		handleCommentError(c, err)
		return
	}
	response.OK(c, "comment updated", info)
}

// Delete DELETE /api/v1/comments/:id
// @Summary Delete a comment and its replies
// @Tags comments
// @Produce json
// @Param id path int true "comment id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid comment id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.commentService.Delete(commentID, userID); err != nil {
		handleCommentError(c, err)
		return
	}
	response.OK(c, "comment deleted", nil)
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotCommentOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrBadParent):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
