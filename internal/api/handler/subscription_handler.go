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

type SubscriptionHandler struct {
	subService *service.SubscriptionService
}

func NewSubscriptionHandler(subService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

// Toggle POST /api/v1/subscriptions/channel/:id
// @Summary Toggle a subscription to a channel
// @Tags subscriptions
// @Produce json
// @Param id path int true "channel user id"
// @Success 200 {object} response.Envelope{data=dto.SubscriptionToggleResult}
// @Security ApiKeyAuth
// @Router /subscriptions/channel/{id} [post]
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid channel id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	result, err := h.subService.Toggle(userID, channelID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}
	response.OK(c, "subscription toggled", result)
}

// Status GET /api/v1/subscriptions/channel/:id/status
// @Summary Report whether the caller subscribes to a channel
// @Tags subscriptions
// @Produce json
// @Param id path int true "channel user id"
// @Success 200 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /subscriptions/channel/{id}/status [get]
func (h *SubscriptionHandler) Status(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid channel id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	subscribed, err := h.subService.Status(userID, channelID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}
	response.OK(c, "subscription status fetched", gin.H{"subscribed": subscribed})
}

// ListSubscribers GET /api/v1/subscriptions/channel/:id/subscribers
// @Summary List a channel's subscribers
// @Tags subscriptions
// @Produce json
// @Param id path int true "channel user id"
// @Success 200 {object} response.Envelope{data=dto.ChannelListData}
// @Router /subscriptions/channel/{id}/subscribers [get]
func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid channel id")
		return
	}
	page, limit := parsePagination(c)

	data, err := h.subService.ListSubscribers(channelID, page, limit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}
	response.OK(c, "subscribers fetched", data)
}

// ListSubscribedTo GET /api/v1/subscriptions/me
// @Summary List the channels the caller subscribes to
// @Tags subscriptions
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.ChannelListData}
// @Security ApiKeyAuth
// @Router /subscriptions/me [get]
func (h *SubscriptionHandler) ListSubscribedTo(c *gin.Context) {
	page, limit := parsePagination(c)
	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.subService.ListSubscribedTo(userID, page, limit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}
	response.OK(c, "subscriptions fetched", data)
}

func handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrSelfSubscription):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Subscription operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
