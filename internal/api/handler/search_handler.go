package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/logger"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchVideos GET /api/v1/videos/search
// @Summary Full-text search over ready, published videos
// @Tags videos
// @Produce json
// @Param q query string true "search query"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} response.Envelope{data=dto.VideoListData}
// @Router /videos/search [get]
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.BadRequest(c, "missing search query")
		return
	}
	page, limit := parsePagination(c)

	data, err := h.searchService.SearchVideos(c.Request.Context(), query, page, limit)
	if err != nil {
		logger.Error("Search failed", zap.String("query", query), zap.Error(err))
		response.InternalError(c, "search failed, please try again later")
		return
	}
	response.OK(c, "search results fetched", data)
}
