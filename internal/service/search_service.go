package service

import (
	"bytes"
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"vidshare-go/internal/api/dto"
	infraES "vidshare-go/internal/infra/elasticsearch"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/logger"
)

// SearchService answers full-text video queries from the search index,
// falling back to the database when the index is unavailable.
type SearchService struct {
	videoRepo *repository.VideoRepository
	likeRepo  *repository.LikeRepository
	search    *infraES.Index
}

func NewSearchService(videoRepo *repository.VideoRepository, likeRepo *repository.LikeRepository, search *infraES.Index) *SearchService {
	return &SearchService{videoRepo: videoRepo, likeRepo: likeRepo, search: search}
}

// SearchVideos runs a paginated full-text query over ready, published
// videos.
func (s *SearchService) SearchVideos(ctx context.Context, query string, page, limit int) (*dto.VideoListData, error) {
	if s.search != nil {
		data, err := s.searchIndex(ctx, query, page, limit)
		if err == nil {
			return data, nil
		}
		logger.Warn("search index query failed, falling back to database",
			zap.String("query", query), zap.Error(err))
	}
	return s.searchDatabase(query, page, limit)
}

func (s *SearchService) searchIndex(ctx context.Context, query string, page, limit int) (*dto.VideoListData, error) {
	body := map[string]interface{}{
		"from": (page - 1) * limit,
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"title^2", "description", "owner_username"},
					},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"status": string(model.StatusReady)}},
					{"term": map[string]interface{}{"is_published": true}},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	ids, _, err := s.search.SearchVideos(ctx, &buf)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &dto.VideoListData{Videos: []dto.VideoListItem{}, Page: page, Limit: limit}, nil
	}

	videos, err := s.videoRepo.GetByIDsWithOwner(ids)
	if err != nil {
		return nil, err
	}
	likeCounts, err := s.likeRepo.CountByVideos(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}

	// Preserve the index's relevance ordering.
	items := make([]dto.VideoListItem, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok || !v.IsReady() || !v.IsPublished {
			continue
		}
		items = append(items, dto.VideoListItem{
			VideoInfo: dto.NewVideoInfo(v),
			LikeCount: likeCounts[id],
		})
	}
	return &dto.VideoListData{Videos: items, Page: page, Limit: limit}, nil
}

func (s *SearchService) searchDatabase(query string, page, limit int) (*dto.VideoListData, error) {
	videos, _, err := s.videoRepo.ListWatchable((page-1)*limit, limit, query)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	likeCounts, err := s.likeRepo.CountByVideos(ids)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VideoListItem, 0, len(videos))
	for i := range videos {
		items = append(items, dto.VideoListItem{
			VideoInfo: dto.NewVideoInfo(&videos[i]),
			LikeCount: likeCounts[videos[i].ID],
		})
	}
	return &dto.VideoListData{Videos: items, Page: page, Limit: limit}, nil
}
