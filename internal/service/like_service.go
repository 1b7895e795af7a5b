package service

import (
	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/repository"
)

type LikeService struct {
	likeRepo  *repository.LikeRepository
	videoRepo *repository.VideoRepository
}

func NewLikeService(likeRepo *repository.LikeRepository, videoRepo *repository.VideoRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, videoRepo: videoRepo}
}

// Toggle flips the caller's like on a video and returns the new state.
func (s *LikeService) Toggle(ownerID, videoID int64) (*dto.LikeToggleResult, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		return nil, ErrVideoNotFound
	}

	existed, err := s.likeRepo.Delete(ownerID, videoID)
	if err != nil {
		return nil, err
	}
	if !existed {
		if err := s.likeRepo.Create(ownerID, videoID); err != nil {
			return nil, err
		}
	}

	count, err := s.likeRepo.CountByVideo(videoID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeToggleResult{Liked: !existed, LikeCount: count}, nil
}

// Status reports whether the caller has liked the video.
func (s *LikeService) Status(ownerID, videoID int64) (bool, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		return false, ErrVideoNotFound
	}
	return s.likeRepo.Exists(ownerID, videoID)
}

// ListLiked pages through the videos the caller has liked.
func (s *LikeService) ListLiked(ownerID int64, page, limit int) (*dto.VideoListData, error) {
	ids, _, err := s.likeRepo.ListVideoIDsByOwner(ownerID, (page-1)*limit, limit)
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

	items := make([]dto.VideoListItem, 0, len(videos))
	for i := range videos {
		items = append(items, dto.VideoListItem{
			VideoInfo: dto.NewVideoInfo(&videos[i]),
			LikeCount: likeCounts[videos[i].ID],
		})
	}
	return &dto.VideoListData{Videos: items, Page: page, Limit: limit}, nil
}
