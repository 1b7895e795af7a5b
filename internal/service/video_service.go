package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"vidshare-go/internal/api/dto"
	infraES "vidshare-go/internal/infra/elasticsearch"
	infraKafka "vidshare-go/internal/infra/kafka"
	infraMinio "vidshare-go/internal/infra/minio"
	infraRedis "vidshare-go/internal/infra/redis"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/logger"
)

var (
	ErrVideoNotFound    = errors.New("video not found")
	ErrVideoNotReady    = errors.New("video is not ready yet")
	ErrVideoForbidden   = errors.New("video is not available")
	ErrNotVideoOwner    = errors.New("only the owner may modify this video")
	ErrEmailNotVerified = errors.New("email must be verified before uploading")
	ErrNoUpdateFields   = errors.New("no fields to update")
)

// UploadFiles carries the staged local files of one upload request.
type UploadFiles struct {
	VideoPath     string
	VideoType     string
	ThumbnailPath string
	ThumbnailType string
	ThumbnailExt  string
}

// ProgressFunc receives per-stage upload progress in percent.
type ProgressFunc func(stage string, percent int)

type VideoService struct {
	videoRepo   *repository.VideoRepository
	userRepo    *repository.UserRepository
	likeRepo    *repository.LikeRepository
	subRepo     *repository.SubscriptionRepository
	historyRepo *repository.WatchHistoryRepository
	storage     *infraMinio.Storage
	producer    *infraKafka.Producer
	search      *infraES.Index
	cache       *infraRedis.Cache
}

func NewVideoService(
	videoRepo *repository.VideoRepository,
	userRepo *repository.UserRepository,
	likeRepo *repository.LikeRepository,
	subRepo *repository.SubscriptionRepository,
	historyRepo *repository.WatchHistoryRepository,
	storage *infraMinio.Storage,
	producer *infraKafka.Producer,
	search *infraES.Index,
	cache *infraRedis.Cache,
) *VideoService {
	return &VideoService{
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		subRepo:     subRepo,
		historyRepo: historyRepo,
		storage:     storage,
		producer:    producer,
		search:      search,
		cache:       cache,
	}
}

// videoCacheEntry is the requester-independent part of a video detail,
// cached in Redis. Requester flags are computed per request.
type videoCacheEntry struct {
	Video           dto.VideoInfo `json:"video"`
	LikeCount       int64         `json:"likeCount"`
	SubscriberCount int64         `json:"subscriberCount"`
}

func videoCacheKey(id int64) string {
	return fmt.Sprintf("video:detail:%d", id)
}

// Upload creates a placeholder record, streams the original video and
// thumbnail to the raw bucket, and hands the object off to the
// transcoder. Any storage failure rolls the placeholder back so no
// orphan records survive a partial upload.
func (s *VideoService) Upload(ctx context.Context, ownerID int64, req *dto.VideoUploadRequest, files *UploadFiles, onProgress ProgressFunc) (*dto.PendingVideoInfo, error) {
	owner, err := s.userRepo.GetByID(ownerID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !owner.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}

	video := &model.Video{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.StatusUploading,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	videoKey := fmt.Sprintf("%d.mp4", video.ID)
	thumbKey := fmt.Sprintf("%d%s", video.ID, files.ThumbnailExt)

	progress := func(stage string) func(int) {
		if onProgress == nil {
			return nil
		}
		return func(percent int) { onProgress(stage, percent) }
	}

	if err := s.storage.UploadLocalFile(ctx, s.storage.RawBucket(), videoKey, files.VideoPath, files.VideoType, progress("video")); err != nil {
		s.rollbackUpload(ctx, video.ID, videoKey, "")
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}

	if err := s.storage.UploadLocalFile(ctx, s.storage.RawBucket(), thumbKey, files.ThumbnailPath, files.ThumbnailType, progress("thumbnail")); err != nil {
		s.rollbackUpload(ctx, video.ID, videoKey, thumbKey)
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	task := &infraKafka.TranscodeTask{
		VideoID:   video.ID,
		ObjectKey: videoKey,
		Bucket:    s.storage.RawBucket(),
		Thumbnail: thumbKey,
	}
	if err := s.producer.SendTranscodeTask(ctx, task); err != nil {
		s.rollbackUpload(ctx, video.ID, videoKey, thumbKey)
		return nil, fmt.Errorf("failed to queue transcode task: %w", err)
	}

	updated, err := s.videoRepo.Update(video.ID, map[string]interface{}{"status": model.StatusProcessing})
	if err != nil {
		return nil, err
	}

	return &dto.PendingVideoInfo{
		ID:        updated.ID,
		Title:     updated.Title,
		Status:    string(updated.Status),
		CreatedAt: updated.CreatedAt,
	}, nil
}

// rollbackUpload removes the placeholder and any objects already written.
func (s *VideoService) rollbackUpload(ctx context.Context, videoID int64, videoKey, thumbKey string) {
	if videoKey != "" {
		if err := s.storage.DeleteObject(ctx, s.storage.RawBucket(), videoKey); err != nil {
			logger.Warn("rollback: failed to delete raw video object",
				zap.String("object", videoKey), zap.Error(err))
		}
	}
	if thumbKey != "" {
		if err := s.storage.DeleteObject(ctx, s.storage.RawBucket(), thumbKey); err != nil {
			logger.Warn("rollback: failed to delete raw thumbnail object",
				zap.String("object", thumbKey), zap.Error(err))
		}
	}
	if err := s.videoRepo.Delete(videoID); err != nil {
		logger.Error("rollback: failed to delete placeholder video",
			zap.Int64("video_id", videoID), zap.Error(err))
	}
}

// GetVideo returns the joined detail view. Unready videos are hidden;
// unpublished videos are visible to their owner only.
func (s *VideoService) GetVideo(ctx context.Context, videoID, requesterID int64) (*dto.VideoDetail, error) {
	entry, err := s.loadDetail(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if entry.Video.Status != string(model.StatusReady) {
		return nil, ErrVideoNotReady
	}
	if !entry.Video.IsPublished && entry.Video.OwnerID != requesterID {
		return nil, ErrVideoForbidden
	}

	detail := &dto.VideoDetail{
		VideoInfo:       entry.Video,
		LikeCount:       entry.LikeCount,
		SubscriberCount: entry.SubscriberCount,
		CanUpdate:       entry.Video.OwnerID == requesterID,
	}

	if requesterID > 0 {
		if detail.IsLiked, err = s.likeRepo.Exists(requesterID, videoID); err != nil {
			return nil, err
		}
		if requesterID != entry.Video.OwnerID {
			if detail.IsSubscribed, err = s.subRepo.Exists(requesterID, entry.Video.OwnerID); err != nil {
				return nil, err
			}
		}
	}
	return detail, nil
}

func (s *VideoService) loadDetail(ctx context.Context, videoID int64) (*videoCacheEntry, error) {
	var entry videoCacheEntry
	if s.cache != nil {
		err := s.cache.GetJSON(ctx, videoCacheKey(videoID), &entry)
		if err == nil {
			return &entry, nil
		}
		if !errors.Is(err, infraRedis.ErrCacheMiss) {
			logger.Warn("video cache read failed", zap.Int64("video_id", videoID), zap.Error(err))
		}
	}

	video, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		return nil, ErrVideoNotFound
	}
	likeCount, err := s.likeRepo.CountByVideo(videoID)
	if err != nil {
		return nil, err
	}
	subscriberCount, err := s.subRepo.CountSubscribers(video.OwnerID)
	if err != nil {
		return nil, err
	}

	entry = videoCacheEntry{
		Video:           dto.NewVideoInfo(video),
		LikeCount:       likeCount,
		SubscriberCount: subscriberCount,
	}
	if s.cache != nil && video.IsReady() {
		if err := s.cache.SetJSON(ctx, videoCacheKey(videoID), &entry); err != nil {
			logger.Warn("video cache write failed", zap.Int64("video_id", videoID), zap.Error(err))
		}
	}
	return &entry, nil
}

func (s *VideoService) invalidate(ctx context.Context, videoID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, videoCacheKey(videoID)); err != nil {
		logger.Warn("video cache invalidation failed", zap.Int64("video_id", videoID), zap.Error(err))
	}
}

// UpdateDetails edits title, description, and publication state. Owner
// only.
func (s *VideoService) UpdateDetails(ctx context.Context, videoID, requesterID int64, req *dto.VideoUpdateRequest) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, ErrVideoNotFound
	}
	if video.OwnerID != requesterID {
		return nil, ErrNotVideoOwner
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdateFields
	}

	updated, err := s.videoRepo.Update(videoID, updates)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, videoID)
	s.syncSearch(ctx, updated)

	info := dto.NewVideoInfo(updated)
	return &info, nil
}

// UpdateThumbnail stages a replacement thumbnail through the image
// pipeline. The processed URL lands via the image-ready callback.
func (s *VideoService) UpdateThumbnail(ctx context.Context, videoID, requesterID int64, img *ProfileImage) error {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		return ErrVideoNotFound
	}
	if video.OwnerID != requesterID {
		return ErrNotVideoOwner
	}

	key := fmt.Sprintf("%d%s", videoID, img.Ext)
	if err := s.storage.UploadLocalFile(ctx, s.storage.RawBucket(), key, img.LocalPath, img.ContentType, nil); err != nil {
		return fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	if video.Thumbnail != "" {
		objectName := s.storage.ObjectNameFromURL(s.storage.ImageBucket(), video.Thumbnail)
		if objectName != "" {
			if err := s.storage.DeleteObject(ctx, s.storage.ImageBucket(), objectName); err != nil {
				logger.Warn("failed to delete previous thumbnail",
					zap.String("object", objectName), zap.Error(err))
			}
		}
	}

	s.invalidate(ctx, videoID)
	return nil
}

// DeleteVideo removes the record and every stored object for the video:
// the processed thumbnail and the whole per-video stream folder.
func (s *VideoService) DeleteVideo(ctx context.Context, videoID, requesterID int64) error {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		return ErrVideoNotFound
	}
	if video.OwnerID != requesterID {
		return ErrNotVideoOwner
	}

	if video.Thumbnail != "" {
		objectName := s.storage.ObjectNameFromURL(s.storage.ImageBucket(), video.Thumbnail)
		if objectName != "" {
			if err := s.storage.DeleteObject(ctx, s.storage.ImageBucket(), objectName); err != nil {
				logger.Warn("failed to delete thumbnail object",
					zap.String("object", objectName), zap.Error(err))
			}
		}
	}

	folder := fmt.Sprintf("%d/", videoID)
	if err := s.storage.DeleteFolder(ctx, s.storage.VideoBucket(), folder); err != nil {
		return fmt.Errorf("failed to delete stream folder: %w", err)
	}

	if err := s.likeRepo.DeleteByVideo(videoID); err != nil {
		return err
	}
	if err := s.videoRepo.Delete(videoID); err != nil {
		return err
	}

	s.invalidate(ctx, videoID)
	if s.search != nil {
		if err := s.search.DeleteVideo(ctx, videoID); err != nil {
			logger.Warn("search index delete failed", zap.Int64("video_id", videoID), zap.Error(err))
		}
	}
	return nil
}

// AddToWatchHistory bumps the view counter for everyone and tracks
// per-user rewatches for authenticated requesters. requesterID is zero
// for anonymous viewers.
func (s *VideoService) AddToWatchHistory(videoID, requesterID int64) error {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		return ErrVideoNotFound
	}
	if err := s.videoRepo.IncrementViews(videoID); err != nil {
		return err
	}

	if requesterID <= 0 {
		return nil
	}
	if _, err := s.historyRepo.Get(requesterID, videoID); err != nil {
		return s.historyRepo.Create(requesterID, videoID)
	}
	return s.historyRepo.IncrementRewatched(requesterID, videoID)
}

// WatchHistory lists the requester's watched videos, most recent first.
func (s *VideoService) WatchHistory(requesterID int64, page, limit int) ([]dto.WatchHistoryItem, error) {
	entries, _, err := s.historyRepo.ListByOwner(requesterID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []dto.WatchHistoryItem{}, nil
	}

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.VideoID)
	}
	videos, err := s.videoRepo.GetByIDsWithOwner(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}

	items := make([]dto.WatchHistoryItem, 0, len(entries))
	for _, e := range entries {
		v, ok := byID[e.VideoID]
		if !ok {
			continue
		}
		items = append(items, dto.WatchHistoryItem{
			Video:     dto.NewVideoInfo(v),
			Rewatched: e.Rewatched,
		})
	}
	return items, nil
}

// ListNew returns the latest ready, published videos with like counts.
func (s *VideoService) ListNew(page, limit int) (*dto.VideoListData, error) {
	videos, _, err := s.videoRepo.ListWatchable((page-1)*limit, limit, "")
	if err != nil {
		return nil, err
	}
	return s.listWithLikes(videos, page, limit)
}

// ListUploadState returns the requester's videos that have not reached
// the ready state, so the frontend can show upload progress and failures.
func (s *VideoService) ListUploadState(requesterID int64, page, limit int) ([]dto.PendingVideoInfo, error) {
	videos, _, err := s.videoRepo.ListPendingByOwner(requesterID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.PendingVideoInfo, 0, len(videos))
	for _, v := range videos {
		infos = append(infos, dto.PendingVideoInfo{
			ID:            v.ID,
			Title:         v.Title,
			Status:        string(v.Status),
			CancelMessage: v.CancelMessage,
			CreatedAt:     v.CreatedAt,
		})
	}
	return infos, nil
}

// ListByOwner returns a channel's ready, published videos.
func (s *VideoService) ListByOwner(ownerID int64, page, limit int) (*dto.VideoListData, error) {
	videos, _, err := s.videoRepo.ListByOwner(ownerID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return s.listWithLikes(videos, page, limit)
}

// ListMine returns every video the caller has uploaded, including
// unpublished and still-processing ones.
func (s *VideoService) ListMine(ownerID int64, page, limit int) (*dto.VideoListData, error) {
	videos, _, err := s.videoRepo.ListAllByOwner(ownerID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return s.listWithLikes(videos, page, limit)
}

// Recommended is a placeholder; the recommendation engine has not
// shipped yet.
func (s *VideoService) Recommended() (string, error) {
	return "recommendations are not ready yet", nil
}

func (s *VideoService) listWithLikes(videos []model.Video, page, limit int) (*dto.VideoListData, error) {
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

// syncSearch best-effort mirrors a video into the search index.
func (s *VideoService) syncSearch(ctx context.Context, video *model.Video) {
	if s.search == nil {
		return
	}
	ownerUsername := video.Owner.Username
	if ownerUsername == "" {
		if owner, err := s.userRepo.GetByID(video.OwnerID); err == nil {
			ownerUsername = owner.Username
		}
	}
	if err := s.search.SyncVideo(ctx, infraES.NewVideoDoc(video, ownerUsername)); err != nil {
		logger.Warn("search index sync failed", zap.Int64("video_id", video.ID), zap.Error(err))
	}
}
