package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"vidshare-go/internal/api/dto"
	infraES "vidshare-go/internal/infra/elasticsearch"
	infraRedis "vidshare-go/internal/infra/redis"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/logger"
	"vidshare-go/pkg/utils"
)

var (
	ErrBadWebhookSecret = errors.New("webhook secret mismatch")
	ErrBadObjectKey     = errors.New("malformed object key")
	ErrBadTransition    = errors.New("video is not in a state that accepts this result")
)

// qualityBuckets are the renditions a video may carry. Stream URLs whose
// label matches no bucket are dropped.
var qualityBuckets = []string{"360p", "480p", "720p", "1080p"}

// imageTarget identifies what an image-ready object key points at.
type imageTarget int

const (
	targetUserAvatar imageTarget = iota
	targetUserBackground
	targetCommunityImage
	targetVideoThumbnail
)

// ProcessService ingests transcoder and image-pipeline callbacks.
type ProcessService struct {
	videoRepo     *repository.VideoRepository
	userRepo      *repository.UserRepository
	communityRepo *repository.CommunityRepository
	search        *infraES.Index
	cache         *infraRedis.Cache
	secret        string
}

func NewProcessService(
	videoRepo *repository.VideoRepository,
	userRepo *repository.UserRepository,
	communityRepo *repository.CommunityRepository,
	search *infraES.Index,
	cache *infraRedis.Cache,
	secret string,
) *ProcessService {
	return &ProcessService{
		videoRepo:     videoRepo,
		userRepo:      userRepo,
		communityRepo: communityRepo,
		search:        search,
		cache:         cache,
		secret:        secret,
	}
}

// checkSecret compares in constant time so the gate leaks no timing
// information.
func (s *ProcessService) checkSecret(presented string) error {
	if !utils.SecureCompare(s.secret, presented) {
		return ErrBadWebhookSecret
	}
	return nil
}

// stripExtension removes a single trailing file extension, if any.
func stripExtension(key string) string {
	if i := strings.LastIndexByte(key, '.'); i > 0 {
		return key[:i]
	}
	return key
}

// parseID parses a positive decimal id.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadObjectKey
	}
	return id, nil
}

// parseVideoObjKey recovers the video id from an upload key like
// "42.mp4".
func parseVideoObjKey(objKey string) (int64, error) {
	return parseID(strings.TrimSuffix(objKey, ".mp4"))
}

// parseImageObjKey routes an image-ready key to its target. Keys look
// like "uid-avatar7.png", "uid-bg7.png", "communityId-3.png", or a bare
// video id "42.png".
func parseImageObjKey(objKey string) (imageTarget, int64, error) {
	base := stripExtension(objKey)
	switch {
	case strings.HasPrefix(base, "uid-avatar"):
		id, err := parseID(strings.TrimPrefix(base, "uid-avatar"))
		return targetUserAvatar, id, err
	case strings.HasPrefix(base, "uid-bg"):
		id, err := parseID(strings.TrimPrefix(base, "uid-bg"))
		return targetUserBackground, id, err
	case strings.HasPrefix(base, "communityId-"):
		id, err := parseID(strings.TrimPrefix(base, "communityId-"))
		return targetCommunityImage, id, err
	default:
		id, err := parseID(base)
		return targetVideoThumbnail, id, err
	}
}

// matchQualities folds labeled stream URLs into the fixed quality
// buckets by substring containment. Unmatched labels are dropped.
func matchQualities(videoID int64, streamURLs map[string]string) []model.StreamVariant {
	var variants []model.StreamVariant
	for _, bucket := range qualityBuckets {
		for label, url := range streamURLs {
			if strings.Contains(label, bucket) {
				variants = append(variants, model.StreamVariant{
					VideoID: videoID,
					Quality: bucket,
					URL:     url,
				})
				break
			}
		}
	}
	return variants
}

// HandleVideoReady finalizes a video once the transcoder reports
// success: stores the stream variants, duration, caption and manifest
// URLs, and flips the status to ready.
func (s *ProcessService) HandleVideoReady(ctx context.Context, req *dto.VideoReadyRequest) error {
	if err := s.checkSecret(req.Secret); err != nil {
		return err
	}

	videoID, err := parseVideoObjKey(req.ObjKey)
	if err != nil {
		return err
	}
	video, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		return ErrVideoNotFound
	}
	if !video.Status.CanTransitionTo(model.StatusReady) {
		return ErrBadTransition
	}

	if err := s.videoRepo.ReplaceVariants(videoID, matchQualities(videoID, req.StreamURLs)); err != nil {
		return err
	}

	updated, err := s.videoRepo.Update(videoID, map[string]interface{}{
		"status":      model.StatusReady,
		"duration":    req.Duration,
		"caption_url": req.CaptionURL,
		"master_url":  req.MasterURL,
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, videoID)
	if s.search != nil {
		doc := infraES.NewVideoDoc(updated, video.Owner.Username)
		if err := s.search.SyncVideo(ctx, doc); err != nil {
			logger.Warn("search index sync failed", zap.Int64("video_id", videoID), zap.Error(err))
		}
	}
	return nil
}

// HandleImageReady stores a processed image URL on whatever entity the
// object key addresses.
func (s *ProcessService) HandleImageReady(ctx context.Context, req *dto.ImageReadyRequest) error {
	if err := s.checkSecret(req.Secret); err != nil {
		return err
	}

	target, id, err := parseImageObjKey(req.ObjKey)
	if err != nil {
		return err
	}

	switch target {
	case targetUserAvatar:
		if _, err := s.userRepo.Update(id, map[string]interface{}{"avatar": req.URL}); err != nil {
			return ErrUserNotFound
		}
	case targetUserBackground:
		if _, err := s.userRepo.Update(id, map[string]interface{}{"background": req.URL}); err != nil {
			return ErrUserNotFound
		}
	case targetCommunityImage:
		if _, err := s.communityRepo.Update(id, map[string]interface{}{"image": req.URL}); err != nil {
			return ErrCommunityNotFound
		}
	case targetVideoThumbnail:
		if _, err := s.videoRepo.Update(id, map[string]interface{}{"thumbnail": req.URL}); err != nil {
			return ErrVideoNotFound
		}
		s.invalidate(ctx, id)
	}
	return nil
}

// HandleProcessError cancels a video after a transcoding failure,
// keeping the reported message for the owner to see.
func (s *ProcessService) HandleProcessError(ctx context.Context, req *dto.ProcessErrorRequest) error {
	if err := s.checkSecret(req.Secret); err != nil {
		return err
	}

	videoID, err := parseVideoObjKey(req.ObjKey)
	if err != nil {
		return err
	}
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		return ErrVideoNotFound
	}
	if !video.Status.CanTransitionTo(model.StatusCanceled) {
		return ErrBadTransition
	}

	if _, err := s.videoRepo.Update(videoID, map[string]interface{}{
		"status":         model.StatusCanceled,
		"cancel_message": req.Message,
	}); err != nil {
		return err
	}

	s.invalidate(ctx, videoID)
	return nil
}

func (s *ProcessService) invalidate(ctx context.Context, videoID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, videoCacheKey(videoID)); err != nil {
		logger.Warn("video cache invalidation failed", zap.Int64("video_id", videoID), zap.Error(err))
	}
}
