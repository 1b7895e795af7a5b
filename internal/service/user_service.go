package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"vidshare-go/internal/api/dto"
	infraMinio "vidshare-go/internal/infra/minio"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/logger"
)

var ErrNoProfileFields = errors.New("no profile fields to update")

type UserService struct {
	userRepo *repository.UserRepository
	subRepo  *repository.SubscriptionRepository
	storage  *infraMinio.Storage
}

func NewUserService(userRepo *repository.UserRepository, subRepo *repository.SubscriptionRepository, storage *infraMinio.Storage) *UserService {
	return &UserService{userRepo: userRepo, subRepo: subRepo, storage: storage}
}

// GetCurrentUser returns the caller's own channel view.
func (s *UserService) GetCurrentUser(userID int64) (*dto.ChannelInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.channelView(user.ID, user, userID)
}

// GetChannel returns a channel by username with subscription aggregates
// relative to the requester. requesterID is zero for anonymous callers.
func (s *UserService) GetChannel(username string, requesterID int64) (*dto.ChannelInfo, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.channelView(user.ID, user, requesterID)
}

func (s *UserService) channelView(channelID int64, user *model.User, requesterID int64) (*dto.ChannelInfo, error) {
	subscribers, err := s.subRepo.CountSubscribers(channelID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subRepo.CountSubscribedTo(channelID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if requesterID > 0 && requesterID != channelID {
		isSubscribed, err = s.subRepo.Exists(requesterID, channelID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ChannelInfo{
		UserInfo:          dto.NewUserInfo(user),
		SubscriberCount:   subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// UpdateProfile applies a partial profile update. At least one field must
// be present.
func (s *UserService) UpdateProfile(userID int64, req *dto.UserUpdateRequest) (*dto.UserInfo, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) == 0 {
		return nil, ErrNoProfileFields
	}

	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		return nil, ErrUserNotFound
	}
	info := dto.NewUserInfo(user)
	return &info, nil
}

// ProfileImage is a staged avatar or background file on local disk.
type ProfileImage struct {
	LocalPath   string
	ContentType string
	Ext         string
}

// UpdateImages uploads new avatar and/or background originals to the raw
// bucket under deterministic keys. The processed URLs arrive later via
// the image-ready callback; the previous processed object is removed so
// stale assets do not accumulate.
func (s *UserService) UpdateImages(ctx context.Context, userID int64, avatar, background *ProfileImage) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if avatar != nil {
		key := fmt.Sprintf("uid-avatar%d%s", userID, avatar.Ext)
		if err := s.storage.UploadLocalFile(ctx, s.storage.RawBucket(), key, avatar.LocalPath, avatar.ContentType, nil); err != nil {
			return fmt.Errorf("failed to upload avatar: %w", err)
		}
		s.removePrevious(ctx, user.Avatar)
	}

	if background != nil {
		key := fmt.Sprintf("uid-bg%d%s", userID, background.Ext)
		if err := s.storage.UploadLocalFile(ctx, s.storage.RawBucket(), key, background.LocalPath, background.ContentType, nil); err != nil {
			return fmt.Errorf("failed to upload background: %w", err)
		}
		s.removePrevious(ctx, user.Background)
	}

	return nil
}

// removePrevious best-effort deletes the prior processed image.
func (s *UserService) removePrevious(ctx context.Context, url string) {
	if url == "" {
		return
	}
	objectName := s.storage.ObjectNameFromURL(s.storage.ImageBucket(), url)
	if objectName == "" {
		return
	}
	if err := s.storage.DeleteObject(ctx, s.storage.ImageBucket(), objectName); err != nil {
		logger.Warn("failed to delete previous profile image",
			zap.String("object", objectName), zap.Error(err))
	}
}
