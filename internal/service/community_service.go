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

var (
	ErrCommunityNotFound = errors.New("community post not found")
	ErrNotCommunityOwner = errors.New("only the owner may modify this post")
)

type CommunityService struct {
	communityRepo *repository.CommunityRepository
	storage       *infraMinio.Storage
}

func NewCommunityService(communityRepo *repository.CommunityRepository, storage *infraMinio.Storage) *CommunityService {
	return &CommunityService{communityRepo: communityRepo, storage: storage}
}

// Create posts a community entry. An optional image goes through the
// image pipeline; its processed URL arrives via the image-ready
// callback.
func (s *CommunityService) Create(ctx context.Context, ownerID int64, content string, image *ProfileImage) (*dto.CommunityInfo, error) {
	post := &model.Community{OwnerID: ownerID, Content: content}
	if err := s.communityRepo.Create(post); err != nil {
		return nil, err
	}

	if image != nil {
		key := fmt.Sprintf("communityId-%d%s", post.ID, image.Ext)
		if err := s.storage.UploadLocalFile(ctx, s.storage.RawBucket(), key, image.LocalPath, image.ContentType, nil); err != nil {
			if delErr := s.communityRepo.Delete(post.ID); delErr != nil {
				logger.Error("rollback: failed to delete community post",
					zap.Int64("post_id", post.ID), zap.Error(delErr))
			}
			return nil, fmt.Errorf("failed to upload community image: %w", err)
		}
	}

	info := dto.NewCommunityInfo(post)
	return &info, nil
}

// ListByOwner pages through a user's community entries.
func (s *CommunityService) ListByOwner(ownerID int64, page, limit int) ([]dto.CommunityInfo, error) {
	posts, _, err := s.communityRepo.ListByOwner(ownerID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.CommunityInfo, 0, len(posts))
	for i := range posts {
		infos = append(infos, dto.NewCommunityInfo(&posts[i]))
	}
	return infos, nil
}

// Update edits an entry's text. Owner only.
func (s *CommunityService) Update(postID, requesterID int64, content string) (*dto.CommunityInfo, error) {
	post, err := s.communityRepo.GetByID(postID)
	if err != nil {
		return nil, ErrCommunityNotFound
	}
	if post.OwnerID != requesterID {
		return nil, ErrNotCommunityOwner
	}

	updated, err := s.communityRepo.Update(postID, map[string]interface{}{"content": content})
	if err != nil {
		return nil, err
	}
	info := dto.NewCommunityInfo(updated)
	return &info, nil
}

// Delete removes an entry and its processed image. Owner only.
func (s *CommunityService) Delete(ctx context.Context, postID, requesterID int64) error {
	post, err := s.communityRepo.GetByID(postID)
	if err != nil {
		return ErrCommunityNotFound
	}
	if post.OwnerID != requesterID {
		return ErrNotCommunityOwner
	}

	if post.Image != "" {
		objectName := s.storage.ObjectNameFromURL(s.storage.ImageBucket(), post.Image)
		if objectName != "" {
			if err := s.storage.DeleteObject(ctx, s.storage.ImageBucket(), objectName); err != nil {
				logger.Warn("failed to delete community image",
					zap.String("object", objectName), zap.Error(err))
			}
		}
	}
	return s.communityRepo.Delete(postID)
}
