package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create inserts a like edge.
func (r *LikeRepository) Create(ownerID, videoID int64) error {
	return r.db.Create(&model.Like{OwnerID: ownerID, VideoID: videoID}).Error
}

// Delete removes the like edge, reporting whether one existed.
func (r *LikeRepository) Delete(ownerID, videoID int64) (bool, error) {
	result := r.db.Where("owner_id = ? AND video_id = ?", ownerID, videoID).Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether the user liked the video.
func (r *LikeRepository) Exists(ownerID, videoID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("owner_id = ? AND video_id = ?", ownerID, videoID).Count(&count).Error
	return count > 0, err
}

// CountByVideo returns the like count of a video.
func (r *LikeRepository) CountByVideo(videoID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

// CountByVideos returns like counts for a batch of videos.
func (r *LikeRepository) CountByVideos(videoIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(videoIDs))
	if len(videoIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		VideoID int64
		Total   int64
	}
	err := r.db.Model(&model.Like{}).
		Select("video_id, COUNT(*) AS total").
		Where("video_id IN ?", videoIDs).
		Group("video_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.VideoID] = row.Total
	}
	return counts, nil
}

// ListVideoIDsByOwner pages through the ids of videos a user liked.
func (r *LikeRepository) ListVideoIDsByOwner(ownerID int64, skip, limit int) ([]int64, int64, error) {
	query := r.db.Model(&model.Like{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Pluck("video_id", &ids).Error
	return ids, total, err
}

// DeleteByVideo drops all like edges of a deleted video.
func (r *LikeRepository) DeleteByVideo(videoID int64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.Like{}).Error
}
