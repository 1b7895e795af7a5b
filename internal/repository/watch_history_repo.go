package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type WatchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

// Get returns the (owner, video) history row.
func (r *WatchHistoryRepository) Get(ownerID, videoID int64) (*model.WatchHistory, error) {
	var h model.WatchHistory
	err := r.db.Where("owner_id = ? AND video_id = ?", ownerID, videoID).First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Create inserts a fresh history row with a zero rewatch counter.
func (r *WatchHistoryRepository) Create(ownerID, videoID int64) error {
	return r.db.Create(&model.WatchHistory{OwnerID: ownerID, VideoID: videoID}).Error
}

// IncrementRewatched bumps the rewatch counter atomically.
func (r *WatchHistoryRepository) IncrementRewatched(ownerID, videoID int64) error {
	return r.db.Model(&model.WatchHistory{}).
		Where("owner_id = ? AND video_id = ?", ownerID, videoID).
		UpdateColumn("rewatched", gorm.Expr("rewatched + 1")).Error
}

// ListByOwner pages through a user's watch history, most recent first.
func (r *WatchHistoryRepository) ListByOwner(ownerID int64, skip, limit int) ([]model.WatchHistory, int64, error) {
	query := r.db.Model(&model.WatchHistory{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.WatchHistory
	err := query.Order("updated_at DESC").Offset(skip).Limit(limit).
		Preload("Video").Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
