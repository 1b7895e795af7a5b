package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID fetches a video by id.
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner fetches a video with its owner and stream variants.
func (r *VideoRepository) GetByIDWithOwner(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").Preload("Variants").Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Create inserts a new video row.
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Update applies a partial update and returns the fresh row.
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete removes the video row and its stream variants.
func (r *VideoRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", id).Delete(&model.StreamVariant{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Video{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ReplaceVariants swaps the per-quality stream URLs of a video.
func (r *VideoRepository) ReplaceVariants(videoID int64, variants []model.StreamVariant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", videoID).Delete(&model.StreamVariant{}).Error; err != nil {
			return err
		}
		if len(variants) == 0 {
			return nil
		}
		for i := range variants {
			variants[i].VideoID = videoID
		}
		return tx.Create(&variants).Error
	})
}

// ListWatchable pages through published, ready videos with owners preloaded.
// search, when non-empty, filters by title/description substring.
func (r *VideoRepository) ListWatchable(skip, limit int, search string) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).
		Where("status = ? AND is_published = ?", model.StatusReady, true)

	if search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).
		Preload("Owner").Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListByOwner pages through one owner's watchable videos, newest first.
// This backs the public channel page, so only ready, published videos
// appear.
func (r *VideoRepository) ListByOwner(ownerID int64, skip, limit int) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).
		Where("owner_id = ? AND status = ? AND is_published = ?", ownerID, model.StatusReady, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).
		Preload("Owner").Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListAllByOwner pages through every video an owner has uploaded, whatever
// its status or publication flag. This backs the owner's own library view.
func (r *VideoRepository) ListAllByOwner(ownerID int64, skip, limit int) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).
		Preload("Owner").Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListPendingByOwner pages through an owner's not-yet-ready uploads, used for
// the upload state view (processing and canceled videos).
func (r *VideoRepository) ListPendingByOwner(ownerID int64, skip, limit int) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).
		Where("owner_id = ? AND status IN ?", ownerID,
			[]model.VideoStatus{model.StatusUploading, model.StatusProcessing, model.StatusCanceled})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// GetByIDsWithOwner fetches videos in bulk with owners, for ES result hydration.
func (r *VideoRepository) GetByIDsWithOwner(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Owner").Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// IncrementViews bumps the view counter atomically in the database, so
// concurrent views never lose updates.
func (r *VideoRepository) IncrementViews(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
