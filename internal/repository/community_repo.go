package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// GetByID fetches a community post by id.
func (r *CommunityRepository) GetByID(id int64) (*model.Community, error) {
	var post model.Community
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts a new community post.
func (r *CommunityRepository) Create(post *model.Community) error {
	return r.db.Create(post).Error
}

// Update applies a partial update and returns the fresh row.
func (r *CommunityRepository) Update(id int64, updates map[string]interface{}) (*model.Community, error) {
	result := r.db.Model(&model.Community{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete removes a community post.
func (r *CommunityRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&model.Community{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner pages through a channel's posts, newest first.
func (r *CommunityRepository) ListByOwner(ownerID int64, skip, limit int) ([]model.Community, int64, error) {
	query := r.db.Model(&model.Community{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Community
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
