package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create inserts a subscriber → channel edge.
func (r *SubscriptionRepository) Create(subscriberID, channelID int64) error {
	return r.db.Create(&model.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}).Error
}

// Delete removes the edge, reporting whether one existed.
func (r *SubscriptionRepository) Delete(subscriberID, channelID int64) (bool, error) {
	result := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether subscriber follows channel.
func (r *SubscriptionRepository) Exists(subscriberID, channelID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).Count(&count).Error
	return count > 0, err
}

// CountSubscribers returns how many users follow the channel.
func (r *SubscriptionRepository) CountSubscribers(channelID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// CountSubscribedTo returns how many channels the user follows.
func (r *SubscriptionRepository) CountSubscribedTo(subscriberID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

// ListSubscriberIDs pages through the ids of a channel's subscribers.
func (r *SubscriptionRepository) ListSubscriberIDs(channelID int64, skip, limit int) ([]int64, int64, error) {
	query := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Pluck("subscriber_id", &ids).Error
	return ids, total, err
}

// ListChannelIDs pages through the ids of channels a user follows.
func (r *SubscriptionRepository) ListChannelIDs(subscriberID int64, skip, limit int) ([]int64, int64, error) {
	query := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Pluck("channel_id", &ids).Error
	return ids, total, err
}
