package model

import "time"

// Subscription is a subscriber → channel edge between two users.
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_sub_subscriber_channel;index:idx_subs_subscriber_id" json:"subscriber_id"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_sub_subscriber_channel;index:idx_subs_channel_id" json:"channel_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
