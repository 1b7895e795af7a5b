package model

import "time"

// WatchHistory records that a user watched a video. One row per (owner, video)
// pair; repeat views bump the rewatch counter.
type WatchHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"not null;uniqueIndex:uq_history_owner_video" json:"owner_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_history_owner_video;index:idx_history_video_id" json:"video_id"`
	Rewatched int64     `gorm:"not null;default:0" json:"rewatched"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
