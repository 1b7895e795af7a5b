package model

import "time"

// Like marks that a user liked a video.
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"not null;uniqueIndex:uq_like_owner_video" json:"owner_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_like_owner_video;index:idx_likes_video_id" json:"video_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}
