package model

import "time"

// Community is a channel post (text plus an optional image, set by the image
// pipeline callback).
type Community struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"not null;index:idx_community_owner_id" json:"owner_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     string    `gorm:"size:500" json:"image"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_community_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Community) TableName() string {
	return "communities"
}
