package model

import "time"

// Comment on a video. ParentID links replies to their parent comment.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"not null;index:idx_comments_owner_id" json:"owner_id"`
	VideoID   int64     `gorm:"not null;index:idx_comments_video_id" json:"video_id"`
	ParentID  *int64    `gorm:"index:idx_comments_parent_id" json:"parent_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Owner   User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
