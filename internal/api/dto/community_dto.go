package dto

import (
	"time"

	"vidshare-go/internal/model"
)

// CommunityCreateRequest posts a community entry; the image travels as a
// multipart file alongside this form.
type CommunityCreateRequest struct {
	Content string `form:"content" binding:"required,min=1,max=5000"`
}

// CommunityUpdateRequest edits a community entry's text.
type CommunityUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CommunityInfo is the public view of a community entry.
type CommunityInfo struct {
	ID        int64       `json:"id"`
	Content   string      `json:"content"`
	Image     string      `json:"image,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
}

// NewCommunityInfo projects a model.Community.
func NewCommunityInfo(c *model.Community) CommunityInfo {
	info := CommunityInfo{
		ID:        c.ID,
		Content:   c.Content,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
	}
	if c.Owner.ID != 0 {
		owner := NewOwnerBrief(&c.Owner)
		info.Owner = &owner
	}
	return info
}
