package dto

import (
	"time"

	"vidshare-go/internal/model"
)

// CommentCreateRequest posts a comment; parentId makes it a reply.
type CommentCreateRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=2000"`
	ParentID *int64 `json:"parentId" binding:"omitempty,gt=0"`
}

// CommentUpdateRequest edits a comment's content.
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentInfo is the public view of a comment.
type CommentInfo struct {
	ID        int64       `json:"id"`
	VideoID   int64       `json:"videoId"`
	ParentID  *int64      `json:"parentId,omitempty"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
}

// CommentListData is a paginated comment listing.
type CommentListData struct {
	Comments []CommentInfo `json:"comments"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
}

// NewCommentInfo projects a model.Comment.
func NewCommentInfo(c *model.Comment) CommentInfo {
	info := CommentInfo{
		ID:        c.ID,
		VideoID:   c.VideoID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.Owner.ID != 0 {
		owner := NewOwnerBrief(&c.Owner)
		info.Owner = &owner
	}
	return info
}
