package dto

import (
	"time"

	"vidshare-go/internal/model"
)

// VideoUploadRequest is the multipart metadata accompanying the video and
// thumbnail files.
type VideoUploadRequest struct {
	Title       string `form:"title" binding:"required,notblank,max=200"`
	Description string `form:"description" binding:"required,notblank"`
}

// VideoUpdateRequest edits title and description.
type VideoUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,notblank,max=200"`
	Description *string `json:"description" binding:"omitempty,notblank"`
	IsPublished *bool   `json:"isPublished"`
}

// StreamVariantInfo is one transcoded rendition of a video.
type StreamVariantInfo struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

// VideoInfo is the public view of a video.
type VideoInfo struct {
	ID          int64               `json:"id"`
	OwnerID     int64               `json:"ownerId"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Thumbnail   string              `json:"thumbnail"`
	CaptionURL  string              `json:"captionUrl,omitempty"`
	MasterURL   string              `json:"masterUrl,omitempty"`
	Duration    float64             `json:"duration"`
	Views       int64               `json:"views"`
	Status      string              `json:"status"`
	IsPublished bool                `json:"isPublished"`
	Variants    []StreamVariantInfo `json:"variants,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	Owner       *OwnerBrief         `json:"owner,omitempty"`
}

// VideoDetail is the joined single-video view with requester-relative
// flags.
type VideoDetail struct {
	VideoInfo
	LikeCount       int64 `json:"likeCount"`
	SubscriberCount int64 `json:"subscriberCount"`
	IsLiked         bool  `json:"isLiked"`
	IsSubscribed    bool  `json:"isSubscribed"`
	CanUpdate       bool  `json:"canUpdate"`
}

// VideoListItem is a list entry with its like count.
type VideoListItem struct {
	VideoInfo
	LikeCount int64 `json:"likeCount"`
}

// VideoListData is a paginated video listing.
type VideoListData struct {
	Videos []VideoListItem `json:"videos"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

// PendingVideoInfo is an owner-facing view of a video that has not
// reached the ready state.
type PendingVideoInfo struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	CancelMessage string    `json:"cancelMessage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewVideoInfo projects a model.Video; owner may be nil when not joined.
func NewVideoInfo(v *model.Video) VideoInfo {
	info := VideoInfo{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		CaptionURL:  v.CaptionURL,
		MasterURL:   v.MasterURL,
		Duration:    v.Duration,
		Views:       v.Views,
		Status:      string(v.Status),
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
	}
	for _, variant := range v.Variants {
		info.Variants = append(info.Variants, StreamVariantInfo{
			Quality: variant.Quality,
			URL:     variant.URL,
		})
	}
	if v.Owner.ID != 0 {
		owner := NewOwnerBrief(&v.Owner)
		info.Owner = &owner
	}
	return info
}
