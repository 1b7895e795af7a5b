package dto

import (
	"time"

	"vidshare-go/internal/model"
)

// PlaylistCreateRequest creates a playlist, optionally seeded with videos.
type PlaylistCreateRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"omitempty,max=1000"`
	VideoIDs    []int64 `json:"videoIds" binding:"omitempty,dive,gt=0"`
}

// PlaylistUpdateRequest edits playlist metadata.
type PlaylistUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// PlaylistVideosRequest adds or removes a batch of videos.
type PlaylistVideosRequest struct {
	VideoIDs []int64 `json:"videoIds" binding:"required,min=1,dive,gt=0"`
}

// PlaylistArrangeRequest reorders the playlist to the given sequence.
type PlaylistArrangeRequest struct {
	VideoIDs []int64 `json:"videoIds" binding:"required,min=1,dive,gt=0"`
}

// PlaylistInfo is a playlist summary.
type PlaylistInfo struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoCount  int64     `json:"videoCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PlaylistDetail includes the playlist's videos in order.
type PlaylistDetail struct {
	PlaylistInfo
	Videos []VideoInfo `json:"videos"`
}

// NewPlaylistInfo projects a model.Playlist.
func NewPlaylistInfo(p *model.Playlist, videoCount int64) PlaylistInfo {
	return PlaylistInfo{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		VideoCount:  videoCount,
		CreatedAt:   p.CreatedAt,
	}
}
