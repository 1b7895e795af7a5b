package model

import "time"

// Playlist is an owner-curated ordered collection of videos.
type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID     int64     `gorm:"not null;index:idx_playlists_owner_id" json:"owner_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Entries []PlaylistVideo `gorm:"foreignKey:PlaylistID" json:"entries,omitempty"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo is one membership edge; Position defines the play order.
type PlaylistVideo struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"-"`
	PlaylistID int64 `gorm:"not null;uniqueIndex:uq_playlist_video" json:"playlist_id"`
	VideoID    int64 `gorm:"not null;uniqueIndex:uq_playlist_video" json:"video_id"`
	Position   int   `gorm:"not null;default:0" json:"position"`

	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
