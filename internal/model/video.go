package model

import "time"

// VideoStatus is the processing lifecycle of a video. A video is created as
// StatusUploading while its files stream to object storage; every later
// transition is driven by the media pipeline's callbacks, never by the owner.
type VideoStatus string

const (
	StatusUploading  VideoStatus = "uploading"
	StatusProcessing VideoStatus = "processing"
	StatusReady      VideoStatus = "ready"
	StatusCanceled   VideoStatus = "canceled"
)

var videoTransitions = map[VideoStatus][]VideoStatus{
	StatusUploading:  {StatusProcessing, StatusCanceled},
	StatusProcessing: {StatusReady, StatusCanceled},
	StatusReady:      {},
	StatusCanceled:   {},
}

// CanTransitionTo reports whether next is a legal move from s.
// Ready and canceled are terminal.
func (s VideoStatus) CanTransitionTo(next VideoStatus) bool {
	for _, allowed := range videoTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status value.
func (s VideoStatus) Valid() bool {
	_, ok := videoTransitions[s]
	return ok
}

// StreamVariant is one per-quality stream URL produced by the transcoder.
type StreamVariant struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	VideoID int64  `gorm:"not null;index:idx_variants_video_id" json:"-"`
	Quality string `gorm:"size:10;not null" json:"quality"`
	URL     string `gorm:"size:500;not null" json:"url"`
}

func (StreamVariant) TableName() string {
	return "stream_variants"
}

// Video metadata. Stream, thumbnail and caption URLs are filled in by the
// processing gateway once the external pipeline reports completion.
type Video struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID       int64       `gorm:"not null;index:idx_videos_owner_id" json:"owner_id"`
	Title         string      `gorm:"size:200;not null" json:"title"`
	Description   string      `gorm:"type:text;not null" json:"description"`
	Thumbnail     string      `gorm:"size:500" json:"thumbnail"`
	CaptionURL    string      `gorm:"size:500" json:"caption_url"`
	MasterURL     string      `gorm:"size:500" json:"master_url"`
	Duration      float64     `gorm:"default:0" json:"duration"`
	Views         int64       `gorm:"default:0" json:"views"`
	Status        VideoStatus `gorm:"size:20;not null;default:'uploading';index:idx_videos_status" json:"status"`
	CancelMessage string      `gorm:"size:500" json:"cancel_message,omitempty"`
	IsPublished   bool        `gorm:"not null;default:true;index:idx_videos_published" json:"is_published"`
	CreatedAt     time.Time   `gorm:"autoCreateTime;index:idx_videos_created_at" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Owner    User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Variants []StreamVariant `gorm:"foreignKey:VideoID" json:"variants,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

// IsReady reports whether the video finished processing and can be watched.
func (v *Video) IsReady() bool {
	return v.Status == StatusReady
}
