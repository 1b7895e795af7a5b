package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// GetByID fetches a playlist by id.
func (r *PlaylistRepository) GetByID(id int64) (*model.Playlist, error) {
	var p model.Playlist
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDWithEntries fetches a playlist with its entries in play order.
func (r *PlaylistRepository) GetByIDWithEntries(id int64) (*model.Playlist, error) {
	var p model.Playlist
	err := r.db.
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Entries.Video").
		Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new playlist.
func (r *PlaylistRepository) Create(p *model.Playlist) error {
	return r.db.Create(p).Error
}

// Update applies a partial update and returns the fresh row.
func (r *PlaylistRepository) Update(id int64, updates map[string]interface{}) (*model.Playlist, error) {
	result := r.db.Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete removes the playlist and its membership rows.
func (r *PlaylistRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Playlist{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByOwner returns all playlists of a user, newest first.
func (r *PlaylistRepository) ListByOwner(ownerID int64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&playlists).Error
	return playlists, err
}

// MaxPosition returns the highest position currently used in a playlist.
func (r *PlaylistRepository) MaxPosition(playlistID int64) (int, error) {
	var max *int
	err := r.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Select("MAX(position)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// AddVideo appends a membership edge at the given position.
func (r *PlaylistRepository) AddVideo(playlistID, videoID int64, position int) error {
	return r.db.Create(&model.PlaylistVideo{
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   position,
	}).Error
}

// HasVideo reports whether a video is already in the playlist.
func (r *PlaylistRepository) HasVideo(playlistID, videoID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).Count(&count).Error
	return count > 0, err
}

// RemoveVideos deletes the given membership edges.
func (r *PlaylistRepository) RemoveVideos(playlistID int64, videoIDs []int64) (int64, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}
	result := r.db.Where("playlist_id = ? AND video_id IN ?", playlistID, videoIDs).
		Delete(&model.PlaylistVideo{})
	return result.RowsAffected, result.Error
}

// RemoveAllVideos empties the playlist.
func (r *PlaylistRepository) RemoveAllVideos(playlistID int64) error {
	return r.db.Where("playlist_id = ?", playlistID).Delete(&model.PlaylistVideo{}).Error
}

// Reorder rewrites positions so entries follow the order of videoIDs.
func (r *PlaylistRepository) Reorder(playlistID int64, videoIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i, videoID := range videoIDs {
			err := tx.Model(&model.PlaylistVideo{}).
				Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
				Update("position", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CountVideos returns the number of entries in a playlist.
func (r *PlaylistRepository) CountVideos(playlistID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).Count(&count).Error
	return count, err
}
