package service

import (
	"errors"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
)

var (
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrNotPlaylistOwner = errors.New("only the owner may modify this playlist")
	ErrVideoNotInList   = errors.New("video is not in the playlist")
	ErrArrangeMismatch  = errors.New("arrangement must contain exactly the playlist's videos")
)

type PlaylistService struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
}

func NewPlaylistService(playlistRepo *repository.PlaylistRepository, videoRepo *repository.VideoRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

// Create builds a playlist, optionally seeded with an ordered set of
// videos. Seed videos that do not exist are rejected wholesale.
func (s *PlaylistService) Create(ownerID int64, req *dto.PlaylistCreateRequest) (*dto.PlaylistInfo, error) {
	playlist := &model.Playlist{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}

	for i, videoID := range req.VideoIDs {
		if _, err := s.videoRepo.GetByID(videoID); err != nil {
			return nil, ErrVideoNotFound
		}
		if err := s.playlistRepo.AddVideo(playlist.ID, videoID, i); err != nil {
			return nil, err
		}
	}

	info := dto.NewPlaylistInfo(playlist, int64(len(req.VideoIDs)))
	return &info, nil
}

// Get returns the playlist with its videos in arranged order.
func (s *PlaylistService) Get(playlistID int64) (*dto.PlaylistDetail, error) {
	playlist, err := s.playlistRepo.GetByIDWithEntries(playlistID)
	if err != nil {
		return nil, ErrPlaylistNotFound
	}

	detail := &dto.PlaylistDetail{
		PlaylistInfo: dto.NewPlaylistInfo(playlist, int64(len(playlist.Entries))),
		Videos:       make([]dto.VideoInfo, 0, len(playlist.Entries)),
	}
	for i := range playlist.Entries {
		detail.Videos = append(detail.Videos, dto.NewVideoInfo(&playlist.Entries[i].Video))
	}
	return detail, nil
}

// ListByOwner returns a user's playlists with video counts.
func (s *PlaylistService) ListByOwner(ownerID int64) ([]dto.PlaylistInfo, error) {
	playlists, err := s.playlistRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		count, err := s.playlistRepo.CountVideos(playlists[i].ID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, dto.NewPlaylistInfo(&playlists[i], count))
	}
	return infos, nil
}

// Update edits playlist metadata. Owner only.
func (s *PlaylistService) Update(playlistID, requesterID int64, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	if err := s.requireOwner(playlistID, requesterID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdateFields
	}

	playlist, err := s.playlistRepo.Update(playlistID, updates)
	if err != nil {
		return nil, err
	}
	count, err := s.playlistRepo.CountVideos(playlistID)
	if err != nil {
		return nil, err
	}
	info := dto.NewPlaylistInfo(playlist, count)
	return &info, nil
}

// Delete removes the playlist and its membership rows. Owner only.
func (s *PlaylistService) Delete(playlistID, requesterID int64) error {
	if err := s.requireOwner(playlistID, requesterID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(playlistID)
}

// AddVideos appends videos at the end, skipping ones already present.
func (s *PlaylistService) AddVideos(playlistID, requesterID int64, videoIDs []int64) error {
	if err := s.requireOwner(playlistID, requesterID); err != nil {
		return err
	}

	position, err := s.playlistRepo.MaxPosition(playlistID)
	if err != nil {
		return err
	}

	for _, videoID := range videoIDs {
		if _, err := s.videoRepo.GetByID(videoID); err != nil {
			return ErrVideoNotFound
		}
		present, err := s.playlistRepo.HasVideo(playlistID, videoID)
		if err != nil {
			return err
		}
		if present {
			continue
		}
		position++
		if err := s.playlistRepo.AddVideo(playlistID, videoID, position); err != nil {
			return err
		}
	}
	return nil
}

// RemoveVideos drops the given videos from the playlist.
func (s *PlaylistService) RemoveVideos(playlistID, requesterID int64, videoIDs []int64) error {
	if err := s.requireOwner(playlistID, requesterID); err != nil {
		return err
	}

	removed, err := s.playlistRepo.RemoveVideos(playlistID, videoIDs)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrVideoNotInList
	}
	return nil
}

// Clear empties the playlist without deleting it. Owner only.
func (s *PlaylistService) Clear(playlistID, requesterID int64) error {
	if err := s.requireOwner(playlistID, requesterID); err != nil {
		return err
	}
	return s.playlistRepo.RemoveAllVideos(playlistID)
}

// Arrange reorders the playlist to exactly the given sequence.
func (s *PlaylistService) Arrange(playlistID, requesterID int64, videoIDs []int64) error {
	if err := s.requireOwner(playlistID, requesterID); err != nil {
		return err
	}

	count, err := s.playlistRepo.CountVideos(playlistID)
	if err != nil {
		return err
	}
	if count != int64(len(videoIDs)) {
		return ErrArrangeMismatch
	}
	seen := make(map[int64]bool, len(videoIDs))
	for _, videoID := range videoIDs {
		if seen[videoID] {
			return ErrArrangeMismatch
		}
		seen[videoID] = true
		present, err := s.playlistRepo.HasVideo(playlistID, videoID)
		if err != nil {
			return err
		}
		if !present {
			return ErrArrangeMismatch
		}
	}

	return s.playlistRepo.Reorder(playlistID, videoIDs)
}

func (s *PlaylistService) requireOwner(playlistID, requesterID int64) error {
	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		return ErrPlaylistNotFound
	}
	if playlist.OwnerID != requesterID {
		return ErrNotPlaylistOwner
	}
	return nil
}
