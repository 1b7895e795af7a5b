package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"vidshare-go/internal/model"
	"vidshare-go/pkg/logger"

	"go.uber.org/zap"
)

const videosIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"owner_id": {"type": "long"},
			"owner_username": {"type": "keyword"},
			"title": {
				"type": "text",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
			},
			"description": {"type": "text"},
			"status": {"type": "keyword"},
			"is_published": {"type": "boolean"},
			"views": {"type": "long"},
			"duration": {"type": "float"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// VideoDoc is the searchable projection of a video.
type VideoDoc struct {
	ID            int64   `json:"id"`
	OwnerID       int64   `json:"owner_id"`
	OwnerUsername string  `json:"owner_username"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	IsPublished   bool    `json:"is_published"`
	Views         int64   `json:"views"`
	Duration      float64 `json:"duration"`
	CreatedAt     string  `json:"created_at"`
}

// NewVideoDoc projects a model.Video into its index document.
func NewVideoDoc(v *model.Video, ownerUsername string) *VideoDoc {
	return &VideoDoc{
		ID:            v.ID,
		OwnerID:       v.OwnerID,
		OwnerUsername: ownerUsername,
		Title:         v.Title,
		Description:   v.Description,
		Status:        string(v.Status),
		IsPublished:   v.IsPublished,
		Views:         v.Views,
		Duration:      v.Duration,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
}

// EnsureVideosIndex creates the videos index if it does not exist yet.
func (i *Index) EnsureVideosIndex(ctx context.Context) error {
	resp, err := i.client.Indices.Exists(
		[]string{i.videoIndex},
		i.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		return nil
	}

	createResp, err := i.client.Indices.Create(
		i.videoIndex,
		i.client.Indices.Create.WithContext(ctx),
		i.client.Indices.Create.WithBody(bytes.NewReader([]byte(videosIndexMapping))),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer createResp.Body.Close()

	if createResp.IsError() {
		return fmt.Errorf("create index failed: %s", createResp.String())
	}

	logger.Info("Elasticsearch videos index created", zap.String("index", i.videoIndex))
	return nil
}

// SyncVideo indexes one video document.
func (i *Index) SyncVideo(ctx context.Context, doc *VideoDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := i.client.Index(
		i.videoIndex,
		bytes.NewReader(body),
		i.client.Index.WithContext(ctx),
		i.client.Index.WithDocumentID(fmt.Sprintf("%d", doc.ID)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.Int64("video_id", doc.ID))
	return nil
}

// DeleteVideo removes a video document. A missing document is not an error.
func (i *Index) DeleteVideo(ctx context.Context, videoID int64) error {
	resp, err := i.client.Delete(
		i.videoIndex,
		fmt.Sprintf("%d", videoID),
		i.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// SearchVideos runs the given query body and returns matching video ids in
// rank order together with the total hit count.
func (i *Index) SearchVideos(ctx context.Context, body io.Reader) ([]int64, int64, error) {
	resp, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.videoIndex),
		i.client.Search.WithBody(body),
	)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, esResp.Hits.Total.Value, nil
}
