package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidshare-go/internal/model"
)

func TestNewVideoInfo(t *testing.T) {
	v := &model.Video{
		ID:          5,
		OwnerID:     2,
		Title:       "demo",
		Description: "text",
		Duration:    12.5,
		Views:       3,
		Status:      model.StatusReady,
		IsPublished: true,
		Variants: []model.StreamVariant{
			{Quality: "360p", URL: "u360"},
			{Quality: "720p", URL: "u720"},
		},
		Owner: model.User{ID: 2, Username: "alice", Avatar: "a.png"},
	}

	info := NewVideoInfo(v)
	assert.Equal(t, int64(5), info.ID)
	assert.Equal(t, "ready", info.Status)
	require.Len(t, info.Variants, 2)
	assert.Equal(t, "360p", info.Variants[0].Quality)

	require.NotNil(t, info.Owner)
	assert.Equal(t, "alice", info.Owner.Username)
}

func TestNewVideoInfoWithoutOwner(t *testing.T) {
	info := NewVideoInfo(&model.Video{ID: 1, Status: model.StatusProcessing})
	assert.Nil(t, info.Owner)
	assert.Empty(t, info.Variants)
}
