package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoObjKey(t *testing.T) {
	id, err := parseVideoObjKey("42.mp4")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	// A bare id without the suffix still parses.
	id, err = parseVideoObjKey("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	for _, bad := range []string{"", ".mp4", "abc.mp4", "-1.mp4", "0.mp4", "4 2.mp4"} {
		_, err := parseVideoObjKey(bad)
		assert.ErrorIs(t, err, ErrBadObjectKey, bad)
	}
}

func TestParseImageObjKey(t *testing.T) {
	cases := []struct {
		key    string
		target imageTarget
		id     int64
	}{
		{"uid-avatar7.png", targetUserAvatar, 7},
		{"uid-avatar123.jpeg", targetUserAvatar, 123},
		{"uid-bg7.png", targetUserBackground, 7},
		{"communityId-3.png", targetCommunityImage, 3},
		{"42.png", targetVideoThumbnail, 42},
		{"42.webp", targetVideoThumbnail, 42},
	}

	for _, tc := range cases {
		target, id, err := parseImageObjKey(tc.key)
		require.NoError(t, err, tc.key)
		assert.Equal(t, tc.target, target, tc.key)
		assert.Equal(t, tc.id, id, tc.key)
	}
}

func TestParseImageObjKeyRejectsBadIDs(t *testing.T) {
	for _, bad := range []string{"uid-avatar.png", "uid-avatarx.png", "uid-bg-1.png", "communityId-.png", "abc.png", "0.png"} {
		_, _, err := parseImageObjKey(bad)
		assert.ErrorIs(t, err, ErrBadObjectKey, bad)
	}
}

func TestStripExtension(t *testing.T) {
	assert.Equal(t, "uid-avatar7", stripExtension("uid-avatar7.png"))
	assert.Equal(t, "42", stripExtension("42"))
	assert.Equal(t, "a.b", stripExtension("a.b.c"))
	assert.Equal(t, ".hidden", stripExtension(".hidden"))
}

func TestMatchQualities(t *testing.T) {
	urls := map[string]string{
		"index_360p.m3u8":  "https://cdn/v/360",
		"index_720p.m3u8":  "https://cdn/v/720",
		"index_1080p.m3u8": "https://cdn/v/1080",
		"preview":          "https://cdn/v/preview", // no bucket matches, dropped
	}

	variants := matchQualities(9, urls)
	require.Len(t, variants, 3)

	byQuality := map[string]string{}
	for _, v := range variants {
		assert.Equal(t, int64(9), v.VideoID)
		byQuality[v.Quality] = v.URL
	}
	assert.Equal(t, "https://cdn/v/360", byQuality["360p"])
	assert.Equal(t, "https://cdn/v/720", byQuality["720p"])
	assert.Equal(t, "https://cdn/v/1080", byQuality["1080p"])
	assert.NotContains(t, byQuality, "480p")
}

func TestMatchQualitiesEmpty(t *testing.T) {
	assert.Empty(t, matchQualities(1, nil))
	assert.Empty(t, matchQualities(1, map[string]string{"original": "u"}))
}

func TestCheckSecret(t *testing.T) {
	s := NewProcessService(nil, nil, nil, nil, nil, "hook-secret")

	assert.NoError(t, s.checkSecret("hook-secret"))
	assert.ErrorIs(t, s.checkSecret("wrong"), ErrBadWebhookSecret)
	assert.ErrorIs(t, s.checkSecret(""), ErrBadWebhookSecret)
}
