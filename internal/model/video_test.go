package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoStatusTransitions(t *testing.T) {
	cases := []struct {
		from    VideoStatus
		to      VideoStatus
		allowed bool
	}{
		{StatusUploading, StatusProcessing, true},
		{StatusUploading, StatusCanceled, true},
		{StatusUploading, StatusReady, false},
		{StatusProcessing, StatusReady, true},
		{StatusProcessing, StatusCanceled, true},
		{StatusProcessing, StatusUploading, false},
		{StatusReady, StatusCanceled, false},
		{StatusReady, StatusProcessing, false},
		{StatusCanceled, StatusReady, false},
		{StatusCanceled, StatusProcessing, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestVideoStatusValid(t *testing.T) {
	for _, s := range []VideoStatus{StatusUploading, StatusProcessing, StatusReady, StatusCanceled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, VideoStatus("published").Valid())
	assert.False(t, VideoStatus("").Valid())
}

func TestVideoIsReady(t *testing.T) {
	assert.True(t, (&Video{Status: StatusReady}).IsReady())
	assert.False(t, (&Video{Status: StatusProcessing}).IsReady())
}
