package minio

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidshare-go/internal/config"
)

func testStorage(useSSL bool) *Storage {
	return &Storage{cfg: &config.MinIOConfig{
		Endpoint:    "storage:9000",
		UseSSL:      useSSL,
		RawBucket:   "raw-uploads",
		ImageBucket: "images",
		VideoBucket: "videos",
	}}
}

func TestObjectNameFromURL(t *testing.T) {
	s := testStorage(false)

	assert.Equal(t, "7.png",
		s.ObjectNameFromURL("images", "http://storage:9000/images/7.png"))
	assert.Equal(t, "42/index.m3u8",
		s.ObjectNameFromURL("videos", "http://storage:9000/videos/42/index.m3u8"))
}

func TestObjectNameFromURLMismatch(t *testing.T) {
	s := testStorage(false)

	// Wrong bucket, wrong host, or an external URL yields nothing.
	assert.Empty(t, s.ObjectNameFromURL("images", "http://storage:9000/videos/7.png"))
	assert.Empty(t, s.ObjectNameFromURL("images", "http://elsewhere/images/7.png"))
	assert.Empty(t, s.ObjectNameFromURL("images", "https://storage:9000/images/7.png"))
	assert.Empty(t, s.ObjectNameFromURL("images", ""))
}

func TestObjectNameFromURLSSL(t *testing.T) {
	s := testStorage(true)
	assert.Equal(t, "7.png",
		s.ObjectNameFromURL("images", "https://storage:9000/images/7.png"))
}

// Stream objects are stored under "<video id>/", so the folder delete must
// list with exactly that prefix. A doubled slash would match nothing and
// leave every stream object orphaned.
func TestDeleteFolderListsExactPrefix(t *testing.T) {
	var prefixes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("list-type") {
			prefixes = append(prefixes, r.URL.Query().Get("prefix"))
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>`+
			`<ListBucketResult><Name>videos</Name><KeyCount>0</KeyCount><IsTruncated>false</IsTruncated></ListBucketResult>`)
	}))
	defer srv.Close()

	endpoint := strings.TrimPrefix(srv.URL, "http://")
	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4("key", "secret", ""),
		Secure: false,
		Region: "us-east-1",
	})
	require.NoError(t, err)
	s := &Storage{client: client, cfg: &config.MinIOConfig{Endpoint: endpoint, VideoBucket: "videos"}}

	require.NoError(t, s.DeleteFolder(context.Background(), "videos", "42/"))
	require.NotEmpty(t, prefixes)
	assert.Equal(t, "42/", prefixes[0])
}

func TestProgressReaderReportsPercent(t *testing.T) {
	var percents []int
	r := &progressReader{
		r:     &staticReader{n: 50},
		total: 100,
		last:  -1,
		onChange: func(p int) {
			percents = append(percents, p)
		},
	}

	buf := make([]byte, 50)
	_, _ = r.Read(buf)
	_, _ = r.Read(buf)

	assert.Equal(t, []int{50, 100}, percents)
}

// staticReader returns n bytes per call.
type staticReader struct{ n int }

func (s *staticReader) Read(p []byte) (int, error) {
	if len(p) < s.n {
		return len(p), nil
	}
	return s.n, nil
}
