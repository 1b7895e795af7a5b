package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: vidshare
  version: 1.0.0
  mode: release
  port: 8000
database:
  host: db.internal
  port: 5432
  user: app
  password: s3cret
  dbname: vidshare
  sslmode: disable
redis:
  host: cache.internal
  port: 6380
minio:
  endpoint: storage:9000
  raw_bucket: raw-uploads
  image_bucket: images
  video_bucket: videos
kafka:
  brokers: ["broker:9092"]
  topics:
    video_transcode: video_transcode
auth:
  access_secret: aaa
  refresh_secret: rrr
  access_expire_mins: 30
  refresh_expire_hours: 2160
  cookie_max_age_days: 90
  issuer: vidshare
webhook:
  secret: hook
upload:
  temp_dir: /tmp/up
  max_bytes: 734003200
ratelimit:
  login_per_sec: 1
  login_burst: 5
  upload_per_sec: 0.2
  upload_burst: 3
`

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "vidshare", cfg.App.Name)
	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, "hook", cfg.Webhook.Secret)
	assert.Equal(t, int64(734003200), cfg.Upload.MaxBytes)
	assert.Equal(t, 1.0, cfg.RateLimit.LoginPerSec)
	assert.Equal(t, 3, cfg.RateLimit.UploadBurst)
	assert.Equal(t, "video_transcode", cfg.Kafka.Topics["video_transcode"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	dsn := cfg.Database.DSN()
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "password=s3cret")
	assert.Contains(t, dsn, "dbname=vidshare")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestRedisAddr(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", cfg.Redis.Addr())
}

func TestAuthDurations(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTTL())
	assert.Equal(t, 2160*time.Hour, cfg.Auth.RefreshTTL())
	assert.Equal(t, 90*24*3600, cfg.Auth.CookieMaxAge())
}

func TestBuckets(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"raw-uploads", "images", "videos"}, cfg.MinIO.Buckets())
}
