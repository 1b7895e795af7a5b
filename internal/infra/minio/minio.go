package minio

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"vidshare-go/internal/config"
	"vidshare-go/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Storage wraps the MinIO client with the bucket layout of this service:
// a private raw-uploads bucket the media pipeline reads from, and public
// image/video buckets the pipeline writes results to.
type Storage struct {
	client *minio.Client
	cfg    *config.MinIOConfig
}

// New builds the client and ensures all configured buckets exist.
func New(cfg *config.MinIOConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, bucket := range cfg.Buckets() {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			logger.Info("MinIO bucket created", zap.String("bucket", bucket))
		}
	}

	// The public buckets are read by players and <img> tags directly.
	for _, bucket := range []string{cfg.ImageBucket, cfg.VideoBucket} {
		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
		if err := client.SetBucketPolicy(ctx, bucket, policy); err != nil {
			return nil, fmt.Errorf("failed to set public policy for %s: %w", bucket, err)
		}
	}

	logger.Info("MinIO connected", zap.String("endpoint", cfg.Endpoint))

	return &Storage{client: client, cfg: cfg}, nil
}

// RawBucket returns the private bucket raw uploads land in.
func (s *Storage) RawBucket() string { return s.cfg.RawBucket }

// ImageBucket returns the public bucket processed images land in.
func (s *Storage) ImageBucket() string { return s.cfg.ImageBucket }

// VideoBucket returns the public bucket processed videos land in.
func (s *Storage) VideoBucket() string { return s.cfg.VideoBucket }

// progressReader reports cumulative read progress as a percentage.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	onChange func(percent int)
	last     int
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.read += int64(n)
	if p.onChange != nil && p.total > 0 {
		percent := int(p.read * 100 / p.total)
		if percent != p.last {
			p.last = percent
			p.onChange(percent)
		}
	}
	return n, err
}

// UploadLocalFile streams a local file into bucket/objectName, invoking
// onProgress with the upload percentage as bytes move.
func (s *Storage) UploadLocalFile(ctx context.Context, bucket, objectName, localPath, contentType string, onProgress func(percent int)) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	reader := &progressReader{r: f, total: stat.Size(), onChange: onProgress, last: -1}

	_, err = s.client.PutObject(ctx, bucket, objectName, reader, stat.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to minio: %w", err)
	}
	return nil
}

// DeleteObject removes a single object. Deleting a missing object is not an
// error on the MinIO side.
func (s *Storage) DeleteObject(ctx context.Context, bucket, objectName string) error {
	if objectName == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", bucket, objectName, err)
	}
	return nil
}

// DeleteFolder removes every object under prefix. The listing is streamed, so
// folders larger than one listing page are still deleted completely.
func (s *Storage) DeleteFolder(ctx context.Context, bucket, prefix string) error {
	if prefix == "" {
		return nil
	}

	objects := make(chan minio.ObjectInfo)
	listErr := make(chan error, 1)

	go func() {
		defer close(objects)
		for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: true,
		}) {
			if obj.Err != nil {
				listErr <- obj.Err
				return
			}
			objects <- obj
		}
		listErr <- nil
	}()

	// Keep consuming results even after a failure so the lister finishes
	// feeding the channel instead of blocking forever.
	var removeErr error
	for result := range s.client.RemoveObjects(ctx, bucket, objects, minio.RemoveObjectsOptions{}) {
		if result.Err != nil && removeErr == nil {
			removeErr = fmt.Errorf("failed to delete %s/%s: %w", bucket, result.ObjectName, result.Err)
		}
	}
	if removeErr != nil {
		return removeErr
	}

	if err := <-listErr; err != nil {
		return fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, err)
	}
	return nil
}

// ObjectNameFromURL strips the public URL prefix of a bucket, recovering the
// object key stored in URL columns.
func (s *Storage) ObjectNameFromURL(bucket, url string) string {
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	prefix := fmt.Sprintf("%s://%s/%s/", scheme, s.cfg.Endpoint, bucket)
	if len(url) > len(prefix) && url[:len(prefix)] == prefix {
		return url[len(prefix):]
	}
	return ""
}
