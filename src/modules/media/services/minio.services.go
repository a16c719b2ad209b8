package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const objectPrefix = "catalog/"

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL prefixes object keys in returned URLs. When empty the
	// objects are served through the /static proxy of this service.
	PublicURL string
}

// MinioStore keeps images in an S3-compatible bucket. The deletion handle
// is the object key.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

func NewMinioStore(ctx context.Context, cfg MinioConfig, logger *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("created media bucket", zap.String("bucket", cfg.Bucket))
	}

	return &MinioStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger,
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, upload *Upload) (*Asset, error) {
	key := objectPrefix + uuid.NewString() + upload.Ext()
	_, err := s.client.PutObject(ctx, s.bucket, key, upload.Body, upload.Size,
		minio.PutObjectOptions{ContentType: upload.ContentType})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image to minio: %w", err)
	}
	s.logger.Debug("uploaded image", zap.String("key", key), zap.Int64("size", upload.Size))
	return &Asset{URL: s.URLFor(key), ID: key}, nil
}

func (s *MinioStore) Delete(ctx context.Context, id string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove image %s: %w", id, err)
	}
	return nil
}

// URLFor builds the public URL of an object key.
func (s *MinioStore) URLFor(key string) string {
	if s.publicURL == "" {
		return "/static/" + key
	}
	return s.publicURL + "/" + s.bucket + "/" + key
}

// Open streams an object for the static proxy.
func (s *MinioStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, "", err
	}
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, 0, "", err
	}
	return obj, stat.Size, stat.ContentType, nil
}
