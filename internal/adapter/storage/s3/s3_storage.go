package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Taraansh/e-commerce/internal/app/config"
	"github.com/Taraansh/e-commerce/internal/gateway"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage keeps product images in an S3-compatible bucket. Objects live under
// a configured folder prefix with a timestamped, collision-free key.
type Storage struct {
	client *minio.Client
	bucket string
	folder string
	log    logger.Logger
}

func NewStorage(cfg config.MinIOConfig, log logger.Logger) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	ctx := context.Background()
	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errExists := client.BucketExists(ctx, cfg.Bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists: %v)", cfg.Bucket, err, errExists)
		}
	}

	return &Storage{
		client: client,
		bucket: cfg.Bucket,
		folder: cfg.Folder,
		log:    log,
	}, nil
}

func (s *Storage) Upload(ctx context.Context, fileName string, data []byte) (*gateway.MediaObject, error) {
	ext := filepath.Ext(fileName)
	objectKey := fmt.Sprintf("%s/%d-%s%s", s.folder, time.Now().UnixMilli(), uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		s.log.Errorf("failed to upload object %s to bucket %s: %v", objectKey, s.bucket, err)
		return nil, fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.log.Infof("uploaded %s (%d bytes) to %s", fileName, len(data), url)
	return &gateway.MediaObject{URL: url, ObjectKey: objectKey}, nil
}

func (s *Storage) Delete(ctx context.Context, objectKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", objectKey, err)
	}
	return nil
}
