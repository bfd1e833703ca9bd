package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const objectPrefix = "properties/"

// S3Storage talks to the external object store over the MinIO S3 API. Objects
// are keyed properties/<uuid><ext>, so the identifier embedded in a public
// URL is the uuid filename stem.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucketName, err)
		}
	}

	logger.Info("object storage initialized",
		zap.String("endpoint", endpoint), zap.String("bucket", bucketName))

	return &S3Storage{client: client, bucket: bucketName, logger: logger}, nil
}

func (s *S3Storage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := objectPrefix + uuid.New().String() + ext

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("failed to upload object",
			zap.String("bucket", s.bucket), zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Debug("uploaded object", zap.String("key", objectKey), zap.String("url", fileURL))
	return fileURL, nil
}

// Delete removes every object whose key matches the identifier. The stored
// key carries the original file extension while the identifier is the bare
// stem, so a prefix listing bridges the two. Deleting an identifier with no
// matching objects is not an error.
func (s *S3Storage) Delete(ctx context.Context, identifier string) error {
	prefix := objectPrefix + identifier
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix})

	for object := range objects {
		if object.Err != nil {
			return fmt.Errorf("failed to list objects with prefix %s: %w", prefix, object.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove object %s: %w", object.Key, err)
		}
		s.logger.Debug("removed object", zap.String("key", object.Key))
	}
	return nil
}
