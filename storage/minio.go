package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/code-harsh006/new-backend/config"
	"github.com/code-harsh006/new-backend/logger"
)

// MinioBackend stores objects in an S3-compatible bucket.
type MinioBackend struct {
	client    *minio.Client
	bucket    string
	publicURL string // Base URL for Resolve; derived from endpoint when not configured
}

// NewMinioBackend connects to the object store and ensures the bucket exists.
func NewMinioBackend(cfg *config.Config) (*MinioBackend, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("created bucket", logger.String("bucket", cfg.MinioBucket))
	}

	publicURL := strings.TrimSuffix(cfg.MinioPublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket)
	}

	return &MinioBackend{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: publicURL,
	}, nil
}

// Store stages the content to a temporary local file, uploads it to the
// bucket and removes the staging file regardless of the upload outcome.
func (b *MinioBackend) Store(ctx context.Context, r io.Reader, size int64, contentType, originalFilename string) (*StoredObject, error) {
	key := GenerateKey(originalFilename)

	tempFile, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove staging file",
				logger.String("path", tempPath),
				logger.ErrorField(err))
		}
	}()

	written, err := io.Copy(tempFile, r)
	if cerr := tempFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err = b.client.FPutObject(uploadCtx, b.bucket, key, tempPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return &StoredObject{
		Key:       key,
		PublicURL: b.Resolve(key),
		Size:      written,
	}, nil
}

// Resolve returns the public object URL for a key.
func (b *MinioBackend) Resolve(key string) string {
	return b.publicURL + "/" + key
}

// Remove deletes the object for a key. RemoveObject does not fail on a
// missing key, which gives us idempotent deletion for free.
func (b *MinioBackend) Remove(ctx context.Context, key string) error {
	removeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := b.client.RemoveObject(removeCtx, b.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}
