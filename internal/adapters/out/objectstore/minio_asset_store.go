// Package objectstore keeps catalog images in an S3-compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"fablab/internal/pkg/errs"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectClient is the part of *minio.Client the store uses.
type objectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Config describes the bucket and how its objects are addressed publicly.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL prefixes returned references; defaults to the endpoint URL.
	PublicURL string
}

// MinioAssetStore implements ports.AssetStore. References have the form
// <public url>/<bucket>/<key>.
type MinioAssetStore struct {
	client objectClient
	bucket string
	prefix string
}

// NewMinioAssetStore connects to the endpoint and creates the bucket when missing.
func NewMinioAssetStore(ctx context.Context, cfg Config) (*MinioAssetStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.Endpoint
	}

	store := newMinioAssetStore(client, cfg.Bucket, publicURL)
	if err = store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func newMinioAssetStore(client objectClient, bucket, publicURL string) *MinioAssetStore {
	return &MinioAssetStore{
		client: client,
		bucket: bucket,
		prefix: strings.TrimRight(publicURL, "/") + "/" + bucket + "/",
	}
}

func (s *MinioAssetStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	return nil
}

func (s *MinioAssetStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errs.NewValueIsRequiredError("key")
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}
	return s.prefix + key, nil
}

// Remove deletes the object behind ref. References from another bucket are rejected.
func (s *MinioAssetStore) Remove(ctx context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, s.prefix)
	if !ok || key == "" {
		return errs.NewValueIsInvalidErrorWithCause("image", fmt.Errorf("%q is not in bucket %q", ref, s.bucket))
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}
