package objectstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"fablab/internal/pkg/errs"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectClient struct{ mock.Mock }

func (m *MockObjectClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectClient) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *MockObjectClient) PutObject(
	ctx context.Context,
	bucketName, objectName string,
	reader io.Reader,
	objectSize int64,
	opts minio.PutObjectOptions,
) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *MockObjectClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

func TestMinioAssetStore_Put(t *testing.T) {
	ctx := context.Background()
	client := new(MockObjectClient)
	client.On("PutObject", ctx, "images", "job_1_laser.png", mock.Anything, int64(3),
		minio.PutObjectOptions{ContentType: "image/png"}).
		Return(minio.UploadInfo{}, nil).Once()

	store := newMinioAssetStore(client, "images", "http://localhost:9000/")
	ref, err := store.Put(ctx, "job_1_laser.png", []byte{1, 2, 3}, "image/png")

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/images/job_1_laser.png", ref)
	client.AssertExpectations(t)
}

func TestMinioAssetStore_Put_ClientError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	client := new(MockObjectClient)
	client.On("PutObject", ctx, "images", "k", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, boom).Once()

	_, err := newMinioAssetStore(client, "images", "http://localhost:9000").Put(ctx, "k", nil, "image/png")
	require.ErrorIs(t, err, boom)
}

func TestMinioAssetStore_Remove(t *testing.T) {
	ctx := context.Background()
	client := new(MockObjectClient)
	client.On("RemoveObject", ctx, "images", "job_1_laser.png", minio.RemoveObjectOptions{}).Return(nil).Once()

	store := newMinioAssetStore(client, "images", "http://localhost:9000")
	require.NoError(t, store.Remove(ctx, "http://localhost:9000/images/job_1_laser.png"))
	client.AssertExpectations(t)
}

func TestMinioAssetStore_Remove_ForeignReference(t *testing.T) {
	client := new(MockObjectClient)
	store := newMinioAssetStore(client, "images", "http://localhost:9000")

	err := store.Remove(context.Background(), "http://elsewhere/other/job.png")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	client.AssertNotCalled(t, "RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMinioAssetStore_EnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing bucket", func(t *testing.T) {
		client := new(MockObjectClient)
		client.On("BucketExists", ctx, "images").Return(false, nil).Once()
		client.On("MakeBucket", ctx, "images", minio.MakeBucketOptions{}).Return(nil).Once()

		require.NoError(t, newMinioAssetStore(client, "images", "http://x").ensureBucket(ctx))
		client.AssertExpectations(t)
	})

	t.Run("keeps existing bucket", func(t *testing.T) {
		client := new(MockObjectClient)
		client.On("BucketExists", ctx, "images").Return(true, nil).Once()

		require.NoError(t, newMinioAssetStore(client, "images", "http://x").ensureBucket(ctx))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMemoryAssetStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAssetStore()

	ref, err := store.Put(ctx, "job_1.png", []byte{1}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "memory://job_1.png", ref)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Remove(ctx, ref))
	assert.Zero(t, store.Len())
	require.ErrorIs(t, store.Remove(ctx, ref), errs.ErrObjectNotFound)
	require.ErrorIs(t, store.Remove(ctx, "s3://job_1.png"), errs.ErrValueIsInvalid)
}
