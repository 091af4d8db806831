package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-zk-vault/models"
)

// fakeMinio is an in-memory bucket implementing minioAPI.
type fakeMinio struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte

	bucketExistsErr error
	makeBucketErr   error
	putErr          error
	getErr          error
}

func newFakeMinio() *fakeMinio {
	return &fakeMinio{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (f *fakeMinio) BucketExists(_ context.Context, bucket string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[bucket], f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.makeBucketErr != nil {
		return f.makeBucketErr
	}
	f.buckets[bucket] = true
	return nil
}

func (f *fakeMinio) PutObject(_ context.Context, bucket, name string, r io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+name] = data
	return minio.UploadInfo{Bucket: bucket, Key: name, Size: int64(len(data))}, nil
}

func (f *fakeMinio) GetObject(_ context.Context, bucket, name string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[bucket+"/"+name]
	if !ok {
		return nil, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestNewObjectVaultRepository_Bucket(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing bucket", func(t *testing.T) {
		api := newFakeMinio()
		_, err := newObjectVaultRepository(ctx, api, "vaults")
		require.NoError(t, err)
		assert.True(t, api.buckets["vaults"])
	})

	t.Run("existence check fails", func(t *testing.T) {
		api := newFakeMinio()
		api.bucketExistsErr = errors.New("boom")
		_, err := newObjectVaultRepository(ctx, api, "vaults")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("create fails", func(t *testing.T) {
		api := newFakeMinio()
		api.makeBucketErr = errors.New("denied")
		_, err := newObjectVaultRepository(ctx, api, "vaults")
		assert.Error(t, err)
	})
}

func TestObjectVaultRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	api := newFakeMinio()
	repo, err := newObjectVaultRepository(ctx, api, "vaults")
	require.NoError(t, err)

	_, err = repo.GetVault(ctx, 1)
	assert.ErrorIs(t, err, ErrVaultNotFound)

	v := models.StoredVault{
		AccountID: 1,
		Vault:     models.EncryptedVault{IV: "aXY=", Ciphertext: "Y3Q="},
		KdfParams: models.KdfParams{Algorithm: models.AlgorithmPBKDF2SHA256, Salt: "a2Rm", Iterations: 250_000},
	}
	require.NoError(t, repo.SaveVault(ctx, v))
	assert.Contains(t, api.objects, "vaults/vaults/1.json")

	v.Vault.Ciphertext = "bmV3"
	require.NoError(t, repo.SaveVault(ctx, v))

	got, err := repo.GetVault(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, v.Vault, got.Vault)
	assert.Equal(t, v.KdfParams, got.KdfParams)
	assert.Equal(t, int64(1), got.AccountID)
}

func TestObjectVaultRepository_Errors(t *testing.T) {
	ctx := context.Background()
	api := newFakeMinio()
	repo, err := newObjectVaultRepository(ctx, api, "vaults")
	require.NoError(t, err)

	api.putErr = errors.New("put failed")
	assert.ErrorIs(t, repo.SaveVault(ctx, models.StoredVault{AccountID: 1}), ErrUnavailable)

	api.getErr = errors.New("get failed")
	_, err = repo.GetVault(ctx, 1)
	assert.ErrorIs(t, err, ErrUnavailable)

	api.getErr = nil
	api.objects["vaults/vaults/2.json"] = []byte("{not json")
	_, err = repo.GetVault(ctx, 2)
	assert.ErrorIs(t, err, ErrScanningRow)
}
