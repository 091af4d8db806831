package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/models"
)

// minioAPI is the subset of *minio.Client the object backend uses, so tests
// can run without a server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
}

type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}

func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}

func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// objectVaultRepository stores each vault as one JSON object
// "vaults/<account id>.json" in an S3-compatible bucket. A PUT replaces the
// object, which gives the same last-writer-wins behavior as the SQL upsert.
type objectVaultRepository struct {
	api    minioAPI
	bucket string
}

// NewObjectVaultRepository connects to cfg.Endpoint and makes sure the bucket
// exists.
func NewObjectVaultRepository(ctx context.Context, cfg config.Object) (VaultRepository, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return newObjectVaultRepository(ctx, minioClientWrapper{c: client}, cfg.Bucket)
}

func newObjectVaultRepository(ctx context.Context, api minioAPI, bucket string) (*objectVaultRepository, error) {
	r := &objectVaultRepository{api: api, bucket: bucket}

	exists, err := api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check bucket existence: %w", ErrUnavailable, err)
	}
	if !exists {
		if err = api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return r, nil
}

func vaultObjectName(accountID int64) string {
	return "vaults/" + strconv.FormatInt(accountID, 10) + ".json"
}

// GetVault implements [VaultRepository]. A missing object is ErrVaultNotFound.
func (r *objectVaultRepository) GetVault(ctx context.Context, accountID int64) (models.StoredVault, error) {
	obj, err := r.api.GetObject(ctx, r.bucket, vaultObjectName(accountID), minio.GetObjectOptions{})
	if err != nil {
		return models.StoredVault{}, r.mapError(err)
	}
	defer obj.Close()

	var vault models.StoredVault
	if err = json.NewDecoder(obj).Decode(&vault); err != nil {
		// minio reports a missing key on the first read, not on GetObject.
		if mapped := r.mapError(err); mapped == ErrVaultNotFound {
			return models.StoredVault{}, mapped
		}
		return models.StoredVault{}, fmt.Errorf("%w: decoding vault object: %w", ErrScanningRow, err)
	}
	vault.AccountID = accountID

	return vault, nil
}

// SaveVault implements [VaultRepository].
func (r *objectVaultRepository) SaveVault(ctx context.Context, vault models.StoredVault) error {
	if vault.UpdatedAt.IsZero() {
		vault.UpdatedAt = time.Now().UTC()
	}

	body, err := json.Marshal(vault)
	if err != nil {
		return fmt.Errorf("encoding vault object: %w", err)
	}

	_, err = r.api.PutObject(ctx, r.bucket, vaultObjectName(vault.AccountID), bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("%w: failed to upload vault object: %w", ErrUnavailable, err)
	}

	return nil
}

func (r *objectVaultRepository) mapError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrVaultNotFound
	}
	return fmt.Errorf("%w: failed to get vault object: %w", ErrUnavailable, err)
}
