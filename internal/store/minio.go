package store

import (
	"bytes"
	"context"
	"io"
	"slices"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/serroba/qr-code-manager/internal/qrcode"
)

const (
	minioNoSuchKey          = "NoSuchKey"
	minioPreconditionFailed = "PreconditionFailed"
)

// MinioOptions configures the S3-compatible object store.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStorage keeps QR code images as objects in a bucket.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage connects to the object store and makes sure the bucket exists.
func NewMinioStorage(ctx context.Context, opts MinioOptions) (*MinioStorage, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	s := &MinioStorage{client: client, bucket: opts.Bucket}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (m *MinioStorage) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
}

// Save stats before writing and sends the put with If-None-Match, so a MinIO
// server rejects it when another create won the race in between. S3 backends
// that ignore the header leave a check-then-write window where the later
// concurrent create overwrites the earlier one.
func (m *MinioStorage) Save(ctx context.Context, name string, png []byte) error {
	exists, err := m.Exists(ctx, name)
	if err != nil {
		return err
	}

	if exists {
		return qrcode.ErrExists
	}

	opts := minio.PutObjectOptions{ContentType: "image/png"}
	opts.SetMatchETagExcept("*")

	_, err = m.client.PutObject(ctx, m.bucket, name, bytes.NewReader(png), int64(len(png)), opts)
	if minio.ToErrorResponse(err).Code == minioPreconditionFailed {
		return qrcode.ErrExists
	}

	return err
}

func (m *MinioStorage) Load(ctx context.Context, name string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateMinioErr(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateMinioErr(err)
	}

	return data, nil
}

func (m *MinioStorage) Exists(ctx context.Context, name string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}

	if minio.ToErrorResponse(err).Code == minioNoSuchKey {
		return false, nil
	}

	return false, err
}

// Delete stats first because RemoveObject succeeds for missing keys.
func (m *MinioStorage) Delete(ctx context.Context, name string) error {
	exists, err := m.Exists(ctx, name)
	if err != nil {
		return err
	}

	if !exists {
		return qrcode.ErrNotFound
	}

	return m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{})
}

func (m *MinioStorage) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0)

	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, obj.Err
		}

		names = append(names, obj.Key)
	}

	slices.Sort(names)

	return names, nil
}

// Ping checks that the bucket is reachable with the configured credentials.
func (m *MinioStorage) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)

	return err
}

func translateMinioErr(err error) error {
	if minio.ToErrorResponse(err).Code == minioNoSuchKey {
		return qrcode.ErrNotFound
	}

	return err
}

// Compile-time check.
var _ qrcode.Storage = (*MinioStorage)(nil)
