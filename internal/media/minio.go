package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hemantthp85-ai/Civic-1/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioSigner presigns URLs against a MinIO (or S3-compatible) bucket.
type MinioSigner struct {
	client *minio.Client
	bucket string
}

// NewMinioSigner constructs a MinIO signer from config.
func NewMinioSigner(cfg config.MinioConfig) (*MinioSigner, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("minio access key and secret key are required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("minio bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioSigner{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// EnsureBucket ensures the configured bucket exists. Called once at
// startup.
func (m *MinioSigner) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
}

func (m *MinioSigner) PresignUpload(ctx context.Context, key, contentType string) (UploadTicket, error) {
	uploadURL, err := m.client.PresignedPutObject(ctx, m.bucket, key, UploadTTL)
	if err != nil {
		return UploadTicket{}, err
	}

	return UploadTicket{
		UploadURL: uploadURL.String(),
		FileURL:   fmt.Sprintf("%s/%s/%s", m.client.EndpointURL(), m.bucket, key),
		ExpiresAt: time.Now().Add(UploadTTL),
	}, nil
}

func (m *MinioSigner) PresignGet(ctx context.Context, key string) (string, error) {
	signed, err := m.client.PresignedGetObject(ctx, m.bucket, key, DownloadTTL, url.Values{})
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}

// Bucket returns the configured bucket name.
func (m *MinioSigner) Bucket() string {
	return m.bucket
}
