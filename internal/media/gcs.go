package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/hemantthp85-ai/Civic-1/config"
	"google.golang.org/api/option"
)

// GCSSigner presigns URLs against a Google Cloud Storage bucket.
type GCSSigner struct {
	client *storage.Client
	bucket string
}

// NewGCSSigner constructs a GCS signer from config.
func NewGCSSigner(ctx context.Context, cfg config.GCSConfig) (*GCSSigner, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSSigner{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func (g *GCSSigner) PresignUpload(ctx context.Context, key, contentType string) (UploadTicket, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodPut,
		Expires: time.Now().Add(UploadTTL),
	}
	if strings.TrimSpace(contentType) != "" {
		opts.ContentType = contentType
	}

	uploadURL, err := g.client.Bucket(g.bucket).SignedURL(key, opts)
	if err != nil {
		return UploadTicket{}, err
	}

	return UploadTicket{
		UploadURL: uploadURL,
		FileURL:   fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, key),
		ExpiresAt: opts.Expires,
	}, nil
}

func (g *GCSSigner) PresignGet(ctx context.Context, key string) (string, error) {
	return g.client.Bucket(g.bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(DownloadTTL),
	})
}

// Bucket returns the configured bucket name.
func (g *GCSSigner) Bucket() string {
	return g.bucket
}

// Close releases the underlying client.
func (g *GCSSigner) Close() error {
	return g.client.Close()
}
