// Package media issues presigned object-store URLs for complaint
// attachments. Clients upload directly to the object store and submit the
// resulting file URL with their complaint; no file bytes ever pass
// through this service.
package media

import (
	"context"
	"time"
)

const (
	// UploadTTL bounds how long a presigned upload URL stays valid.
	UploadTTL = 15 * time.Minute

	// DownloadTTL bounds how long a presigned read URL stays valid.
	DownloadTTL = 1 * time.Hour
)

// UploadTicket is the result of presigning an upload: the URL the client
// PUTs the file to and the durable URL it then references in complaint
// media.
type UploadTicket struct {
	UploadURL string    `json:"upload_url"`
	FileURL   string    `json:"file_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Signer presigns object-store URLs for a single configured bucket.
type Signer interface {
	PresignUpload(ctx context.Context, key, contentType string) (UploadTicket, error)
	PresignGet(ctx context.Context, key string) (string, error)
	Bucket() string
}
