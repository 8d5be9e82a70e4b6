package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nft-toolkit/core/storage"

	gcs "cloud.google.com/go/storage"
)

// ErrEmptyData is returned when there is nothing to upload.
var ErrEmptyData = errors.New("upload data is empty")

// Uploader stores data under name and returns its public URI.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// New builds the uploader selected by cfg.Backend. storageClient is only used
// by the s3 backend and may be nil otherwise.
func New(ctx context.Context, cfg Config, storageCfg storage.Config, storageClient storage.Client) (Uploader, error) {
	switch cfg.Backend {
	case BackendS3, "":
		if storageClient == nil {
			return nil, errors.New("s3 upload backend requires a storage client")
		}
		return NewS3Uploader(storageClient, storageCfg), nil
	case BackendGCS:
		client, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create gcs client: %w", err)
		}
		return NewGCSUploader(client, cfg.GCSBucket, cfg.GCSPublicURL)
	case BackendHTTP:
		return NewHTTPUploader(cfg.HTTPURL, cfg.HTTPAPIKey, timeout(cfg))
	default:
		return nil, fmt.Errorf("unsupported upload backend %q", cfg.Backend)
	}
}

func timeout(cfg Config) time.Duration {
	if cfg.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}
