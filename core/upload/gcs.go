package upload

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
)

// GCSUploader writes objects to a Google Cloud Storage bucket. The bucket is
// expected to grant public read, so object URLs are served without signing.
type GCSUploader struct {
	client        *gcs.Client
	bucket        string
	publicBaseURL string
}

func NewGCSUploader(client *gcs.Client, bucket, publicBaseURL string) (*GCSUploader, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("gcs upload backend requires a bucket")
	}
	if publicBaseURL == "" {
		publicBaseURL = "https://storage.googleapis.com"
	}
	return &GCSUploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyData
	}
	if u.client == nil {
		return "", errors.New("gcs client is nil")
	}

	w := u.client.Bucket(u.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize %s: %w", name, err)
	}
	return u.objectURL(name), nil
}

func (u *GCSUploader) objectURL(name string) string {
	parts := strings.Split(strings.TrimPrefix(name, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return u.publicBaseURL + "/" + u.bucket + "/" + strings.Join(parts, "/")
}
