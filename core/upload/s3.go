package upload

import (
	"bytes"
	"context"
	"fmt"

	"nft-toolkit/core/storage"

	"github.com/minio/minio-go/v7"
)

// S3Uploader writes objects to the configured bucket.
type S3Uploader struct {
	client storage.Client
	cfg    storage.Config
}

func NewS3Uploader(client storage.Client, cfg storage.Config) *S3Uploader {
	return &S3Uploader{client: client, cfg: cfg}
}

func (u *S3Uploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyData
	}

	_, err := u.client.PutObject(ctx, u.cfg.Bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put %s: %w", name, err)
	}
	return u.cfg.ObjectURL(name), nil
}
