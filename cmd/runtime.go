package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"nft-toolkit/core/config"
	"nft-toolkit/core/logger"
	"nft-toolkit/core/storage"
	"nft-toolkit/core/store"
	"nft-toolkit/core/upload"
	"nft-toolkit/feature/collection"

	"go.uber.org/zap"
)

// runtime bundles the configured dependencies shared by every command.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	kv     store.KV
}

// newRuntime loads configuration, builds the logger and opens the state store.
func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	kv, err := store.Open(cfg.Store, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	logg.Debug("Opened state store", zap.String("backend", cfg.Store.Backend))

	return &runtime{cfg: cfg, logger: logg, kv: kv}, nil
}

// Close releases the store and flushes the logger.
func (r *runtime) Close() {
	if err := r.kv.Close(); err != nil {
		r.logger.Warn("Failed to close store", zap.Error(err))
	}
	_ = r.logger.Sync()
}

// storageClient returns the S3 client when uploads go to an S3 compatible
// bucket, and nil for the other backends.
func (r *runtime) storageClient() (storage.Client, error) {
	if r.cfg.Upload.Backend != upload.BackendS3 && r.cfg.Upload.Backend != "" {
		return nil, nil
	}
	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}

// uploader builds the configured upload backend. For S3 the bucket is
// created when missing.
func (r *runtime) uploader(ctx context.Context) (upload.Uploader, error) {
	client, err := r.storageClient()
	if err != nil {
		return nil, err
	}
	if client != nil {
		if err := storage.EnsureBucket(ctx, client, r.cfg.Storage); err != nil {
			return nil, err
		}
	}
	u, err := upload.New(ctx, r.cfg.Upload, r.cfg.Storage, client)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Upload backend ready", zap.String("backend", r.cfg.Upload.Backend))
	return u, nil
}

// collection builds the collection service. Commands that never upload pass
// withUploader false so no backend credentials are needed.
func (r *runtime) collection(ctx context.Context, withUploader bool) (*collection.Service, error) {
	var u upload.Uploader
	if withUploader {
		var err error
		if u, err = r.uploader(ctx); err != nil {
			return nil, err
		}
	}
	return collection.NewService(r.kv, u, r.cfg.Upload, r.logger), nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
