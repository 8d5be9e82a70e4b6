package store

import (
	"context"
	"errors"
	"fmt"

	"nft-toolkit/core/database"
)

// Keys of the persisted documents.
const (
	KeyTemplate              = "template"
	KeyEntries               = "entries"
	KeyCollectionMetadata    = "collectionMetadata"
	KeyCollectionMetadataURI = "collectionMetadataURI"
	KeyRarities              = "rarities"
)

// AllKeys lists every document key, in the order Clear removes them.
var AllKeys = []string{KeyEntries, KeyRarities, KeyTemplate, KeyCollectionMetadata, KeyCollectionMetadataURI}

// ErrNotFound is returned by KV.Get for a key that has never been set.
var ErrNotFound = errors.New("key not found")

// KV is a byte-oriented key-value backend. Values are JSON documents.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open connects the backend selected by cfg.Backend.
func Open(cfg Config, dbCfg database.Config) (KV, error) {
	switch cfg.Backend {
	case BackendDatabase, "":
		db, err := database.Connect(dbCfg)
		if err != nil {
			return nil, err
		}
		kv := NewGormKV(db)
		if err := kv.Migrate(); err != nil {
			_ = kv.Close()
			return nil, err
		}
		return kv, nil
	case BackendRedis:
		kv := NewRedisKV(NewRedisClient(cfg), cfg.Prefix)
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := kv.Ping(ctx); err != nil {
			_ = kv.Close()
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Backend)
	}
}
