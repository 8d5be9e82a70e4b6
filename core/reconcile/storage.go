package reconcile

import (
	"context"
	"fmt"
	"strings"

	"nft-toolkit/core/storage"

	"github.com/minio/minio-go/v7"
)

// LoadStorageSet lists every object under prefixes in a single paginated
// pass per prefix. Folder marker objects are skipped.
func LoadStorageSet(ctx context.Context, client storage.Client, bucket string, prefixes []string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	for _, prefix := range prefixes {
		opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
			}
			if strings.HasSuffix(obj.Key, "/") {
				continue
			}
			set[obj.Key] = struct{}{}
		}
	}
	return set, nil
}
