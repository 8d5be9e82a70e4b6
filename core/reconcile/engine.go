package reconcile

import (
	"context"
	"sort"

	"nft-toolkit/core/storage"
)

// ReconcileAll performs a full reconciliation. It builds both indices,
// computes the union of keys and returns a result for each key, sorted by key.
func ReconcileAll(ctx context.Context, spec *Spec, client storage.Client, bucket string) ([]ReconcileResult, error) {
	cache, err := GetOrBuildCache(ctx, spec, client, bucket)
	if err != nil {
		return nil, err
	}
	return reconcileFromCache(cache, spec.Adapter), nil
}

// ReconcileOne reports a single object key. It uses the cached indices when
// caching is enabled, and a fresh build otherwise.
func ReconcileOne(ctx context.Context, spec *Spec, client storage.Client, bucket, key string) (*ReconcileResult, error) {
	cache, err := GetOrBuildCache(ctx, spec, client, bucket)
	if err != nil {
		return nil, err
	}
	result := buildResult(key, cache.StateIndex, cache.StorageSet)
	return &result, nil
}

// reconcileFromCache builds sorted results from a cache. Storage keys the
// adapter does not own are ignored.
func reconcileFromCache(cache *ReconcileCache, adapter Adapter) []ReconcileResult {
	union := make(map[string]struct{}, len(cache.StateIndex)+len(cache.StorageSet))
	for key := range cache.StateIndex {
		union[key] = struct{}{}
	}
	for key := range cache.StorageSet {
		if adapter.Owns(key) {
			union[key] = struct{}{}
		}
	}

	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, cache.StateIndex, cache.StorageSet))
	}

	// Sort results by key for deterministic output
	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})
	return results
}

// buildResult creates a ReconcileResult for a single key.
func buildResult(key string, stateIndex map[string]Item, storageSet map[string]struct{}) ReconcileResult {
	item, statePresent := stateIndex[key]
	_, storagePresent := storageSet[key]

	result := ReconcileResult{
		Key:            key,
		StatePresent:   statePresent,
		StoragePresent: storagePresent,
	}
	if statePresent {
		result.Item = &item
	}
	return result
}
