// Package reconcile compares two sources of truth for uploaded content: the
// upload URIs recorded in the collection state and the objects actually
// present in the storage bucket.
//
// # Architecture
//
// 1. Engine: builds the union of object keys from both sources and reports,
// per key, where it is present.
//
// 2. Adapter: supplies the state side. It lists every object the state
// believes was uploaded and decides which bucket keys it owns, so unrelated
// objects are never reported as orphans.
//
// 3. Cache: TTL-based caching of both indices with stampede protection for
// repeated targeted lookups.
//
// # Plans
//
// ReconcileWithPlan turns results into actions without executing them:
//
//   - reset_upload: the state records an upload whose object is gone. The
//     adapter forgets the URI so the next upload run sends it again.
//   - delete_storage: the bucket holds an object the state does not know.
//
// ApplyPlan only runs actions when ReconcileOptions.Confirmed is set and
// DryRun is not.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Adapter:  adapter,
//	    Prefixes: []string{"images/", "metadata/"},
//	}
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec, client, bucket, opts)
package reconcile
