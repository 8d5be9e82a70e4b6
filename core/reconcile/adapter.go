package reconcile

import "context"

// Adapter defines the state side of a reconciliation.
type Adapter interface {
	// Name returns the unique name of this adapter.
	Name() string

	// LoadStateIndex returns every recorded upload, indexed by object key.
	// Uploads whose URI does not map to a bucket key are left out.
	LoadStateIndex(ctx context.Context) (map[string]Item, error)

	// Owns reports whether an object key is managed by this adapter. Keys it
	// does not own are never reported as orphans.
	Owns(objectKey string) bool
}

// Mutator is implemented by adapters that can forget recorded uploads.
type Mutator interface {
	// ResetUploads forgets the uploads recorded under keys.
	ResetUploads(ctx context.Context, keys []string) error
}
