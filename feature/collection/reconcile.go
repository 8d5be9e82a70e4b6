package collection

import (
	"context"
	"errors"
	"strings"
	"time"

	"nft-toolkit/core/entry"
	"nft-toolkit/core/reconcile"
	"nft-toolkit/core/storage"

	"go.uber.org/zap"
)

// ErrNoStorage is returned by reconciliation when no bucket is attached.
var ErrNoStorage = errors.New("no storage bucket attached")

// Kinds of recorded uploads.
const (
	KindImage           = "image"
	KindMetadata        = "metadata"
	KindCollection      = "collection"
	KindCollectionImage = "collection_image"
)

const reconcileCacheTTL = 30 * time.Second

// AttachStorage enables reconciliation of recorded uploads against a bucket.
func (s *Service) AttachStorage(client storage.Client, cfg storage.Config) {
	s.objects = client
	s.objectsCfg = cfg
}

// Reconcile compares recorded upload URIs with the objects in the attached
// bucket. Actions only run when opts.Confirmed is set.
func (s *Service) Reconcile(ctx context.Context, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, int, error) {
	if s.objects == nil {
		return nil, 0, ErrNoStorage
	}
	spec := s.reconcileSpec()
	plan, executed, err := reconcile.ReconcileAndApply(ctx, spec, s.objects, s.objectsCfg.Bucket, opts)
	if err != nil {
		return plan, executed, err
	}
	s.logger.Info("Reconciled uploads",
		zap.Int("objects", plan.Summary.TotalItems),
		zap.Int("missing", plan.Summary.MissingStorage),
		zap.Int("orphaned", plan.Summary.Orphaned),
		zap.Int("executed", executed))
	return plan, executed, nil
}

func (s *Service) reconcileSpec() *reconcile.Spec {
	adapter := &ReconcileAdapter{svc: s, keyOf: s.objectsCfg.ObjectKey}
	return &reconcile.Spec{
		Adapter:  adapter,
		CacheTTL: s.reconcileTTL,
		Prefixes: adapter.prefixes(),
	}
}

// ReconcileAdapter exposes the uploads recorded in the collection state.
type ReconcileAdapter struct {
	svc   *Service
	keyOf func(uri string) (string, bool)
}

func (a *ReconcileAdapter) Name() string {
	return "collection:" + a.svc.objectsCfg.Bucket
}

func (a *ReconcileAdapter) prefixes() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range []string{a.svc.cfg.ImagePrefix, a.svc.cfg.MetadataPrefix, a.svc.cfg.CollectionPrefix} {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Owns reports whether key lives under one of the upload prefixes.
func (a *ReconcileAdapter) Owns(key string) bool {
	for _, p := range a.prefixes() {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// LoadStateIndex lists every upload recorded for entries and the collection NFT.
func (a *ReconcileAdapter) LoadStateIndex(ctx context.Context) (map[string]reconcile.Item, error) {
	s := a.svc
	entries, err := s.entries.Load(ctx, "")
	if err != nil {
		return nil, err
	}
	coll, err := s.collections.LoadMetadata(ctx)
	if err != nil {
		return nil, err
	}
	collURI, err := s.collections.LoadURI(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]reconcile.Item)
	add := func(kind string, i int, uri string) {
		if uri == "" {
			return
		}
		if key, ok := a.keyOf(uri); ok {
			index[key] = reconcile.Item{Kind: kind, Index: i, URI: uri}
		}
	}

	for i, e := range entries {
		add(KindImage, i, e.RemoteImage())
		add(KindMetadata, i, e.MetadataURI)
	}
	if coll != nil {
		add(KindCollectionImage, -1, coll.Image)
	}
	add(KindCollection, -1, collURI)
	return index, nil
}

// ResetUploads forgets the uploads stored under keys. Images are marked as
// failed so the next image run sends them again.
func (a *ReconcileAdapter) ResetUploads(ctx context.Context, keys []string) error {
	s := a.svc
	s.mu.Lock()
	defer s.mu.Unlock()

	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	matches := func(uri string) bool {
		key, ok := a.keyOf(uri)
		return ok && want[key]
	}

	entries, err := s.entries.Load(ctx, "")
	if err != nil {
		return err
	}
	reset := 0
	for i := range entries {
		e := &entries[i]
		if uri := e.RemoteImage(); uri != "" && matches(uri) {
			e.FilePreviewURL = entry.FailedUploadPreview
			reset++
		}
		if e.MetadataURI != "" && matches(e.MetadataURI) {
			e.MetadataURI = ""
			reset++
		}
	}
	if reset > 0 {
		if err := s.entries.Save(ctx, entries); err != nil {
			return err
		}
	}

	coll, err := s.collections.LoadMetadata(ctx)
	if err != nil {
		return err
	}
	if coll != nil && coll.Image != "" && matches(coll.Image) {
		coll.Image = ""
		if err := s.collections.SaveMetadata(ctx, coll); err != nil {
			return err
		}
		reset++
	}
	collURI, err := s.collections.LoadURI(ctx)
	if err != nil {
		return err
	}
	if collURI != "" && matches(collURI) {
		if err := s.collections.SaveURI(ctx, ""); err != nil {
			return err
		}
		reset++
	}

	s.logger.Info("Reset missing uploads", zap.Int("count", reset))
	return nil
}
