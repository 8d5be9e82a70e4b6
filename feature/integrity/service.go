package integrity

import (
	"context"
	"errors"

	"nft-toolkit/core/storage"
	"nft-toolkit/core/store"
	"nft-toolkit/feature/integrity/checks"

	"go.uber.org/zap"
)

// ErrNoBucket is returned by the structure checks when uploads do not go to
// an S3 compatible bucket.
var ErrNoBucket = errors.New("no storage bucket configured")

// ErrNoDatabase is returned by the store check when state is not kept in a
// database.
var ErrNoDatabase = errors.New("state store is not database backed")

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	kv      store.KV
	logger  *zap.Logger
}

// NewService creates a new integrity service. client may be nil when the
// upload backend is not S3 compatible.
func NewService(client storage.Client, bucket string, folders []string, kv store.KV, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		folders: folders,
		kv:      kv,
		logger:  logger,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoBucket
	}
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrNoBucket
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckCollection inspects the persisted collection state.
func (s *Service) CheckCollection(ctx context.Context) (*checks.CollectionReport, error) {
	entries, err := store.NewEntryStore(s.kv).Load(ctx, "")
	if err != nil {
		return nil, err
	}
	tmpl, err := store.NewTemplateStore(s.kv).Load(ctx)
	if err != nil {
		return nil, err
	}
	collections := store.NewCollectionStore(s.kv)
	coll, err := collections.LoadMetadata(ctx)
	if err != nil {
		return nil, err
	}
	uri, err := collections.LoadURI(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckCollection(entries, tmpl, coll, uri), nil
}

// CheckStore verifies the schema of the database state store.
func (s *Service) CheckStore() (*checks.StoreReport, error) {
	gkv, ok := s.kv.(*store.GormKV)
	if !ok {
		return nil, ErrNoDatabase
	}
	return checks.CheckStoreSchema(gkv.DB(), store.TableName)
}

// Report is the combined result of every check.
type Report struct {
	Structure  map[string]any `json:"structure"`
	Collection map[string]any `json:"collection"`
	Store      map[string]any `json:"store"`
}

// RunAll runs every check. A failing check is reported in place and does not
// stop the others; checks that do not apply are reported as skipped.
func (s *Service) RunAll(ctx context.Context) *Report {
	report := &Report{}

	if missing, err := s.CheckStructure(ctx); errors.Is(err, ErrNoBucket) {
		report.Structure = map[string]any{"status": "skipped"}
	} else if err != nil {
		report.Structure = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report.Structure = map[string]any{"status": "ok", "missing": missing}
	}

	if coll, err := s.CheckCollection(ctx); err != nil {
		report.Collection = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report.Collection = map[string]any{"status": "ok", "report": coll}
	}

	if st, err := s.CheckStore(); errors.Is(err, ErrNoDatabase) {
		report.Store = map[string]any{"status": "skipped"}
	} else if err != nil {
		report.Store = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report.Store = map[string]any{"status": st.Status, "report": st}
	}

	return report
}
