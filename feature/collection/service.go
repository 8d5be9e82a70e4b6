package collection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"nft-toolkit/core/entry"
	"nft-toolkit/core/metadata"
	"nft-toolkit/core/storage"
	"nft-toolkit/core/store"
	"nft-toolkit/core/upload"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service runs the collection workflow against the persisted state.
type Service struct {
	kv          store.KV
	templates   *store.TemplateStore
	entries     *store.EntryStore
	collections *store.CollectionStore
	rarities    *store.RarityStore
	processor   *entry.Processor

	uploader upload.Uploader
	cfg      upload.Config
	logger   *zap.Logger

	// mu serializes every load-modify-save of the entry list.
	mu sync.Mutex
	// flights joins overlapping runs of the same upload pipeline.
	flights singleflight.Group

	objects      storage.Client
	objectsCfg   storage.Config
	reconcileTTL time.Duration

	readFile func(name string) ([]byte, error)
}

// NewService creates a collection service. uploader may be nil, in which case
// every upload operation fails.
func NewService(kv store.KV, uploader upload.Uploader, cfg upload.Config, logger *zap.Logger) *Service {
	templates := store.NewTemplateStore(kv)
	entries := store.NewEntryStore(kv)
	return &Service{
		kv:          kv,
		templates:   templates,
		entries:     entries,
		collections: store.NewCollectionStore(kv),
		rarities:    store.NewRarityStore(kv),
		processor:   entry.NewProcessor(templates, entries),
		uploader:    uploader,
		cfg:         cfg,
		logger:      logger,
		readFile:    os.ReadFile,

		reconcileTTL: reconcileCacheTTL,
	}
}

// ImportCSV replaces all entries with the rows of a CSV document. The rarity
// report is recomputed, and metadata is generated when a template exists.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, fields, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := entry.FromRows(rows)
	rarity := entry.DetermineRarity(entries)
	if err := s.rarities.Save(ctx, rarity); err != nil {
		return nil, err
	}

	processed, err := s.applyTemplate(ctx, entries)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Save(ctx, entries); err != nil {
		return nil, err
	}

	s.logger.Info("Imported entries",
		zap.Int("entries", len(entries)),
		zap.Strings("fields", fields),
		zap.Bool("processed", processed))

	return &ImportResult{
		Entries:   len(entries),
		Fields:    fields,
		Processed: processed,
		Rarity:    rarity,
	}, nil
}

// Process regenerates the metadata of every entry and saves the result.
func (s *Service) Process(ctx context.Context) ([]entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processLocked(ctx)
}

func (s *Service) processLocked(ctx context.Context) ([]entry.Entry, error) {
	entries, err := s.processor.Process(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}
	if err := s.entries.Save(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// applyTemplate generates metadata for entries when a template exists and
// reports whether it did.
func (s *Service) applyTemplate(ctx context.Context, entries []entry.Entry) (bool, error) {
	if len(entries) == 0 {
		return false, nil
	}
	tmpl, err := s.templates.Load(ctx)
	if err != nil {
		return false, err
	}
	if tmpl == nil {
		return false, nil
	}
	entry.ApplyAll(tmpl, entries)
	return true, nil
}

// Rarity counts the field values of all entries and saves the report.
func (s *Service) Rarity(ctx context.Context) (entry.Rarity, error) {
	entries, err := s.entries.Load(ctx, "")
	if err != nil {
		return nil, err
	}
	rarity := entry.DetermineRarity(entries)
	if err := s.rarities.Save(ctx, rarity); err != nil {
		return nil, err
	}
	return rarity, nil
}

// Entries returns the saved entries, filtered by query when it is not empty.
func (s *Service) Entries(ctx context.Context, query string) ([]entry.Entry, error) {
	return s.entries.Load(ctx, query)
}

// AssignImages attaches local image files to entries by the number in each
// file name.
func (s *Service) AssignImages(ctx context.Context, paths []string) (*AssignResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.entries.Load(ctx, "")
	if err != nil {
		return nil, err
	}
	assigned, skipped := entry.AssignImages(entries, paths)
	if len(assigned) > 0 {
		if err := s.entries.Save(ctx, entries); err != nil {
			return nil, err
		}
	}

	for _, sk := range skipped {
		s.logger.Warn("Image not assigned", zap.String("path", sk.Path), zap.String("reason", sk.Reason))
	}
	return &AssignResult{Assigned: assigned, Skipped: skipped}, nil
}

// ClearMetadataURIs forgets all uploaded metadata URIs so the next upload run
// sends every document again.
func (s *Service) ClearMetadataURIs(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.entries.Load(ctx, "")
	if err != nil {
		return err
	}
	entry.ClearMetadataURIs(entries)
	return s.entries.Save(ctx, entries)
}

// Clear deletes all collection state.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.Clear(ctx, s.kv); err != nil {
		return err
	}
	s.logger.Info("Cleared collection state")
	return nil
}

// GenerateTemplate builds a template from params, saves it and regenerates
// the metadata of existing entries.
func (s *Service) GenerateTemplate(ctx context.Context, params metadata.TemplateParams) (*metadata.Template, error) {
	tmpl := metadata.GenerateTemplate(params)
	if err := s.setTemplate(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

// SaveTemplate validates a raw JSON template, saves it and regenerates the
// metadata of existing entries.
func (s *Service) SaveTemplate(ctx context.Context, raw []byte) (*metadata.Template, error) {
	tmpl, err := metadata.ParseTemplate(raw)
	if err != nil {
		return nil, err
	}
	if err := s.setTemplate(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *Service) setTemplate(ctx context.Context, tmpl *metadata.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.templates.Save(ctx, tmpl); err != nil {
		return err
	}
	if _, err := s.processLocked(ctx); err != nil {
		return fmt.Errorf("template saved but processing failed: %w", err)
	}
	return nil
}

// Template returns the saved template.
func (s *Service) Template(ctx context.Context) (*metadata.Template, error) {
	tmpl, err := s.templates.Load(ctx)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, entry.ErrNoTemplate
	}
	return tmpl, nil
}

// Traits lists the attributes of the saved template.
func (s *Service) Traits(ctx context.Context) ([]metadata.Trait, error) {
	tmpl, err := s.Template(ctx)
	if err != nil {
		return nil, err
	}
	return metadata.ExtractTraits(tmpl), nil
}

// GenerateCollectionMetadata builds and saves the collection NFT metadata.
func (s *Service) GenerateCollectionMetadata(ctx context.Context, params metadata.CollectionParams) (*metadata.CollectionMetadata, error) {
	m := metadata.GenerateCollectionMetadata(params)
	if err := s.collections.SaveMetadata(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// CollectionMetadata returns the saved collection NFT metadata.
func (s *Service) CollectionMetadata(ctx context.Context) (*metadata.CollectionMetadata, error) {
	m, err := s.collections.LoadMetadata(ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNoCollectionMetadata
	}
	return m, nil
}

// Status reports the progress of the collection.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	entries, err := s.entries.Load(ctx, "")
	if err != nil {
		return nil, err
	}
	tmpl, err := s.templates.Load(ctx)
	if err != nil {
		return nil, err
	}
	uri, err := s.collections.LoadURI(ctx)
	if err != nil {
		return nil, err
	}

	return &Status{
		Entries:               len(entries),
		HasTemplate:           tmpl != nil,
		Images:                entry.CountImages(entries),
		Metadata:              entry.CountMetadata(entries),
		CollectionMetadataURI: uri,
		Ready:                 entry.Ready(entries),
	}, nil
}

func (s *Service) requireUploader() error {
	if s.uploader == nil {
		return errors.New("no upload backend configured")
	}
	return nil
}
