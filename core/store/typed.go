package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nft-toolkit/core/entry"
	"nft-toolkit/core/metadata"
	"nft-toolkit/core/utils"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// loadJSON decodes the document at key into v. It reports false when the key
// has never been set.
func loadJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return kv.Set(ctx, key, raw)
}

// TemplateStore persists the metadata template.
type TemplateStore struct {
	kv KV
}

func NewTemplateStore(kv KV) *TemplateStore { return &TemplateStore{kv: kv} }

// Load returns the saved template, or nil when none has been saved.
func (s *TemplateStore) Load(ctx context.Context) (*metadata.Template, error) {
	var tmpl metadata.Template
	found, err := loadJSON(ctx, s.kv, KeyTemplate, &tmpl)
	if err != nil || !found {
		return nil, err
	}
	return &tmpl, nil
}

func (s *TemplateStore) Save(ctx context.Context, tmpl *metadata.Template) error {
	return saveJSON(ctx, s.kv, KeyTemplate, tmpl)
}

// EntryStore persists the entry collection.
type EntryStore struct {
	kv KV
}

func NewEntryStore(kv KV) *EntryStore { return &EntryStore{kv: kv} }

// Load returns the saved entries. A non-empty query keeps only entries where
// some field value fuzzily matches it, ignoring case. The result is never nil.
func (s *EntryStore) Load(ctx context.Context, query string) ([]entry.Entry, error) {
	var entries []entry.Entry
	if _, err := loadJSON(ctx, s.kv, KeyEntries, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []entry.Entry{}
	}
	if query == "" {
		return entries, nil
	}
	return Filter(entries, query), nil
}

func (s *EntryStore) Save(ctx context.Context, entries []entry.Entry) error {
	if entries == nil {
		entries = []entry.Entry{}
	}
	return saveJSON(ctx, s.kv, KeyEntries, entries)
}

// Filter keeps the entries with a field value that fuzzily matches query.
func Filter(entries []entry.Entry, query string) []entry.Entry {
	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		for _, v := range e.Fields {
			if fuzzy.MatchFold(query, utils.ToString(v)) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// CollectionStore persists the collection NFT metadata and its uploaded URI.
type CollectionStore struct {
	kv KV
}

func NewCollectionStore(kv KV) *CollectionStore { return &CollectionStore{kv: kv} }

// LoadMetadata returns the collection metadata, or nil when none has been generated.
func (s *CollectionStore) LoadMetadata(ctx context.Context) (*metadata.CollectionMetadata, error) {
	var m metadata.CollectionMetadata
	found, err := loadJSON(ctx, s.kv, KeyCollectionMetadata, &m)
	if err != nil || !found {
		return nil, err
	}
	return &m, nil
}

func (s *CollectionStore) SaveMetadata(ctx context.Context, m *metadata.CollectionMetadata) error {
	return saveJSON(ctx, s.kv, KeyCollectionMetadata, m)
}

// LoadURI returns the uploaded collection metadata URI, or "".
func (s *CollectionStore) LoadURI(ctx context.Context) (string, error) {
	var uri string
	_, err := loadJSON(ctx, s.kv, KeyCollectionMetadataURI, &uri)
	return uri, err
}

func (s *CollectionStore) SaveURI(ctx context.Context, uri string) error {
	return saveJSON(ctx, s.kv, KeyCollectionMetadataURI, uri)
}

// RarityStore persists the last rarity report.
type RarityStore struct {
	kv KV
}

func NewRarityStore(kv KV) *RarityStore { return &RarityStore{kv: kv} }

// Load returns the saved report, or an empty one.
func (s *RarityStore) Load(ctx context.Context) (entry.Rarity, error) {
	r := entry.Rarity{}
	if _, err := loadJSON(ctx, s.kv, KeyRarities, &r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RarityStore) Save(ctx context.Context, r entry.Rarity) error {
	return saveJSON(ctx, s.kv, KeyRarities, r)
}

// Clear deletes every persisted document.
func Clear(ctx context.Context, kv KV) error {
	var errs []error
	for _, key := range AllKeys {
		if err := kv.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
