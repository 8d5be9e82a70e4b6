package entry

import (
	"context"
	"errors"
	"fmt"

	"nft-toolkit/core/metadata"
	"nft-toolkit/core/template"
)

// ErrNoTemplate is returned when entries are processed before a template exists.
var ErrNoTemplate = errors.New("no metadata template has been set")

// TemplateLoader provides the current collection template. Load returns a nil
// template without error when none has been saved yet.
type TemplateLoader interface {
	Load(ctx context.Context) (*metadata.Template, error)
}

// EntryLoader provides the persisted entries. An empty query loads all of them.
type EntryLoader interface {
	Load(ctx context.Context, query string) ([]Entry, error)
}

// Processor applies the collection template to entries. It keeps no state
// between calls.
type Processor struct {
	templates TemplateLoader
	entries   EntryLoader
}

// NewProcessor creates a processor. entries may be nil, in which case an empty
// input simply yields an empty result.
func NewProcessor(templates TemplateLoader, entries EntryLoader) *Processor {
	return &Processor{templates: templates, entries: entries}
}

// Process attaches freshly generated metadata to every entry and returns the
// same slice. When entries is empty the persisted entries are used instead.
// The caller is responsible for saving the result.
func (p *Processor) Process(ctx context.Context, entries []Entry) ([]Entry, error) {
	if len(entries) == 0 && p.entries != nil {
		loaded, err := p.entries.Load(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load entries: %w", err)
		}
		entries = loaded
	}
	if len(entries) == 0 {
		return []Entry{}, nil
	}

	tmpl, err := p.templates.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	if tmpl == nil {
		return nil, ErrNoTemplate
	}

	ApplyAll(tmpl, entries)
	return entries, nil
}

// ApplyAll sets the metadata of every entry from tmpl.
func ApplyAll(tmpl *metadata.Template, entries []Entry) {
	total := len(entries)
	for i := range entries {
		entries[i].Metadata = Apply(tmpl, i, total, entries[i])
	}
}

// Apply generates the metadata of the entry at index out of total.
//
// An uploaded image of the entry replaces image and every file uri verbatim.
// Otherwise those fields are resolved from the template. Attributes whose
// value resolves to "" are dropped; the rest keep their template order.
func Apply(tmpl *metadata.Template, index, total int, e Entry) *metadata.Metadata {
	m := tmpl.Clone()
	ctx := template.Context{Index: index, Total: total, Lookup: e.Field}

	m.Name = template.Render(m.Name, ctx)
	m.Description = template.Render(m.Description, ctx)

	remote := e.RemoteImage()
	if remote != "" {
		m.Image = remote
	} else {
		m.Image = template.Render(m.Image, ctx)
	}

	files := m.Files()
	for i := range files {
		if remote != "" {
			files[i].URI = remote
			continue
		}
		files[i].URI = template.Render(files[i].URI, ctx)
	}

	kept := m.Attributes[:0]
	for _, attr := range m.Attributes {
		attr.Value = template.Render(attr.Value, ctx)
		if attr.Value == "" {
			continue
		}
		kept = append(kept, attr)
	}
	m.Attributes = kept

	return m
}
