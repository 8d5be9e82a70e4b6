package entry_test

import (
	"context"
	"errors"
	"testing"

	"nft-toolkit/core/entry"
	"nft-toolkit/core/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTemplates struct {
	tmpl *metadata.Template
	err  error
}

func (f fakeTemplates) Load(ctx context.Context) (*metadata.Template, error) {
	return f.tmpl, f.err
}

type fakeEntries struct {
	entries []entry.Entry
	calls   int
}

func (f *fakeEntries) Load(ctx context.Context, query string) ([]entry.Entry, error) {
	f.calls++
	return f.entries, nil
}

func testTemplate() *metadata.Template {
	return &metadata.Template{
		Name:        "$NAME$ #$IDPLUSONE$",
		Description: "Item $ID$ of $NUM$ from $YEAR$",
		Image:       "$ID$.png",
		Attributes: []metadata.Attribute{
			{TraitType: "Color", Value: "$COLOR$"},
			{TraitType: "Hat", Value: "$HAT$"},
			{TraitType: "Era", Value: "$YEAR$"},
			{TraitType: "Fixed", Value: "always"},
		},
		Properties: &metadata.Properties{
			Category: "image",
			Files: []metadata.File{
				{URI: "$ID$.png", Type: "image/png"},
				{URI: "$ID$-alt.png", Type: "image/png"},
			},
		},
	}
}

func TestProcess_ResolvesEveryEntry(t *testing.T) {
	p := entry.NewProcessor(fakeTemplates{tmpl: testTemplate()}, nil)
	entries := []entry.Entry{
		{Fields: map[string]any{"name": "Caesar", "color": "red", "hat": "laurel", "year": float64(-44)}},
		{Fields: map[string]any{"name": "Otto", "color": "blue", "year": float64(962)}},
	}

	out, err := p.Process(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, out, 2)

	first := out[0].Metadata
	assert.Equal(t, "Caesar #1", first.Name)
	assert.Equal(t, "Item 0 of 2 from 44 BCE", first.Description)
	assert.Equal(t, "0.png", first.Image)
	assert.Equal(t, "0.png", first.Properties.Files[0].URI)
	assert.Equal(t, "0-alt.png", first.Properties.Files[1].URI)
	assert.Equal(t, []metadata.Attribute{
		{TraitType: "Color", Value: "red"},
		{TraitType: "Hat", Value: "laurel"},
		{TraitType: "Era", Value: "44 BCE"},
		{TraitType: "Fixed", Value: "always"},
	}, first.Attributes)

	second := out[1].Metadata
	assert.Equal(t, "Otto #2", second.Name)
	assert.Equal(t, []metadata.Attribute{
		{TraitType: "Color", Value: "blue"},
		{TraitType: "Era", Value: "962 CE"},
		{TraitType: "Fixed", Value: "always"},
	}, second.Attributes, "empty Hat must be pruned, order kept")
}

func TestProcess_Idempotent(t *testing.T) {
	p := entry.NewProcessor(fakeTemplates{tmpl: testTemplate()}, nil)
	entries := []entry.Entry{
		{Fields: map[string]any{"name": "$ID$", "color": "green"}},
		{Fields: map[string]any{"name": "B"}, FilePreviewURL: "https://cdn.example/b.png"},
	}

	first, err := p.Process(context.Background(), entries)
	require.NoError(t, err)
	snapshot := entry.CloneAll(first)

	second, err := p.Process(context.Background(), first)
	require.NoError(t, err)

	for i := range snapshot {
		assert.Equal(t, snapshot[i].Metadata, second[i].Metadata)
	}
	assert.Equal(t, "$ID$ #1", second[0].Metadata.Name)
}

func TestProcess_RemoteImageWins(t *testing.T) {
	p := entry.NewProcessor(fakeTemplates{tmpl: testTemplate()}, nil)
	entries := []entry.Entry{
		{Fields: map[string]any{"name": "A"}, FilePreviewURL: "https://cdn.example/a.png"},
		{Fields: map[string]any{"name": "B"}, FilePreviewURL: "file:///tmp/1.png"},
	}

	out, err := p.Process(context.Background(), entries)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/a.png", out[0].Metadata.Image)
	for _, f := range out[0].Metadata.Properties.Files {
		assert.Equal(t, "https://cdn.example/a.png", f.URI)
	}

	assert.Equal(t, "1.png", out[1].Metadata.Image, "local previews never leak into metadata")
}

func TestProcess_EntriesDoNotShareTemplateData(t *testing.T) {
	tmpl := testTemplate()
	p := entry.NewProcessor(fakeTemplates{tmpl: tmpl}, nil)
	entries := []entry.Entry{
		{Fields: map[string]any{"color": "red"}},
		{Fields: map[string]any{"color": "blue"}},
	}

	out, err := p.Process(context.Background(), entries)
	require.NoError(t, err)

	out[0].Metadata.Attributes[0].Value = "mutated"
	out[0].Metadata.Properties.Files[0].URI = "mutated"

	assert.Equal(t, "blue", out[1].Metadata.Attributes[0].Value)
	assert.Equal(t, "1.png", out[1].Metadata.Properties.Files[0].URI)
	assert.Equal(t, "$COLOR$", tmpl.Attributes[0].Value)
	assert.Equal(t, "$ID$.png", tmpl.Properties.Files[0].URI)
}

func TestProcess_EmptyInput(t *testing.T) {
	t.Run("EmptySliceEmptyStore", func(t *testing.T) {
		store := &fakeEntries{}
		p := entry.NewProcessor(fakeTemplates{}, store)

		out, err := p.Process(context.Background(), []entry.Entry{})
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
		assert.Equal(t, 1, store.calls)
	})

	t.Run("NilInputNoStore", func(t *testing.T) {
		p := entry.NewProcessor(fakeTemplates{}, nil)

		out, err := p.Process(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("FallsBackToStore", func(t *testing.T) {
		store := &fakeEntries{entries: []entry.Entry{{Fields: map[string]any{"name": "Stored"}}}}
		p := entry.NewProcessor(fakeTemplates{tmpl: testTemplate()}, store)

		out, err := p.Process(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Stored #1", out[0].Metadata.Name)
	})
}

func TestProcess_TemplateErrors(t *testing.T) {
	entries := []entry.Entry{{Fields: map[string]any{"name": "A"}}}

	t.Run("NoTemplate", func(t *testing.T) {
		p := entry.NewProcessor(fakeTemplates{}, nil)
		_, err := p.Process(context.Background(), entries)
		assert.ErrorIs(t, err, entry.ErrNoTemplate)
	})

	t.Run("LoadFailure", func(t *testing.T) {
		boom := errors.New("boom")
		p := entry.NewProcessor(fakeTemplates{err: boom}, nil)
		_, err := p.Process(context.Background(), entries)
		assert.ErrorIs(t, err, boom)
	})
}

func TestApply_AllAttributesPruned(t *testing.T) {
	tmpl := &metadata.Template{
		Name:       "x",
		Attributes: []metadata.Attribute{{TraitType: "A", Value: "$MISSING$"}},
	}

	m := entry.Apply(tmpl, 0, 1, entry.Entry{})
	assert.NotNil(t, m.Attributes)
	assert.Empty(t, m.Attributes)
	assert.Nil(t, m.Properties)
}
