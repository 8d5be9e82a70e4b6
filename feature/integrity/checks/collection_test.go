package checks

import (
	"testing"

	"nft-toolkit/core/entry"
	"nft-toolkit/core/metadata"

	"github.com/stretchr/testify/assert"
)

func testTemplate() *metadata.Template {
	return &metadata.Template{
		Name:       "$NAME$ #$IDPLUSONE$",
		Image:      "$ID$.png",
		Attributes: []metadata.Attribute{{TraitType: "Color", Value: "$COLOR$"}, {TraitType: "Hat", Value: "$HAT$"}},
		Properties: &metadata.Properties{Files: []metadata.File{{URI: "$ID$.$EXT$"}}},
	}
}

func TestCheckCollection(t *testing.T) {
	m := &metadata.Metadata{Name: "x", Attributes: []metadata.Attribute{}}
	entries := []entry.Entry{
		{Fields: map[string]any{"name": "a", "color": "red"}},
		{Fields: map[string]any{"name": "b"}, File: "/1.png", FilePreviewURL: "file:///1.png", Metadata: m},
		{Fields: map[string]any{"name": "c"}, File: "/2.png", FilePreviewURL: entry.FailedUploadPreview, Metadata: m},
		{Fields: map[string]any{"name": "d"}, FilePreviewURL: "http://cdn/3.png", Metadata: m, MetadataURI: "https://cdn/3.json"},
		{Fields: map[string]any{"name": "e"}, FilePreviewURL: "https://cdn/4.png", Metadata: m, MetadataURI: "https://cdn/4.json"},
	}

	report := CheckCollection(entries, testTemplate(), nil, "")

	assert.Equal(t, 5, report.Entries)
	assert.Equal(t, []int{0}, report.MissingImages)
	assert.Equal(t, []int{1}, report.PendingImages)
	assert.Equal(t, []int{2}, report.FailedImages)
	assert.Equal(t, []int{3}, report.InsecureImages)
	assert.Equal(t, []int{0}, report.Unprocessed)
	assert.Equal(t, []int{0, 1, 2}, report.PendingMetadata)
	assert.True(t, report.TemplateFound)
	assert.Empty(t, report.TemplateErrors)
	assert.Equal(t, []string{"EXT", "HAT"}, report.UnknownTokens)
	assert.False(t, report.CollectionMetadata)
	assert.False(t, report.Ready)
}

func TestCheckCollection_Ready(t *testing.T) {
	m := &metadata.Metadata{Name: "x"}
	entries := []entry.Entry{
		{FilePreviewURL: "https://cdn/0.png", Metadata: m, MetadataURI: "https://cdn/0.json"},
	}
	coll := &metadata.CollectionMetadata{Name: "Heroes"}

	report := CheckCollection(entries, nil, coll, "https://cdn/collection.json")

	assert.True(t, report.Ready)
	assert.False(t, report.TemplateFound)
	assert.Nil(t, report.UnknownTokens)
	assert.True(t, report.CollectionMetadata)
	assert.Equal(t, "https://cdn/collection.json", report.CollectionMetadataURI)
}

func TestCheckCollection_InvalidTemplate(t *testing.T) {
	tmpl := testTemplate()
	tmpl.SellerFeeBasisPoints = 20000

	report := CheckCollection(nil, tmpl, nil, "")

	assert.Len(t, report.TemplateErrors, 1)
	assert.Contains(t, report.TemplateErrors[0], "seller_fee_basis_points")
	assert.Nil(t, report.UnknownTokens)
	assert.False(t, report.Ready)
}
