package checks

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"nft-toolkit/core/entry"
	"nft-toolkit/core/metadata"
	"nft-toolkit/core/template"
)

// builtinTokens resolve without a field lookup.
var builtinTokens = map[string]bool{
	template.TokenID:        true,
	template.TokenIDPlusOne: true,
	template.TokenNum:       true,
}

// CollectionReport lists, by entry index, what still blocks the collection
// from being loaded on chain.
type CollectionReport struct {
	Entries int `json:"entries"`

	MissingImages  []int `json:"missing_images"`
	PendingImages  []int `json:"pending_images"`
	FailedImages   []int `json:"failed_images"`
	InsecureImages []int `json:"insecure_images"`

	Unprocessed     []int `json:"unprocessed"`
	PendingMetadata []int `json:"pending_metadata"`

	TemplateFound  bool     `json:"template_found"`
	TemplateErrors []string `json:"template_errors,omitempty"`
	// UnknownTokens are template tokens no entry has a field for.
	UnknownTokens []string `json:"unknown_tokens,omitempty"`

	CollectionMetadata    bool   `json:"collection_metadata"`
	CollectionMetadataURI string `json:"collection_metadata_uri,omitempty"`

	Ready bool `json:"ready"`
}

// CheckCollection inspects the persisted collection state. tmpl and coll may
// be nil when they have not been created yet.
func CheckCollection(entries []entry.Entry, tmpl *metadata.Template, coll *metadata.CollectionMetadata, collURI string) *CollectionReport {
	report := &CollectionReport{
		Entries:               len(entries),
		TemplateFound:         tmpl != nil,
		CollectionMetadata:    coll != nil,
		CollectionMetadataURI: collURI,
		Ready:                 entry.Ready(entries),
	}

	for i, e := range entries {
		switch {
		case e.FilePreviewURL == "":
			report.MissingImages = append(report.MissingImages, i)
		case e.FilePreviewURL == entry.FailedUploadPreview:
			report.FailedImages = append(report.FailedImages, i)
		case entry.IsLocalPreview(e.FilePreviewURL):
			report.PendingImages = append(report.PendingImages, i)
		case !strings.HasPrefix(e.FilePreviewURL, "https://"):
			report.InsecureImages = append(report.InsecureImages, i)
		}

		if e.Metadata == nil {
			report.Unprocessed = append(report.Unprocessed, i)
		}
		if e.MetadataURI == "" {
			report.PendingMetadata = append(report.PendingMetadata, i)
		}
	}

	if tmpl != nil {
		report.TemplateErrors = validateTemplate(tmpl)
		report.UnknownTokens = unknownTokens(tmpl, entries)
	}
	return report
}

func validateTemplate(tmpl *metadata.Template) []string {
	raw, err := json.Marshal(tmpl)
	if err != nil {
		return []string{err.Error()}
	}
	err = metadata.ValidateTemplate(raw)
	if err == nil {
		return nil
	}
	if !errors.Is(err, metadata.ErrInvalidTemplate) {
		return []string{err.Error()}
	}
	msg := strings.TrimPrefix(err.Error(), metadata.ErrInvalidTemplate.Error()+": ")
	return strings.Split(msg, "; ")
}

func unknownTokens(tmpl *metadata.Template, entries []entry.Entry) []string {
	if len(entries) == 0 {
		return nil
	}

	fields := make(map[string]bool)
	for _, e := range entries {
		for name := range e.Fields {
			fields[strings.ToUpper(name)] = true
		}
	}

	sources := []string{tmpl.Name, tmpl.Description, tmpl.Image}
	for _, a := range tmpl.Attributes {
		sources = append(sources, a.Value)
	}
	for _, f := range tmpl.Files() {
		sources = append(sources, f.URI)
	}

	seen := make(map[string]bool)
	var unknown []string
	for _, s := range sources {
		for _, token := range template.Tokens(s) {
			if builtinTokens[token] || fields[token] || seen[token] {
				continue
			}
			seen[token] = true
			unknown = append(unknown, token)
		}
	}
	sort.Strings(unknown)
	return unknown
}
