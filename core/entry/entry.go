package entry

import (
	"strings"

	"nft-toolkit/core/metadata"
)

// Preview prefixes that mark an image reference as local (not yet uploaded).
const (
	PreviewBlob   = "blob:"
	PreviewFile   = "file://"
	PreviewFailed = "/failed"
)

// FailedUploadPreview marks an entry whose image could not be uploaded. It is
// a local preview, so the next upload run retries it.
const FailedUploadPreview = PreviewFailed + "-upload"

// Entry is one item of the collection.
type Entry struct {
	// Fields holds the imported data, keyed by lower-case field name.
	Fields map[string]any `json:"fields"`
	// File is the local path of the item image until it is uploaded.
	File string `json:"file,omitempty"`
	// FilePreviewURL is a local preview reference or the uploaded image URI.
	FilePreviewURL string `json:"filePreviewUrl,omitempty"`
	// Metadata is generated by Apply; never edit it by hand.
	Metadata *metadata.Metadata `json:"metadata,omitempty"`
	// MetadataURI is set once the metadata JSON has been uploaded.
	MetadataURI string `json:"metadataUri,omitempty"`
}

// Field returns the value of a field, matched by lower-case name.
func (e Entry) Field(name string) (any, bool) {
	v, ok := e.Fields[strings.ToLower(name)]
	return v, ok
}

// RemoteImage returns the uploaded image URI, or "" while the image is
// missing or only available locally.
func (e Entry) RemoteImage() string {
	if e.FilePreviewURL == "" || IsLocalPreview(e.FilePreviewURL) {
		return ""
	}
	return e.FilePreviewURL
}

// NeedsImageUpload reports whether the entry has a file that has not been
// uploaded yet (or whose previous upload failed).
func (e Entry) NeedsImageUpload() bool {
	return e.File != "" && (e.FilePreviewURL == "" || IsLocalPreview(e.FilePreviewURL))
}

// NeedsMetadataUpload reports whether generated metadata is waiting for upload.
func (e Entry) NeedsMetadataUpload() bool {
	return e.Metadata != nil && e.MetadataURI == ""
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	out := e
	if e.Fields != nil {
		out.Fields = make(map[string]any, len(e.Fields))
		for k, v := range e.Fields {
			out.Fields[k] = v
		}
	}
	out.Metadata = e.Metadata.Clone()
	return out
}

// CloneAll deep-copies a slice of entries.
func CloneAll(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// IsLocalPreview reports whether uri points at a local, not uploaded, image.
func IsLocalPreview(uri string) bool {
	return strings.HasPrefix(uri, PreviewBlob) ||
		strings.HasPrefix(uri, PreviewFile) ||
		strings.HasPrefix(uri, PreviewFailed)
}

// FromRows wraps imported rows as entries.
func FromRows(rows []map[string]any) []Entry {
	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = Entry{Fields: row}
	}
	return entries
}
