package collection

import (
	"errors"

	"nft-toolkit/core/entry"
)

// ErrNoCollectionMetadata is returned when the collection NFT metadata has not
// been generated yet.
var ErrNoCollectionMetadata = errors.New("collection metadata has not been generated")

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Entries   int          `json:"entries"`
	Fields    []string     `json:"fields"`
	Processed bool         `json:"processed"`
	Rarity    entry.Rarity `json:"rarity"`
}

// AssignResult lists which image files were attached to which entries.
type AssignResult struct {
	Assigned []entry.Assignment   `json:"assigned"`
	Skipped  []entry.SkippedImage `json:"skipped"`
}

// UploadReport summarizes an upload run.
type UploadReport struct {
	// Total is the number of entries that needed an upload.
	Total    int      `json:"total"`
	Uploaded int `json:"uploaded"`
	Failed   int `json:"failed"`
	// Stale counts uploads whose entry changed while they ran. Their URIs are
	// discarded and the entry is uploaded again by the next run.
	Stale  int      `json:"stale,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// Status describes how far the collection is along the workflow.
type Status struct {
	Entries               int                  `json:"entries"`
	HasTemplate           bool                 `json:"hasTemplate"`
	Images                entry.ImageStatus    `json:"images"`
	Metadata              entry.MetadataStatus `json:"metadata"`
	CollectionMetadataURI string               `json:"collectionMetadataUri,omitempty"`
	// Ready is true once every entry has an uploaded image and metadata.
	Ready bool `json:"ready"`
}
