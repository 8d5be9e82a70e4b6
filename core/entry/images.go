package entry

import (
	"path/filepath"
	"regexp"
	"strconv"
)

var firstNumber = regexp.MustCompile(`\d+`)

// Assignment records which entry received an image file.
type Assignment struct {
	Index    int    `json:"index"`
	Path     string `json:"path"`
	Replaced bool   `json:"replaced"`
}

// SkippedImage records a file that could not be matched to an entry.
type SkippedImage struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// AssignImages attaches image files to entries by the first number in each
// file name. Files without a number or with an index past the end are skipped.
// A later file for the same index replaces the earlier one. entries is
// modified in place.
func AssignImages(entries []Entry, paths []string) ([]Assignment, []SkippedImage) {
	var assigned []Assignment
	var skipped []SkippedImage

	for _, path := range paths {
		match := firstNumber.FindString(filepath.Base(path))
		if match == "" {
			skipped = append(skipped, SkippedImage{Path: path, Reason: "no number in file name"})
			continue
		}
		index, err := strconv.Atoi(match)
		if err != nil || index >= len(entries) {
			skipped = append(skipped, SkippedImage{Path: path, Reason: "no entry for index " + match})
			continue
		}

		e := &entries[index]
		replaced := e.File != ""
		e.File = path
		e.FilePreviewURL = PreviewFile + filepath.ToSlash(path)
		assigned = append(assigned, Assignment{Index: index, Path: path, Replaced: replaced})
	}
	return assigned, skipped
}
