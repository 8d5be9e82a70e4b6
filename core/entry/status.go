package entry

import "strings"

// ImageStatus counts entries by image state.
type ImageStatus struct {
	Online  int `json:"online"`
	Local   int `json:"local"`
	Missing int `json:"missing"`
	Total   int `json:"total"`
}

// Done reports whether every entry has an uploaded image.
func (s ImageStatus) Done() bool {
	return s.Total > 0 && s.Online == s.Total
}

// MetadataStatus counts entries by metadata upload state.
type MetadataStatus struct {
	Uploaded int `json:"uploaded"`
	Local    int `json:"local"`
}

// UploadRequired reports whether some metadata has not been uploaded yet.
func (s MetadataStatus) UploadRequired() bool {
	return s.Local > 0
}

// Done reports whether all metadata has been uploaded.
func (s MetadataStatus) Done() bool {
	return s.Local == 0 && s.Uploaded > 0
}

// CountImages summarizes the image state of entries.
func CountImages(entries []Entry) ImageStatus {
	var s ImageStatus
	for _, e := range entries {
		s.Total++
		switch {
		case e.FilePreviewURL == "":
			s.Missing++
		case IsLocalPreview(e.FilePreviewURL):
			s.Local++
		default:
			s.Online++
		}
	}
	return s
}

// CountMetadata summarizes the metadata upload state of entries.
func CountMetadata(entries []Entry) MetadataStatus {
	var s MetadataStatus
	for _, e := range entries {
		if e.MetadataURI != "" {
			s.Uploaded++
		} else {
			s.Local++
		}
	}
	return s
}

// Ready reports whether every entry has both an https image and an https
// metadata URI, which is what loading items into a candy machine requires.
func Ready(entries []Entry) bool {
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.FilePreviewURL, "https://") || !strings.HasPrefix(e.MetadataURI, "https://") {
			return false
		}
	}
	return true
}

// ClearMetadataURIs forgets every uploaded metadata URI so the next upload
// run sends all metadata again.
func ClearMetadataURIs(entries []Entry) {
	for i := range entries {
		entries[i].MetadataURI = ""
	}
}
