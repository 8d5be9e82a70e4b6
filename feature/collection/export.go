package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/zip"
)

// Export writes a zip archive with one {index}.json metadata document per
// processed entry and returns how many documents it wrote. Entries without
// metadata are left out; the file names keep the entry index.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	entries, err := s.entries.Load(ctx, "")
	if err != nil {
		return 0, err
	}

	zw := zip.NewWriter(w)
	written := 0
	for i, e := range entries {
		if e.Metadata == nil {
			continue
		}
		data, err := json.MarshalIndent(e.Metadata, "", "    ")
		if err != nil {
			return written, fmt.Errorf("failed to encode metadata of entry %d: %w", i, err)
		}
		f, err := zw.Create(strconv.Itoa(i) + ".json")
		if err != nil {
			return written, err
		}
		if _, err := f.Write(data); err != nil {
			return written, err
		}
		written++
	}
	if err := zw.Close(); err != nil {
		return written, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return written, nil
}
