package collection

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"nft-toolkit/core/utils"
)

// ErrInvalidCSV is returned for input that has no usable header row.
var ErrInvalidCSV = errors.New("invalid CSV")

var nonWord = regexp.MustCompile(`\W`)

// NormalizeHeader turns a column title into a field name: lower-cased, with
// every non-word character replaced by an underscore.
func NormalizeHeader(header string) string {
	return nonWord.ReplaceAllString(strings.ToLower(strings.TrimSpace(header)), "_")
}

// ParseCSV reads a header row followed by data rows. Cells are typed: numbers
// become float64, true/false become bool, and empty cells are left out of the
// row. Blank lines are skipped, and so are columns with an empty header.
func ParseCSV(r io.Reader) ([]map[string]any, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: missing header row", ErrInvalidCSV)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}

	// strip a UTF-8 byte order mark left by spreadsheet exports
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	fields := make([]string, len(header))
	var names []string
	for i, h := range header {
		fields[i] = NormalizeHeader(h)
		if fields[i] != "" {
			names = append(names, fields[i])
		}
	}
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("%w: header row is empty", ErrInvalidCSV)
	}

	rows := []map[string]any{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}

		row := make(map[string]any, len(fields))
		for i, cell := range record {
			if i >= len(fields) || fields[i] == "" {
				continue
			}
			if v := utils.ParseScalar(cell); v != nil {
				row[fields[i]] = v
			}
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, names, nil
}
