package table

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tabdash/internal/parser"
)

// Options controls how an uploaded file is parsed.
type Options = parser.Options

// Load parses r as the given format and builds a Table named name.
func Load(r io.Reader, name string, f parser.Format, opt Options) (*Table, error) {
	records, err := parser.Read(r, f, opt)
	if err != nil {
		return nil, err
	}
	return fromRecords(name, records, f == parser.FormatXLSX)
}

// LoadFile opens path and loads it using the format implied by its extension.
func LoadFile(path string, opt Options) (*Table, error) {
	f, err := parser.FormatFromName(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f, err)
	}
	defer fh.Close()
	return Load(fh, filepath.Base(path), f, opt)
}

// FromRecords builds a Table from raw records whose first entry is the header.
// Short rows are padded with missing cells and long rows are truncated to the
// header width. Records with no fields at all (empty spreadsheet rows) are skipped.
// Cells are treated as delimited text, so no column is inferred as Datetime.
func FromRecords(name string, records [][]string) (*Table, error) {
	return fromRecords(name, records, false)
}

func fromRecords(name string, records [][]string, dates bool) (*Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrEmptyInput
	}
	names := headerNames(records[0])
	ncol := len(names)

	raw := make([][]string, ncol)
	rows := 0
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = rec[j]
			}
			raw[j] = append(raw[j], v)
		}
		rows++
	}

	t := &Table{Name: name, Rows: rows, Columns: make([]*Column, ncol)}
	for j := range names {
		t.Columns[j] = buildColumn(names[j], raw[j], dates)
	}
	return t, nil
}

// headerNames fills blank names as "Unnamed: i" and disambiguates repeats with
// ".1", ".2" suffixes.
func headerNames(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		n := strings.TrimSpace(h)
		if n == "" {
			n = fmt.Sprintf("Unnamed: %d", i)
		}
		if k, ok := seen[n]; ok {
			base := n
			for {
				k++
				n = fmt.Sprintf("%s.%d", base, k)
				if _, dup := seen[n]; !dup {
					break
				}
			}
			seen[base] = k
		}
		seen[n] = 0
		out[i] = n
	}
	return out
}
