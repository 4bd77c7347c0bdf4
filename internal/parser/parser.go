package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format identifies a supported upload encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Options tunes record extraction.
type Options struct {
	// Delimiter for CSV. If 0, a comma is used.
	Delimiter rune
	// Sheet selects an XLSX worksheet by name. Empty means the first sheet.
	Sheet string
}

// Parser turns an uploaded file into raw records. The first record is the header.
type Parser interface {
	Format() Format
	Parse(r io.Reader, opt Options) ([][]string, error)
}

var registry = map[Format]Parser{}

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry[p.Format()] = p
}

// ErrUnsupported indicates a file extension no parser handles.
var ErrUnsupported = errors.New("unsupported file format")

// ParseFormat maps an extension (with or without the leading dot) to a Format.
// Anything other than csv or xlsx is rejected instead of being treated as a spreadsheet.
func ParseFormat(ext string) (Format, error) {
	e := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	f := Format(e)
	if _, ok := registry[f]; !ok {
		return "", fmt.Errorf("%w: %q (use csv or xlsx)", ErrUnsupported, ext)
	}
	return f, nil
}

// FormatFromName resolves the format from the text after the last dot of filename.
func FormatFromName(filename string) (Format, error) {
	return ParseFormat(filepath.Ext(filename))
}

// Read parses r with the parser registered for f.
func Read(r io.Reader, f Format, opt Options) ([][]string, error) {
	p, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, string(f))
	}
	return p.Parse(r, opt)
}

func init() {
	Register(csvParser{})
	Register(xlsxParser{})
}
